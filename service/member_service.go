package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/sprintdeck/api/authz"
	sd_errors "github.com/sprintdeck/api/errors"
	logger "github.com/sprintdeck/api/logging"
	"github.com/sprintdeck/api/model"
	"github.com/sprintdeck/api/sanitize"
	"github.com/sprintdeck/api/util"
)

// MemberService applies authorization and field visibility on top of
// the member store. Every operation resolves the acting member first
// and denies when resolution fails.
type MemberService struct {
	actors   actorResolver
	store    MemberStore
	notifier Notifier
	events   EventPublisher
}

func NewMemberService(store MemberStore, sets PermissionSetStore, cache Cache, notifier Notifier, events EventPublisher) *MemberService {
	return &MemberService{
		actors:   actorResolver{members: store, sets: sets, cache: cache},
		store:    store,
		notifier: notifier,
		events:   events,
	}
}

func (s *MemberService) AddMember(ctx context.Context, actorID string, member model.OrganizationMember) (string, error) {
	_, actor, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return "", err
	}
	if !authz.CanPerformAction(actor, authz.ActionCreate, authz.ResourceMember, nil) {
		return "", sd_errors.ErrForbidden
	}

	member.Name = sanitize.Input(member.Name)
	member.Email = sanitize.Input(member.Email)
	member.Title = sanitize.Input(member.Title)
	if member.UserID == "" || member.OrganizationID == "" || !member.Role.Valid() {
		return "", sd_errors.ErrInvalidMemberData
	}
	if member.Role == authz.RoleOwner {
		return "", sd_errors.ErrInvalidMemberData
	}

	id, err := s.store.CreateMember(ctx, member)
	if err != nil {
		return "", err
	}
	s.events.Publish(ctx, util.EventMemberCreated, id)
	return id, nil
}

func (s *MemberService) GetMemberProfile(ctx context.Context, actorID, memberID string) (map[string]any, error) {
	actingMember, actor, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}

	isSelf := actingMember.ID == memberID
	if !isSelf && !authz.CanPerformAction(actor, authz.ActionView, authz.ResourceMember, nil) {
		return nil, sd_errors.ErrForbidden
	}

	target, err := s.actors.member(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return memberProfile(target, actingMember.Role, isSelf)
}

func (s *MemberService) ListMemberProfiles(ctx context.Context, actorID, organizationID string, limit, offset int) ([]map[string]any, error) {
	actingMember, actor, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanPerformAction(actor, authz.ActionView, authz.ResourceMember, nil) {
		return nil, sd_errors.ErrForbidden
	}

	members, err := s.store.ListMembers(ctx, organizationID, limit, offset)
	if err != nil {
		return nil, err
	}

	profiles := make([]map[string]any, 0, len(members))
	for _, m := range members {
		profile, err := memberProfile(m, actingMember.Role, actingMember.ID == m.ID)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// SearchMemberProfiles finds members by criteria. The search is pinned
// to the actor's organization regardless of what the criteria claim.
func (s *MemberService) SearchMemberProfiles(ctx context.Context, actorID string, criteria model.MemberSearchCriteria) ([]map[string]any, error) {
	actingMember, actor, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanPerformAction(actor, authz.ActionView, authz.ResourceMember, nil) {
		return nil, sd_errors.ErrForbidden
	}
	if criteria.Role != "" && !criteria.Role.Valid() {
		return nil, sd_errors.ErrInvalidMemberData
	}
	criteria.OrganizationID = actingMember.OrganizationID

	members, err := s.store.SearchMembers(ctx, criteria)
	if err != nil {
		return nil, err
	}

	profiles := make([]map[string]any, 0, len(members))
	for _, m := range members {
		profile, err := memberProfile(m, actingMember.Role, actingMember.ID == m.ID)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (s *MemberService) ChangeRole(ctx context.Context, actorID, memberID string, role authz.Role) (*model.OrganizationMember, error) {
	_, actor, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanPerformAction(actor, authz.ActionUpdate, authz.ResourceMember, nil) {
		return nil, sd_errors.ErrForbidden
	}
	if !role.Valid() || role == authz.RoleOwner {
		return nil, sd_errors.ErrInvalidMemberData
	}

	target, err := s.actors.member(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if target.Role == authz.RoleOwner {
		return nil, sd_errors.ErrInvalidMemberData
	}
	oldRole := target.Role

	updated, err := s.store.UpdateMemberRole(ctx, memberID, role)
	if err != nil {
		return nil, err
	}
	s.invalidateMember(ctx, memberID)

	if err := s.notifier.NotifyRoleChange(ctx, *updated, oldRole); err != nil {
		logger.Warn("Role change notification failed", zap.String("memberID", memberID), zap.Error(err))
	}
	s.events.Publish(ctx, util.EventMemberRoleChanged, memberID)
	return updated, nil
}

func (s *MemberService) AttachPermissionSet(ctx context.Context, actorID, memberID, setID string) error {
	_, actor, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return err
	}
	if !authz.CanPerformAction(actor, authz.ActionUpdate, authz.ResourceMember, nil) {
		return sd_errors.ErrForbidden
	}

	target, err := s.actors.member(ctx, memberID)
	if err != nil {
		return err
	}
	set, err := s.actors.permissionSet(ctx, setID)
	if err != nil {
		return err
	}
	if set.OrganizationID != target.OrganizationID {
		return sd_errors.ErrInvalidMemberData
	}

	if err := s.store.AttachPermissionSet(ctx, memberID, setID); err != nil {
		return err
	}
	s.invalidateMember(ctx, memberID)
	s.events.Publish(ctx, util.EventMemberSetAttached, memberID)
	return nil
}

func (s *MemberService) RemoveMember(ctx context.Context, actorID, memberID string) error {
	_, actor, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return err
	}
	if !authz.CanPerformAction(actor, authz.ActionDelete, authz.ResourceMember, nil) {
		return sd_errors.ErrForbidden
	}

	target, err := s.actors.member(ctx, memberID)
	if err != nil {
		return err
	}
	if target.Role == authz.RoleOwner {
		return sd_errors.ErrInvalidMemberData
	}

	if err := s.store.DeleteMember(ctx, memberID); err != nil {
		return err
	}
	s.invalidateMember(ctx, memberID)
	s.events.Publish(ctx, util.EventMemberRemoved, memberID)
	return nil
}

func (s *MemberService) invalidateMember(ctx context.Context, memberID string) {
	if err := s.actors.cache.DeleteMember(ctx, memberID); err != nil {
		logger.Warn("Member cache invalidation failed", zap.String("memberID", memberID), zap.Error(err))
	}
}

// memberProfile renders a member record with the fields the viewer is
// allowed to see.
func memberProfile(member *model.OrganizationMember, viewer authz.Role, isSelf bool) (map[string]any, error) {
	raw, err := json.Marshal(member)
	if err != nil {
		return nil, sd_errors.ErrInternalServer
	}
	var record map[string]any
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, sd_errors.ErrInternalServer
	}
	return authz.FilterVisibleFields(record, model.ProfileVisibility, viewer, isSelf), nil
}
