package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sprintdeck/api/authz"
	sd_errors "github.com/sprintdeck/api/errors"
	logger "github.com/sprintdeck/api/logging"
	"github.com/sprintdeck/api/model"
	"github.com/sprintdeck/api/sanitize"
	"github.com/sprintdeck/api/util"
)

// PermissionSetService owns the lifecycle of reusable capability grids.
// Saving a matrix that violates a capability dependency is rejected with
// the full violation list. Managing sets is gated by the same
// capability that manages team members, since a set changes what a
// member can do.
type PermissionSetService struct {
	actors   actorResolver
	store    PermissionSetStore
	notifier Notifier
	events   EventPublisher
}

func NewPermissionSetService(store PermissionSetStore, members MemberStore, cache Cache, notifier Notifier, events EventPublisher) *PermissionSetService {
	return &PermissionSetService{
		actors:   actorResolver{members: members, sets: store, cache: cache},
		store:    store,
		notifier: notifier,
		events:   events,
	}
}

func (s *PermissionSetService) CreatePermissionSet(ctx context.Context, actorID string, set model.PermissionSet) (*model.PermissionSet, error) {
	_, actor, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanPerformAction(actor, authz.ActionUpdate, authz.ResourceMember, nil) {
		return nil, sd_errors.ErrForbidden
	}

	set.Name = sanitize.Input(set.Name)
	set.Description = sanitize.Input(set.Description)
	if set.Name == "" || set.OrganizationID == "" {
		return nil, sd_errors.ErrInvalidPermissionSetData
	}
	if violations := authz.ValidateDependencies(&set.Matrix); len(violations) > 0 {
		return nil, &sd_errors.PermissionDependencyError{Violations: violations}
	}

	id, err := s.store.CreatePermissionSet(ctx, set)
	if err != nil {
		return nil, err
	}
	set.ID = id

	if err := s.notifier.NotifyPermissionSetChange(ctx, "CREATE", set); err != nil {
		logger.Warn("Permission set notification failed", zap.String("setID", id), zap.Error(err))
	}
	s.events.Publish(ctx, util.EventPermissionSetCreated, id)
	return &set, nil
}

func (s *PermissionSetService) GetPermissionSet(ctx context.Context, actorID, setID string) (*model.PermissionSet, error) {
	_, actor, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanPerformAction(actor, authz.ActionView, authz.ResourceMember, nil) {
		return nil, sd_errors.ErrForbidden
	}
	return s.actors.permissionSet(ctx, setID)
}

func (s *PermissionSetService) ListPermissionSets(ctx context.Context, actorID, organizationID string, limit, offset int) ([]*model.PermissionSet, error) {
	_, actor, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanPerformAction(actor, authz.ActionView, authz.ResourceMember, nil) {
		return nil, sd_errors.ErrForbidden
	}
	return s.store.ListPermissionSets(ctx, organizationID, limit, offset)
}

func (s *PermissionSetService) UpdatePermissionSet(ctx context.Context, actorID string, set model.PermissionSet) (*model.PermissionSet, error) {
	_, actor, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanPerformAction(actor, authz.ActionUpdate, authz.ResourceMember, nil) {
		return nil, sd_errors.ErrForbidden
	}

	set.Name = sanitize.Input(set.Name)
	set.Description = sanitize.Input(set.Description)
	if set.ID == "" || set.Name == "" {
		return nil, sd_errors.ErrInvalidPermissionSetData
	}
	if violations := authz.ValidateDependencies(&set.Matrix); len(violations) > 0 {
		return nil, &sd_errors.PermissionDependencyError{Violations: violations}
	}

	updated, err := s.store.UpdatePermissionSet(ctx, set)
	if err != nil {
		return nil, err
	}
	s.invalidateSet(ctx, set.ID)

	if err := s.notifier.NotifyPermissionSetChange(ctx, "UPDATE", *updated); err != nil {
		logger.Warn("Permission set notification failed", zap.String("setID", set.ID), zap.Error(err))
	}
	s.events.Publish(ctx, util.EventPermissionSetUpdated, set.ID)
	return updated, nil
}

func (s *PermissionSetService) DeletePermissionSet(ctx context.Context, actorID, setID string) error {
	_, actor, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return err
	}
	if !authz.CanPerformAction(actor, authz.ActionUpdate, authz.ResourceMember, nil) {
		return sd_errors.ErrForbidden
	}

	if err := s.store.DeletePermissionSet(ctx, setID); err != nil {
		return err
	}
	s.invalidateSet(ctx, setID)
	s.events.Publish(ctx, util.EventPermissionSetDeleted, setID)
	return nil
}

func (s *PermissionSetService) invalidateSet(ctx context.Context, setID string) {
	if err := s.actors.cache.DeletePermissionSet(ctx, setID); err != nil {
		logger.Warn("Permission set cache invalidation failed", zap.String("setID", setID), zap.Error(err))
	}
}
