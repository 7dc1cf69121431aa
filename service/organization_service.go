package service

import (
	"context"

	"github.com/sprintdeck/api/authz"
	sd_errors "github.com/sprintdeck/api/errors"
	"github.com/sprintdeck/api/model"
	"github.com/sprintdeck/api/sanitize"
	"github.com/sprintdeck/api/util"
)

// OrganizationStore is implemented by dao.OrganizationDAO.
type OrganizationStore interface {
	CreateOrganization(ctx context.Context, org model.Organization, owner model.OrganizationMember) (string, error)
	GetOrganization(ctx context.Context, organizationID string) (*model.Organization, error)
	UpdateOrganization(ctx context.Context, org model.Organization) (*model.Organization, error)
}

// IOrganizationService is the surface consumed by the organization
// controller.
type IOrganizationService interface {
	CreateOrganization(ctx context.Context, userID string, org model.Organization, owner model.OrganizationMember) (string, error)
	GetOrganization(ctx context.Context, actorID, organizationID string) (*model.Organization, error)
	UpdateOrganization(ctx context.Context, actorID string, org model.Organization) (*model.Organization, error)
}

// OrganizationService handles tenant provisioning and settings. Creating
// an organization is the one operation open to any authenticated user;
// the caller becomes the organization's owner.
type OrganizationService struct {
	actors actorResolver
	store  OrganizationStore
	events EventPublisher
}

func NewOrganizationService(store OrganizationStore, members MemberStore, sets PermissionSetStore, cache Cache, events EventPublisher) *OrganizationService {
	return &OrganizationService{
		actors: actorResolver{members: members, sets: sets, cache: cache},
		store:  store,
		events: events,
	}
}

func (s *OrganizationService) CreateOrganization(ctx context.Context, userID string, org model.Organization, owner model.OrganizationMember) (string, error) {
	org.Name = sanitize.Input(org.Name)
	owner.Name = sanitize.Input(owner.Name)
	owner.Email = sanitize.Input(owner.Email)
	if org.Name == "" || userID == "" {
		return "", sd_errors.ErrInvalidOrganizationData
	}
	owner.UserID = userID

	id, err := s.store.CreateOrganization(ctx, org, owner)
	if err != nil {
		return "", err
	}
	s.events.Publish(ctx, util.EventOrganizationCreated, id)
	return id, nil
}

func (s *OrganizationService) GetOrganization(ctx context.Context, actorID, organizationID string) (*model.Organization, error) {
	actingMember, _, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actingMember.OrganizationID != organizationID {
		return nil, sd_errors.ErrForbidden
	}
	return s.store.GetOrganization(ctx, organizationID)
}

func (s *OrganizationService) UpdateOrganization(ctx context.Context, actorID string, org model.Organization) (*model.Organization, error) {
	actingMember, _, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	// Organization settings are the owner's alone.
	if actingMember.OrganizationID != org.ID || actingMember.Role != authz.RoleOwner {
		return nil, sd_errors.ErrForbidden
	}

	org.Name = sanitize.Input(org.Name)
	if org.Name == "" {
		return nil, sd_errors.ErrInvalidOrganizationData
	}

	updated, err := s.store.UpdateOrganization(ctx, org)
	if err != nil {
		return nil, err
	}
	s.events.Publish(ctx, util.EventOrganizationUpdated, org.ID)
	return updated, nil
}
