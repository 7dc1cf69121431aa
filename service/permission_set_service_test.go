package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintdeck/api/authz"
	sd_errors "github.com/sprintdeck/api/errors"
	"github.com/sprintdeck/api/model"
)

func managerMatrix() authz.PermissionMatrix {
	return authz.PermissionMatrix{
		TeamMembers: authz.TeamPermissions{ViewAll: true, ManageAll: true},
	}
}

func permissionSetFixture() (*PermissionSetService, *fakeMemberStore, *fakePermissionSetStore) {
	sets := newFakePermissionSetStore(&model.PermissionSet{
		ID:             "set-manager",
		OrganizationID: "org-1",
		Name:           "Managers",
		Matrix:         managerMatrix(),
	})
	members := newFakeMemberStore(
		&model.OrganizationMember{ID: "owner", OrganizationID: "org-1", Role: authz.RoleOwner},
		&model.OrganizationMember{ID: "manager", OrganizationID: "org-1", Role: authz.RoleAdmin, PermissionSetID: "set-manager"},
		&model.OrganizationMember{ID: "plain", OrganizationID: "org-1", Role: authz.RoleMember},
	)
	svc := NewPermissionSetService(sets, members, noopCache{}, noopNotifier{}, noopEvents{})
	return svc, members, sets
}

func TestCreatePermissionSetRejectsDependencyViolations(t *testing.T) {
	svc, _, _ := permissionSetFixture()

	set := model.PermissionSet{
		OrganizationID: "org-1",
		Name:           "Broken",
		Matrix: authz.PermissionMatrix{
			Projects: authz.ScopedPermissions{ManageAll: true, ManageAssigned: true},
			Clients:  authz.ScopedPermissions{ManageAll: true},
		},
	}

	_, err := svc.CreatePermissionSet(context.Background(), "owner", set)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sd_errors.ErrPermissionDependency))

	var depErr *sd_errors.PermissionDependencyError
	require.True(t, errors.As(err, &depErr))
	assert.Len(t, depErr.Violations, 3)
}

func TestCreatePermissionSetValidMatrix(t *testing.T) {
	svc, _, sets := permissionSetFixture()

	set := model.PermissionSet{
		OrganizationID: "org-1",
		Name:           "Billing",
		Matrix: authz.PermissionMatrix{
			Invoicing: authz.ScopedPermissions{ViewAll: true, ManageAll: true},
		},
	}

	created, err := svc.CreatePermissionSet(context.Background(), "owner", set)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	stored, err := sets.GetPermissionSet(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Billing", stored.Name)
}

func TestCreatePermissionSetForbiddenWithoutManageMembers(t *testing.T) {
	svc, _, _ := permissionSetFixture()

	set := model.PermissionSet{OrganizationID: "org-1", Name: "Anything"}
	_, err := svc.CreatePermissionSet(context.Background(), "plain", set)
	assert.ErrorIs(t, err, sd_errors.ErrForbidden)
}

func TestCreatePermissionSetAllowedViaAttachedSet(t *testing.T) {
	svc, _, _ := permissionSetFixture()

	set := model.PermissionSet{OrganizationID: "org-1", Name: "Support"}
	created, err := svc.CreatePermissionSet(context.Background(), "manager", set)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestCreatePermissionSetSanitizesName(t *testing.T) {
	svc, _, _ := permissionSetFixture()

	set := model.PermissionSet{
		OrganizationID: "org-1",
		Name:           "Ops<script>alert(1)</script>",
	}
	created, err := svc.CreatePermissionSet(context.Background(), "owner", set)
	require.NoError(t, err)
	assert.Equal(t, "Ops", created.Name)
}

func TestUpdatePermissionSetRevalidatesDependencies(t *testing.T) {
	svc, _, _ := permissionSetFixture()

	set := model.PermissionSet{
		ID:             "set-manager",
		OrganizationID: "org-1",
		Name:           "Managers",
		Matrix: authz.PermissionMatrix{
			TeamMembers: authz.TeamPermissions{ManageAll: true},
		},
	}
	_, err := svc.UpdatePermissionSet(context.Background(), "owner", set)
	assert.ErrorIs(t, err, sd_errors.ErrPermissionDependency)
}

func TestDeletePermissionSetUnknownActorDenied(t *testing.T) {
	svc, _, _ := permissionSetFixture()

	err := svc.DeletePermissionSet(context.Background(), "ghost", "set-manager")
	assert.ErrorIs(t, err, sd_errors.ErrForbidden)
}
