package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintdeck/api/authz"
	sd_errors "github.com/sprintdeck/api/errors"
	"github.com/sprintdeck/api/model"
)

func memberFixture() (*MemberService, *fakeMemberStore) {
	sets := newFakePermissionSetStore(&model.PermissionSet{
		ID:             "set-viewer",
		OrganizationID: "org-1",
		Name:           "Viewers",
		Matrix: authz.PermissionMatrix{
			TeamMembers: authz.TeamPermissions{ViewAll: true},
		},
	})
	members := newFakeMemberStore(
		&model.OrganizationMember{ID: "owner", OrganizationID: "org-1", Role: authz.RoleOwner, Name: "Olive Owner"},
		&model.OrganizationMember{ID: "viewer", OrganizationID: "org-1", Role: authz.RoleMember, PermissionSetID: "set-viewer", Name: "Vera Viewer"},
		&model.OrganizationMember{
			ID:             "colleague",
			OrganizationID: "org-1",
			Role:           authz.RoleMember,
			Name:           "Carl Colleague",
			Phone:          "555-0101",
			HourlyRate:     120,
		},
	)
	return NewMemberService(members, sets, noopCache{}, noopNotifier{}, noopEvents{}), members
}

func TestGetMemberProfileHidesAdminFieldsFromMembers(t *testing.T) {
	svc, _ := memberFixture()

	profile, err := svc.GetMemberProfile(context.Background(), "viewer", "colleague")
	require.NoError(t, err)

	assert.Equal(t, "Carl Colleague", profile["name"])
	assert.NotContains(t, profile, "phone")
	assert.NotContains(t, profile, "hourly_rate")
}

func TestGetMemberProfileSelfSeesEverything(t *testing.T) {
	svc, _ := memberFixture()

	profile, err := svc.GetMemberProfile(context.Background(), "colleague", "colleague")
	require.NoError(t, err)

	assert.Equal(t, "555-0101", profile["phone"])
	assert.Equal(t, float64(120), profile["hourly_rate"])
}

func TestGetMemberProfileOwnerSeesEverything(t *testing.T) {
	svc, _ := memberFixture()

	profile, err := svc.GetMemberProfile(context.Background(), "owner", "colleague")
	require.NoError(t, err)
	assert.Equal(t, "555-0101", profile["phone"])
}

func TestGetMemberProfileForbiddenWithoutViewAll(t *testing.T) {
	svc, _ := memberFixture()

	_, err := svc.GetMemberProfile(context.Background(), "colleague", "viewer")
	assert.ErrorIs(t, err, sd_errors.ErrForbidden)
}

func TestChangeRoleRequiresManageMembers(t *testing.T) {
	svc, _ := memberFixture()

	_, err := svc.ChangeRole(context.Background(), "viewer", "colleague", authz.RoleAdmin)
	assert.ErrorIs(t, err, sd_errors.ErrForbidden)
}

func TestChangeRoleByOwner(t *testing.T) {
	svc, store := memberFixture()

	updated, err := svc.ChangeRole(context.Background(), "owner", "colleague", authz.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleAdmin, updated.Role)

	stored, err := store.GetMember(context.Background(), "colleague")
	require.NoError(t, err)
	assert.Equal(t, authz.RoleAdmin, stored.Role)
}

func TestChangeRoleCannotPromoteToOwner(t *testing.T) {
	svc, _ := memberFixture()

	_, err := svc.ChangeRole(context.Background(), "owner", "colleague", authz.RoleOwner)
	assert.ErrorIs(t, err, sd_errors.ErrInvalidMemberData)
}

func TestChangeRoleCannotDemoteOwner(t *testing.T) {
	svc, _ := memberFixture()

	_, err := svc.ChangeRole(context.Background(), "owner", "owner", authz.RoleMember)
	assert.ErrorIs(t, err, sd_errors.ErrInvalidMemberData)
}

func TestAttachPermissionSetRejectsCrossOrganization(t *testing.T) {
	sets := newFakePermissionSetStore(&model.PermissionSet{
		ID:             "set-other",
		OrganizationID: "org-2",
		Name:           "Other",
	})
	members := newFakeMemberStore(
		&model.OrganizationMember{ID: "owner", OrganizationID: "org-1", Role: authz.RoleOwner},
		&model.OrganizationMember{ID: "colleague", OrganizationID: "org-1", Role: authz.RoleMember},
	)
	svc := NewMemberService(members, sets, noopCache{}, noopNotifier{}, noopEvents{})

	err := svc.AttachPermissionSet(context.Background(), "owner", "colleague", "set-other")
	assert.ErrorIs(t, err, sd_errors.ErrInvalidMemberData)
}

func TestRemoveMemberCannotRemoveOwner(t *testing.T) {
	svc, _ := memberFixture()

	err := svc.RemoveMember(context.Background(), "owner", "owner")
	assert.ErrorIs(t, err, sd_errors.ErrInvalidMemberData)
}

func TestSearchMemberProfilesByRole(t *testing.T) {
	svc, _ := memberFixture()

	profiles, err := svc.SearchMemberProfiles(context.Background(), "viewer", model.MemberSearchCriteria{
		Role: authz.RoleOwner,
	})
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Olive Owner", profiles[0]["name"])
}

func TestSearchMemberProfilesPinnedToActorOrganization(t *testing.T) {
	svc, store := memberFixture()
	store.members["outsider"] = &model.OrganizationMember{
		ID: "outsider", OrganizationID: "org-2", Role: authz.RoleMember, Name: "Oscar Outsider",
	}

	profiles, err := svc.SearchMemberProfiles(context.Background(), "viewer", model.MemberSearchCriteria{
		OrganizationID: "org-2",
	})
	require.NoError(t, err)
	for _, p := range profiles {
		assert.NotEqual(t, "Oscar Outsider", p["name"])
	}
	assert.Len(t, profiles, 3)
}

func TestSearchMemberProfilesRespectsVisibility(t *testing.T) {
	svc, _ := memberFixture()

	profiles, err := svc.SearchMemberProfiles(context.Background(), "viewer", model.MemberSearchCriteria{})
	require.NoError(t, err)
	for _, p := range profiles {
		assert.NotContains(t, p, "hourly_rate")
	}
}

func TestSearchMemberProfilesInvalidRoleRejected(t *testing.T) {
	svc, _ := memberFixture()

	_, err := svc.SearchMemberProfiles(context.Background(), "viewer", model.MemberSearchCriteria{
		Role: authz.Role("superuser"),
	})
	assert.ErrorIs(t, err, sd_errors.ErrInvalidMemberData)
}

func TestSearchMemberProfilesWithoutViewCapabilityDenied(t *testing.T) {
	svc, _ := memberFixture()

	_, err := svc.SearchMemberProfiles(context.Background(), "colleague", model.MemberSearchCriteria{})
	assert.ErrorIs(t, err, sd_errors.ErrForbidden)
}

func TestAddMemberSanitizesProfileFields(t *testing.T) {
	svc, store := memberFixture()

	id, err := svc.AddMember(context.Background(), "owner", model.OrganizationMember{
		UserID:         "user-9",
		OrganizationID: "org-1",
		Role:           authz.RoleMember,
		Name:           "Nina<script>x</script>",
		Email:          "nina@example.com",
	})
	require.NoError(t, err)

	stored, err := store.GetMember(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Nina", stored.Name)
}
