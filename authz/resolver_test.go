package authz

import "testing"

var allCategories = map[Category][]Capability{
	CategoryTeamMembers: {CapViewAll, CapManageAll},
	CategoryProjects:    {CapViewAll, CapManageAll, CapViewAssigned, CapManageAssigned},
	CategoryInvoicing:   {CapViewAll, CapManageAll, CapViewAssigned, CapManageAssigned},
	CategoryClients:     {CapViewAll, CapManageAll, CapViewAssigned, CapManageAssigned},
	CategoryWorklogs:    {CapManageAll},
}

func fullMatrix() *PermissionMatrix {
	return &PermissionMatrix{
		TeamMembers: TeamPermissions{ViewAll: true, ManageAll: true},
		Projects:    ScopedPermissions{ViewAll: true, ManageAll: true, ViewAssigned: true, ManageAssigned: true},
		Invoicing:   ScopedPermissions{ViewAll: true, ManageAll: true, ViewAssigned: true, ManageAssigned: true},
		Clients:     ScopedPermissions{ViewAll: true, ManageAll: true, ViewAssigned: true, ManageAssigned: true},
		Worklogs:    WorklogPermissions{ManageAll: true},
	}
}

func TestOwnerBypassesMatrix(t *testing.T) {
	for _, matrix := range []*PermissionMatrix{nil, {}, fullMatrix()} {
		for category, capabilities := range allCategories {
			for _, capability := range capabilities {
				if !HasCapability(RoleOwner, matrix, category, capability) {
					t.Errorf("owner denied %s.%s with matrix %+v", category, capability, matrix)
				}
			}
		}
	}
}

func TestGuestPinnedToViewAssignedProjects(t *testing.T) {
	// A permission set attached to a guest must never elevate them.
	for _, matrix := range []*PermissionMatrix{nil, fullMatrix()} {
		for category, capabilities := range allCategories {
			for _, capability := range capabilities {
				want := category == CategoryProjects && capability == CapViewAssigned
				if got := HasCapability(RoleGuest, matrix, category, capability); got != want {
					t.Errorf("guest %s.%s = %v, want %v", category, capability, got, want)
				}
			}
		}
	}
}

func TestCustomMatrixLookup(t *testing.T) {
	matrix := &PermissionMatrix{TeamMembers: TeamPermissions{ViewAll: true}}

	if !HasCapability(RoleMember, matrix, CategoryTeamMembers, CapViewAll) {
		t.Error("granted capability denied")
	}
	if HasCapability(RoleMember, matrix, CategoryTeamMembers, CapManageAll) {
		t.Error("ungranted capability allowed")
	}
	// teamMembers does not carry assignment-scoped capabilities.
	if HasCapability(RoleMember, matrix, CategoryTeamMembers, CapViewAssigned) {
		t.Error("capability the category does not expose must resolve to false")
	}
}

func TestMemberDefaultsWithoutMatrix(t *testing.T) {
	if !HasCapability(RoleMember, nil, CategoryProjects, CapViewAssigned) {
		t.Error("member without permission set must see assigned projects")
	}
	denied := []struct {
		category   Category
		capability Capability
	}{
		{CategoryTeamMembers, CapManageAll},
		{CategoryTeamMembers, CapViewAll},
		{CategoryProjects, CapViewAll},
		{CategoryProjects, CapManageAssigned},
		{CategoryInvoicing, CapViewAssigned},
		{CategoryWorklogs, CapManageAll},
	}
	for _, d := range denied {
		if HasCapability(RoleMember, nil, d.category, d.capability) {
			t.Errorf("member without permission set granted %s.%s", d.category, d.capability)
		}
	}
}

func TestAdminUsesMatrixLikeMember(t *testing.T) {
	matrix := &PermissionMatrix{Clients: ScopedPermissions{ViewAll: true}}
	if !HasCapability(RoleAdmin, matrix, CategoryClients, CapViewAll) {
		t.Error("admin denied granted capability")
	}
	if HasCapability(RoleAdmin, matrix, CategoryClients, CapManageAll) {
		t.Error("admin role alone must not grant ungranted capabilities")
	}
}
