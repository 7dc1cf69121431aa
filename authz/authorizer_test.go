package authz

import "testing"

func TestOwnerRoleAllowsEverything(t *testing.T) {
	owner := Member{Role: RoleOwner}
	for resource, actions := range actionGrants {
		for action := range actions {
			if !CanPerformAction(owner, action, resource, nil) {
				t.Errorf("owner denied %s %s", action, resource)
			}
		}
	}
	// Even pairs outside the grant table.
	if !CanPerformAction(owner, ActionDelete, Resource("board"), nil) {
		t.Error("owner denied unknown resource")
	}
}

func TestUnknownPairsDenied(t *testing.T) {
	admin := Member{Role: RoleAdmin, Matrix: fullMatrix()}
	if CanPerformAction(admin, ActionView, Resource("avatar"), nil) {
		t.Error("unknown resource must be denied")
	}
	if CanPerformAction(admin, Action("export"), ResourceProject, nil) {
		t.Error("unknown action must be denied")
	}
}

func TestGrantTableLookup(t *testing.T) {
	matrix := &PermissionMatrix{
		TeamMembers: TeamPermissions{ViewAll: true},
		Projects:    ScopedPermissions{ViewAll: true},
	}
	member := Member{Role: RoleMember, Matrix: matrix}

	if !CanPerformAction(member, ActionView, ResourceMember, nil) {
		t.Error("view member should map to teamMembers.viewAll")
	}
	if CanPerformAction(member, ActionCreate, ResourceMember, nil) {
		t.Error("create member requires teamMembers.manageAll")
	}
	if !CanPerformAction(member, ActionView, ResourceProject, nil) {
		t.Error("view project should map to projects.viewAll")
	}
	if CanPerformAction(member, ActionDelete, ResourceProject, nil) {
		t.Error("delete project requires projects.manageAll")
	}
}

func TestAssignmentFallback(t *testing.T) {
	matrix := &PermissionMatrix{
		Projects: ScopedPermissions{ViewAssigned: true, ManageAssigned: true},
	}
	member := Member{Role: RoleMember, Matrix: matrix}

	if CanPerformAction(member, ActionView, ResourceProject, nil) {
		t.Error("viewAssigned alone must not grant viewing unassigned projects")
	}
	if !CanPerformAction(member, ActionView, ResourceProject, &Context{IsAssigned: true}) {
		t.Error("assigned project should fall back to viewAssigned")
	}
	if !CanPerformAction(member, ActionUpdate, ResourceProject, &Context{IsAssigned: true}) {
		t.Error("assigned project should fall back to manageAssigned for update")
	}
	if CanPerformAction(member, ActionCreate, ResourceProject, &Context{IsAssigned: true}) {
		t.Error("create has no assignment scope")
	}
}

func TestOwnershipOverrideAsymmetry(t *testing.T) {
	// Owning a record grants view and update but never delete, even when
	// every manage capability is off.
	member := Member{Role: RoleMember, Matrix: &PermissionMatrix{}}
	owned := &Context{IsOwner: true}

	if !CanPerformAction(member, ActionView, ResourceProject, owned) {
		t.Error("record owner should view their record")
	}
	if !CanPerformAction(member, ActionUpdate, ResourceProject, owned) {
		t.Error("record owner should update their record")
	}
	if CanPerformAction(member, ActionDelete, ResourceProject, owned) {
		t.Error("ownership must not grant delete")
	}
}

func TestGuestAuthorization(t *testing.T) {
	guest := Member{Role: RoleGuest, Matrix: fullMatrix()}

	if !CanPerformAction(guest, ActionView, ResourceProject, &Context{IsAssigned: true}) {
		t.Error("guest should view assigned projects")
	}
	if CanPerformAction(guest, ActionView, ResourceProject, nil) {
		t.Error("guest must not view unassigned projects")
	}
	if CanPerformAction(guest, ActionUpdate, ResourceProject, &Context{IsAssigned: true}) {
		t.Error("guest must not update projects regardless of matrix")
	}
	if CanPerformAction(guest, ActionView, ResourceMember, nil) {
		t.Error("guest must not view the member list")
	}
}
