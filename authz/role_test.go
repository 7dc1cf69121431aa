package authz

import "testing"

func TestRoleOrdering(t *testing.T) {
	if RoleOwner.Rank() <= RoleAdmin.Rank() {
		t.Fatal("owner must rank above admin")
	}
	if RoleAdmin.Rank() <= RoleMember.Rank() {
		t.Fatal("admin must rank above member")
	}
	if RoleMember.Rank() <= RoleGuest.Rank() {
		t.Fatal("member must rank above guest")
	}
}

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		role     Role
		required Role
		want     bool
	}{
		{RoleOwner, RoleOwner, true},
		{RoleOwner, RoleGuest, true},
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleOwner, false},
		{RoleMember, RoleAdmin, false},
		{RoleMember, RoleGuest, true},
		{RoleGuest, RoleMember, false},
		{RoleGuest, RoleGuest, true},
	}
	for _, tt := range tests {
		if got := tt.role.AtLeast(tt.required); got != tt.want {
			t.Errorf("%s.AtLeast(%s) = %v, want %v", tt.role, tt.required, got, tt.want)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"owner", "admin", "member", "guest"} {
		if _, err := ParseRole(valid); err != nil {
			t.Errorf("ParseRole(%q) unexpected error: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "Owner", "superadmin", "MEMBER"} {
		if _, err := ParseRole(invalid); err == nil {
			t.Errorf("ParseRole(%q) expected error", invalid)
		}
	}
}
