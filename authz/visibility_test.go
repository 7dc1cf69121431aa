package authz

import (
	"reflect"
	"testing"
)

func memberProfile() map[string]any {
	return map[string]any{
		"name":       "Dana",
		"email":      "dana@example.com",
		"hourlyRate": 85.0,
		"phone":      "+1-555-0100",
	}
}

func profileVisibility() map[string]Visibility {
	return map[string]Visibility{
		"name":       VisibilityMember,
		"email":      VisibilityMember,
		"hourlyRate": VisibilityAdmin,
		// phone intentionally unmapped: defaults to admin-only.
	}
}

func TestFilterVisibleFieldsSelf(t *testing.T) {
	record := memberProfile()
	got := FilterVisibleFields(record, profileVisibility(), RoleGuest, true)
	if !reflect.DeepEqual(got, record) {
		t.Fatalf("self view must be unfiltered, got %v", got)
	}
}

func TestFilterVisibleFieldsAdminAndOwner(t *testing.T) {
	record := memberProfile()
	for _, role := range []Role{RoleAdmin, RoleOwner} {
		got := FilterVisibleFields(record, profileVisibility(), role, false)
		if !reflect.DeepEqual(got, record) {
			t.Fatalf("%s view must be unfiltered, got %v", role, got)
		}
	}
}

func TestFilterVisibleFieldsMember(t *testing.T) {
	got := FilterVisibleFields(memberProfile(), profileVisibility(), RoleMember, false)
	want := map[string]any{"name": "Dana", "email": "dana@example.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("member view = %v, want %v", got, want)
	}
}

func TestFilterVisibleFieldsUnmappedDefaultsToAdmin(t *testing.T) {
	got := FilterVisibleFields(memberProfile(), nil, RoleMember, false)
	if len(got) != 0 {
		t.Fatalf("with no visibility map every field is admin-only, got %v", got)
	}
}
