package authz

// Visibility is the minimum audience a record field is shown to.
type Visibility string

const (
	VisibilityAdmin  Visibility = "admin"
	VisibilityMember Visibility = "member"
)

// FilterVisibleFields returns the record with every field stripped that
// the viewer may not see. Members viewing their own record, admins and
// owners see everything. Fields absent from the visibility map default
// to admin-only.
func FilterVisibleFields(record map[string]any, visibility map[string]Visibility, viewer Role, isSelf bool) map[string]any {
	if isSelf || viewer.AtLeast(RoleAdmin) {
		return record
	}

	filtered := make(map[string]any, len(record))
	for field, value := range record {
		if visibility[field] == VisibilityMember {
			filtered[field] = value
		}
	}
	return filtered
}
