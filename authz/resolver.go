package authz

// HasCapability decides whether a member with the given role and optional
// permission set matrix holds one capability.
//
// The check order is load-bearing: owners bypass the matrix entirely, so
// a misconfigured permission set can never reduce an owner's access, and
// guests are pinned to their fixed allowance before any matrix lookup, so
// a permission set can never elevate a guest.
func HasCapability(role Role, matrix *PermissionMatrix, category Category, capability Capability) bool {
	if role == RoleOwner {
		return true
	}
	if role == RoleGuest {
		return category == CategoryProjects && capability == CapViewAssigned
	}
	if matrix == nil {
		matrix = DefaultMemberMatrix()
	}
	return matrix.Allows(category, capability)
}
