package sd_neo4j

// Relationship Types
const (
	// RelMemberOf represents the relationship between a member and their organization
	RelMemberOf = "MEMBER_OF"

	// RelHasPermissionSet represents the relationship between a member and their attached permission set
	RelHasPermissionSet = "HAS_PERMISSION_SET"

	// RelOwns represents the relationship between an organization and its projects
	RelOwns = "OWNS"

	// RelOwnerOf represents the relationship between a member and projects they own
	RelOwnerOf = "OWNER_OF"

	// RelAssignedTo represents the relationship between a member and projects assigned to them
	RelAssignedTo = "ASSIGNED_TO"

	// RelPartOf represents the relationship between tasks and their project, and worklogs and their task
	RelPartOf = "PART_OF"
)
