package sd_neo4j

// Node Labels
const (
	// LabelOrganization represents a tenant in the system
	LabelOrganization = "Organization"

	// LabelMember represents a user's membership in an organization
	LabelMember = "Member"

	// LabelPermissionSet represents a named capability grid attachable to members
	LabelPermissionSet = "PermissionSet"

	// LabelProject represents a project owned by an organization
	LabelProject = "Project"

	// LabelTask represents a task within a project
	LabelTask = "Task"

	// LabelWorklog represents time logged against a task
	LabelWorklog = "Worklog"
)
