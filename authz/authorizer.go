package authz

// Action is a request-level verb on a resource.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource identifies the kind of record an action targets.
type Resource string

const (
	ResourceMember  Resource = "member"
	ResourceProject Resource = "project"
	ResourceInvoice Resource = "invoice"
	ResourceClient  Resource = "client"
	ResourceWorklog Resource = "worklog"
)

// Context carries per-request facts about the specific record being
// acted on. It is never persisted.
type Context struct {
	IsOwner    bool
	IsAssigned bool
}

// Member is the authorization view of an organization member: the role
// plus the matrix of the attached permission set, if any.
type Member struct {
	Role   Role
	Matrix *PermissionMatrix
}

// grant maps one (action, resource) pair onto the capability that allows
// it organization-wide, plus the assignment-scoped capability that
// allows it for records assigned to the caller (empty when the category
// has no assignment scope).
type grant struct {
	category Category
	all      Capability
	assigned Capability
}

var actionGrants = map[Resource]map[Action]grant{
	ResourceMember: {
		ActionView:   {CategoryTeamMembers, CapViewAll, ""},
		ActionCreate: {CategoryTeamMembers, CapManageAll, ""},
		ActionUpdate: {CategoryTeamMembers, CapManageAll, ""},
		ActionDelete: {CategoryTeamMembers, CapManageAll, ""},
	},
	ResourceProject: {
		ActionView:   {CategoryProjects, CapViewAll, CapViewAssigned},
		ActionCreate: {CategoryProjects, CapManageAll, ""},
		ActionUpdate: {CategoryProjects, CapManageAll, CapManageAssigned},
		ActionDelete: {CategoryProjects, CapManageAll, CapManageAssigned},
	},
	ResourceInvoice: {
		ActionView:   {CategoryInvoicing, CapViewAll, CapViewAssigned},
		ActionCreate: {CategoryInvoicing, CapManageAll, ""},
		ActionUpdate: {CategoryInvoicing, CapManageAll, CapManageAssigned},
		ActionDelete: {CategoryInvoicing, CapManageAll, CapManageAssigned},
	},
	ResourceClient: {
		ActionView:   {CategoryClients, CapViewAll, CapViewAssigned},
		ActionCreate: {CategoryClients, CapManageAll, ""},
		ActionUpdate: {CategoryClients, CapManageAll, CapManageAssigned},
		ActionDelete: {CategoryClients, CapManageAll, CapManageAssigned},
	},
	ResourceWorklog: {
		ActionView:   {CategoryWorklogs, CapManageAll, ""},
		ActionCreate: {CategoryWorklogs, CapManageAll, ""},
		ActionUpdate: {CategoryWorklogs, CapManageAll, ""},
		ActionDelete: {CategoryWorklogs, CapManageAll, ""},
	},
}

// CanPerformAction decides whether the member may perform the action on
// the given resource type. Pairs absent from the grant table are denied.
//
// Owning the specific record grants view and update on it even without
// the matching capability, but never delete: single-record ownership
// does not imply management rights over the record's lifecycle. The
// asymmetry is intentional.
func CanPerformAction(member Member, action Action, resource Resource, ctx *Context) bool {
	if member.Role == RoleOwner {
		return true
	}

	grants, ok := actionGrants[resource]
	if !ok {
		return false
	}
	g, ok := grants[action]
	if !ok {
		return false
	}

	if ctx != nil && ctx.IsOwner && (action == ActionView || action == ActionUpdate) {
		return true
	}

	if HasCapability(member.Role, member.Matrix, g.category, g.all) {
		return true
	}
	if ctx != nil && ctx.IsAssigned && g.assigned != "" {
		return HasCapability(member.Role, member.Matrix, g.category, g.assigned)
	}
	return false
}
