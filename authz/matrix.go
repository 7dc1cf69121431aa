package authz

// Category identifies one group of capabilities in a permission matrix.
type Category string

const (
	CategoryTeamMembers Category = "teamMembers"
	CategoryProjects    Category = "projects"
	CategoryInvoicing   Category = "invoicing"
	CategoryClients     Category = "clients"
	CategoryWorklogs    Category = "worklogs"
)

// Capability is one boolean switch within a category.
type Capability string

const (
	CapViewAll        Capability = "viewAll"
	CapManageAll      Capability = "manageAll"
	CapViewAssigned   Capability = "viewAssigned"
	CapManageAssigned Capability = "manageAssigned"
)

// TeamPermissions covers organization-wide member administration.
type TeamPermissions struct {
	ViewAll   bool `json:"viewAll"`
	ManageAll bool `json:"manageAll"`
}

// ScopedPermissions covers categories whose resources can additionally be
// assigned to individual members.
type ScopedPermissions struct {
	ViewAll        bool `json:"viewAll"`
	ManageAll      bool `json:"manageAll"`
	ViewAssigned   bool `json:"viewAssigned"`
	ManageAssigned bool `json:"manageAssigned"`
}

// WorklogPermissions only distinguishes whether a member may manage
// worklogs other than their own.
type WorklogPermissions struct {
	ManageAll bool `json:"manageAll"`
}

// PermissionMatrix is the full capability grid of a permission set. The
// struct shape makes an unknown capability a compile-time error; Allows
// still fails closed for capabilities a category does not carry.
type PermissionMatrix struct {
	TeamMembers TeamPermissions    `json:"teamMembers"`
	Projects    ScopedPermissions  `json:"projects"`
	Invoicing   ScopedPermissions  `json:"invoicing"`
	Clients     ScopedPermissions  `json:"clients"`
	Worklogs    WorklogPermissions `json:"worklogs"`
}

// Allows reports whether the matrix grants the capability in the given
// category. Combinations a category does not expose resolve to false.
func (m *PermissionMatrix) Allows(category Category, capability Capability) bool {
	switch category {
	case CategoryTeamMembers:
		switch capability {
		case CapViewAll:
			return m.TeamMembers.ViewAll
		case CapManageAll:
			return m.TeamMembers.ManageAll
		}
	case CategoryProjects:
		return m.Projects.allows(capability)
	case CategoryInvoicing:
		return m.Invoicing.allows(capability)
	case CategoryClients:
		return m.Clients.allows(capability)
	case CategoryWorklogs:
		if capability == CapManageAll {
			return m.Worklogs.ManageAll
		}
	}
	return false
}

func (p ScopedPermissions) allows(capability Capability) bool {
	switch capability {
	case CapViewAll:
		return p.ViewAll
	case CapManageAll:
		return p.ManageAll
	case CapViewAssigned:
		return p.ViewAssigned
	case CapManageAssigned:
		return p.ManageAssigned
	}
	return false
}

// DefaultMemberMatrix returns the matrix applied to members with no
// permission set attached: they can see projects assigned to them and
// nothing else.
func DefaultMemberMatrix() *PermissionMatrix {
	return &PermissionMatrix{
		Projects: ScopedPermissions{ViewAssigned: true},
	}
}
