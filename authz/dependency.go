package authz

import "fmt"

// dependencyPair ties a manage capability to the view capability it
// requires within one category.
type dependencyPair struct {
	category   Category
	label      string
	manage     Capability
	view       Capability
	manageText string
	viewText   string
}

var dependencyPairs = []dependencyPair{
	{CategoryTeamMembers, "Team members", CapManageAll, CapViewAll, "manage all team members", "view all team members"},
	{CategoryProjects, "Projects", CapManageAll, CapViewAll, "manage all projects", "view all projects"},
	{CategoryProjects, "Projects", CapManageAssigned, CapViewAssigned, "manage assigned projects", "view assigned projects"},
	{CategoryInvoicing, "Invoicing", CapManageAll, CapViewAll, "manage all invoices", "view all invoices"},
	{CategoryInvoicing, "Invoicing", CapManageAssigned, CapViewAssigned, "manage assigned invoices", "view assigned invoices"},
	{CategoryClients, "Clients", CapManageAll, CapViewAll, "manage all clients", "view all clients"},
	{CategoryClients, "Clients", CapManageAssigned, CapViewAssigned, "manage assigned clients", "view assigned clients"},
}

// ValidateDependencies checks every manage/view pair of the matrix and
// returns a human-readable violation for each manage capability granted
// without its view counterpart. An empty result means the matrix is
// internally consistent. The check is advisory: the caller decides
// whether to block the save.
func ValidateDependencies(m *PermissionMatrix) []string {
	var violations []string
	for _, pair := range dependencyPairs {
		if m.Allows(pair.category, pair.manage) && !m.Allows(pair.category, pair.view) {
			violations = append(violations, fmt.Sprintf("%s: %s requires %s", pair.label, pair.manageText, pair.viewText))
		}
	}
	return violations
}
