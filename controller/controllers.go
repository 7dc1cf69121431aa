package controller

import "github.com/sprintdeck/api/service"

type Controllers struct {
	Organization  *OrganizationController
	Member        *MemberController
	PermissionSet *PermissionSetController
	Project       *ProjectController
}

func InitializeControllers(services *service.Services) *Controllers {
	return &Controllers{
		Organization:  NewOrganizationController(services.Organization),
		Member:        NewMemberController(services.Member),
		PermissionSet: NewPermissionSetController(services.PermissionSet),
		Project:       NewProjectController(services.Project),
	}
}
