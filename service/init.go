package service

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/sprintdeck/api/audit"
	"github.com/sprintdeck/api/dao"
	"github.com/sprintdeck/api/util"
)

type Services struct {
	Organization  IOrganizationService
	Member        IMemberService
	PermissionSet IPermissionSetService
	Project       IProjectService
}

func InitializeServices(
	driver neo4j.Driver,
	auditService audit.Service,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) (*Services, error) {
	organizationDAO := dao.NewOrganizationDAO(driver, auditService)
	memberDAO := dao.NewMemberDAO(driver, auditService)
	permissionSetDAO := dao.NewPermissionSetDAO(driver, auditService)
	projectDAO := dao.NewProjectDAO(driver, auditService)

	services := &Services{
		Organization:  NewOrganizationService(organizationDAO, memberDAO, permissionSetDAO, cacheService, eventBus),
		Member:        NewMemberService(memberDAO, permissionSetDAO, cacheService, notificationSvc, eventBus),
		PermissionSet: NewPermissionSetService(permissionSetDAO, memberDAO, cacheService, notificationSvc, eventBus),
		Project:       NewProjectService(projectDAO, memberDAO, permissionSetDAO, cacheService, notificationSvc, eventBus),
	}

	return services, nil
}
