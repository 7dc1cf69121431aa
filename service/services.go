package service

import (
	"context"

	"github.com/sprintdeck/api/authz"
	"github.com/sprintdeck/api/model"
)

// MemberStore is the persistence surface the member service needs.
// Implemented by dao.MemberDAO.
type MemberStore interface {
	CreateMember(ctx context.Context, member model.OrganizationMember) (string, error)
	GetMember(ctx context.Context, memberID string) (*model.OrganizationMember, error)
	ListMembers(ctx context.Context, organizationID string, limit, offset int) ([]*model.OrganizationMember, error)
	SearchMembers(ctx context.Context, criteria model.MemberSearchCriteria) ([]*model.OrganizationMember, error)
	UpdateMemberRole(ctx context.Context, memberID string, role authz.Role) (*model.OrganizationMember, error)
	AttachPermissionSet(ctx context.Context, memberID, setID string) error
	DeleteMember(ctx context.Context, memberID string) error
}

// PermissionSetStore is implemented by dao.PermissionSetDAO.
type PermissionSetStore interface {
	CreatePermissionSet(ctx context.Context, set model.PermissionSet) (string, error)
	GetPermissionSet(ctx context.Context, setID string) (*model.PermissionSet, error)
	ListPermissionSets(ctx context.Context, organizationID string, limit, offset int) ([]*model.PermissionSet, error)
	UpdatePermissionSet(ctx context.Context, set model.PermissionSet) (*model.PermissionSet, error)
	DeletePermissionSet(ctx context.Context, setID string) error
}

// ProjectStore is implemented by dao.ProjectDAO.
type ProjectStore interface {
	CreateProject(ctx context.Context, project model.Project) (string, error)
	GetProject(ctx context.Context, projectID string) (*model.Project, error)
	ListProjects(ctx context.Context, organizationID string, limit, offset int) ([]*model.Project, error)
	UpdateProject(ctx context.Context, project model.Project) (*model.Project, error)
	DeleteProject(ctx context.Context, projectID string) error
	AssignMember(ctx context.Context, projectID, memberID string) error
	IsAssigned(ctx context.Context, projectID, memberID string) (bool, error)
	CreateTask(ctx context.Context, task model.Task) (string, error)
	GetTask(ctx context.Context, taskID string) (*model.Task, error)
	ListTasks(ctx context.Context, projectID string) ([]*model.Task, error)
	CreateWorklog(ctx context.Context, worklog model.Worklog) (string, error)
	ListWorklogs(ctx context.Context, taskID string) ([]*model.Worklog, error)
}

// Cache is implemented by util.CacheService. Services treat cache
// failures as misses.
type Cache interface {
	GetMember(ctx context.Context, memberID string) (*model.OrganizationMember, error)
	SetMember(ctx context.Context, member model.OrganizationMember) error
	DeleteMember(ctx context.Context, memberID string) error
	GetPermissionSet(ctx context.Context, setID string) (*model.PermissionSet, error)
	SetPermissionSet(ctx context.Context, set model.PermissionSet) error
	DeletePermissionSet(ctx context.Context, setID string) error
}

// EventPublisher is implemented by util.EventBus.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, subjectID string)
}

// Notifier is implemented by util.NotificationService.
type Notifier interface {
	NotifyRoleChange(ctx context.Context, member model.OrganizationMember, oldRole authz.Role) error
	NotifyPermissionSetChange(ctx context.Context, changeType string, set model.PermissionSet) error
	NotifyProjectAssignment(ctx context.Context, projectID, memberID string) error
}

// IMemberService is the surface consumed by the member controller.
type IMemberService interface {
	AddMember(ctx context.Context, actorID string, member model.OrganizationMember) (string, error)
	GetMemberProfile(ctx context.Context, actorID, memberID string) (map[string]any, error)
	ListMemberProfiles(ctx context.Context, actorID, organizationID string, limit, offset int) ([]map[string]any, error)
	SearchMemberProfiles(ctx context.Context, actorID string, criteria model.MemberSearchCriteria) ([]map[string]any, error)
	ChangeRole(ctx context.Context, actorID, memberID string, role authz.Role) (*model.OrganizationMember, error)
	AttachPermissionSet(ctx context.Context, actorID, memberID, setID string) error
	RemoveMember(ctx context.Context, actorID, memberID string) error
}

// IPermissionSetService is the surface consumed by the permission set
// controller.
type IPermissionSetService interface {
	CreatePermissionSet(ctx context.Context, actorID string, set model.PermissionSet) (*model.PermissionSet, error)
	GetPermissionSet(ctx context.Context, actorID, setID string) (*model.PermissionSet, error)
	ListPermissionSets(ctx context.Context, actorID, organizationID string, limit, offset int) ([]*model.PermissionSet, error)
	UpdatePermissionSet(ctx context.Context, actorID string, set model.PermissionSet) (*model.PermissionSet, error)
	DeletePermissionSet(ctx context.Context, actorID, setID string) error
}

// IProjectService is the surface consumed by the project controller.
type IProjectService interface {
	CreateProject(ctx context.Context, actorID string, project model.Project) (string, error)
	GetProject(ctx context.Context, actorID, projectID string) (*model.Project, error)
	ListProjects(ctx context.Context, actorID, organizationID string, limit, offset int) ([]*model.Project, error)
	UpdateProject(ctx context.Context, actorID string, project model.Project) (*model.Project, error)
	DeleteProject(ctx context.Context, actorID, projectID string) error
	AssignMember(ctx context.Context, actorID, projectID, memberID string) error
	CreateTask(ctx context.Context, actorID string, task model.Task) (string, error)
	ListTasks(ctx context.Context, actorID, projectID string) ([]*model.Task, error)
	LogWork(ctx context.Context, actorID string, worklog model.Worklog) (string, error)
	ListWorklogs(ctx context.Context, actorID, taskID string) ([]*model.Worklog, error)
}
