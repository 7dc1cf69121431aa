// test/mock/services.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sprintdeck/api/authz"
	"github.com/sprintdeck/api/model"
)

// MockPermissionSetService is a mock implementation of
// service.IPermissionSetService
type MockPermissionSetService struct {
	mock.Mock
}

func (m *MockPermissionSetService) CreatePermissionSet(ctx context.Context, actorID string, set model.PermissionSet) (*model.PermissionSet, error) {
	args := m.Called(ctx, actorID, set)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PermissionSet), args.Error(1)
}

func (m *MockPermissionSetService) GetPermissionSet(ctx context.Context, actorID, setID string) (*model.PermissionSet, error) {
	args := m.Called(ctx, actorID, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PermissionSet), args.Error(1)
}

func (m *MockPermissionSetService) ListPermissionSets(ctx context.Context, actorID, organizationID string, limit, offset int) ([]*model.PermissionSet, error) {
	args := m.Called(ctx, actorID, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PermissionSet), args.Error(1)
}

func (m *MockPermissionSetService) UpdatePermissionSet(ctx context.Context, actorID string, set model.PermissionSet) (*model.PermissionSet, error) {
	args := m.Called(ctx, actorID, set)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PermissionSet), args.Error(1)
}

func (m *MockPermissionSetService) DeletePermissionSet(ctx context.Context, actorID, setID string) error {
	args := m.Called(ctx, actorID, setID)
	return args.Error(0)
}

// MockMemberService is a mock implementation of service.IMemberService
type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) AddMember(ctx context.Context, actorID string, member model.OrganizationMember) (string, error) {
	args := m.Called(ctx, actorID, member)
	return args.String(0), args.Error(1)
}

func (m *MockMemberService) GetMemberProfile(ctx context.Context, actorID, memberID string) (map[string]any, error) {
	args := m.Called(ctx, actorID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockMemberService) ListMemberProfiles(ctx context.Context, actorID, organizationID string, limit, offset int) ([]map[string]any, error) {
	args := m.Called(ctx, actorID, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

func (m *MockMemberService) SearchMemberProfiles(ctx context.Context, actorID string, criteria model.MemberSearchCriteria) ([]map[string]any, error) {
	args := m.Called(ctx, actorID, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

func (m *MockMemberService) ChangeRole(ctx context.Context, actorID, memberID string, role authz.Role) (*model.OrganizationMember, error) {
	args := m.Called(ctx, actorID, memberID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrganizationMember), args.Error(1)
}

func (m *MockMemberService) AttachPermissionSet(ctx context.Context, actorID, memberID, setID string) error {
	args := m.Called(ctx, actorID, memberID, setID)
	return args.Error(0)
}

func (m *MockMemberService) RemoveMember(ctx context.Context, actorID, memberID string) error {
	args := m.Called(ctx, actorID, memberID)
	return args.Error(0)
}

// MockProjectService is a mock implementation of service.IProjectService
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) CreateProject(ctx context.Context, actorID string, project model.Project) (string, error) {
	args := m.Called(ctx, actorID, project)
	return args.String(0), args.Error(1)
}

func (m *MockProjectService) GetProject(ctx context.Context, actorID, projectID string) (*model.Project, error) {
	args := m.Called(ctx, actorID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) ListProjects(ctx context.Context, actorID, organizationID string, limit, offset int) ([]*model.Project, error) {
	args := m.Called(ctx, actorID, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Project), args.Error(1)
}

func (m *MockProjectService) UpdateProject(ctx context.Context, actorID string, project model.Project) (*model.Project, error) {
	args := m.Called(ctx, actorID, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) DeleteProject(ctx context.Context, actorID, projectID string) error {
	args := m.Called(ctx, actorID, projectID)
	return args.Error(0)
}

func (m *MockProjectService) AssignMember(ctx context.Context, actorID, projectID, memberID string) error {
	args := m.Called(ctx, actorID, projectID, memberID)
	return args.Error(0)
}

func (m *MockProjectService) CreateTask(ctx context.Context, actorID string, task model.Task) (string, error) {
	args := m.Called(ctx, actorID, task)
	return args.String(0), args.Error(1)
}

func (m *MockProjectService) ListTasks(ctx context.Context, actorID, projectID string) ([]*model.Task, error) {
	args := m.Called(ctx, actorID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Task), args.Error(1)
}

func (m *MockProjectService) LogWork(ctx context.Context, actorID string, worklog model.Worklog) (string, error) {
	args := m.Called(ctx, actorID, worklog)
	return args.String(0), args.Error(1)
}

func (m *MockProjectService) ListWorklogs(ctx context.Context, actorID, taskID string) ([]*model.Worklog, error) {
	args := m.Called(ctx, actorID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Worklog), args.Error(1)
}
