package service

import (
	"context"
	"fmt"

	"github.com/sprintdeck/api/authz"
	sd_errors "github.com/sprintdeck/api/errors"
	"github.com/sprintdeck/api/model"
)

type fakeMemberStore struct {
	members map[string]*model.OrganizationMember
	nextID  int
}

func newFakeMemberStore(members ...*model.OrganizationMember) *fakeMemberStore {
	s := &fakeMemberStore{members: make(map[string]*model.OrganizationMember)}
	for _, m := range members {
		s.members[m.ID] = m
	}
	return s
}

func (s *fakeMemberStore) CreateMember(ctx context.Context, member model.OrganizationMember) (string, error) {
	s.nextID++
	member.ID = fmt.Sprintf("member-%d", s.nextID)
	s.members[member.ID] = &member
	return member.ID, nil
}

func (s *fakeMemberStore) GetMember(ctx context.Context, memberID string) (*model.OrganizationMember, error) {
	m, ok := s.members[memberID]
	if !ok {
		return nil, sd_errors.ErrMemberNotFound
	}
	copied := *m
	return &copied, nil
}

func (s *fakeMemberStore) ListMembers(ctx context.Context, organizationID string, limit, offset int) ([]*model.OrganizationMember, error) {
	var out []*model.OrganizationMember
	for _, m := range s.members {
		if m.OrganizationID == organizationID {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeMemberStore) SearchMembers(ctx context.Context, criteria model.MemberSearchCriteria) ([]*model.OrganizationMember, error) {
	var out []*model.OrganizationMember
	for _, m := range s.members {
		if m.OrganizationID != criteria.OrganizationID {
			continue
		}
		if criteria.Role != "" && m.Role != criteria.Role {
			continue
		}
		copied := *m
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeMemberStore) UpdateMemberRole(ctx context.Context, memberID string, role authz.Role) (*model.OrganizationMember, error) {
	m, ok := s.members[memberID]
	if !ok {
		return nil, sd_errors.ErrMemberNotFound
	}
	m.Role = role
	copied := *m
	return &copied, nil
}

func (s *fakeMemberStore) AttachPermissionSet(ctx context.Context, memberID, setID string) error {
	m, ok := s.members[memberID]
	if !ok {
		return sd_errors.ErrMemberNotFound
	}
	m.PermissionSetID = setID
	return nil
}

func (s *fakeMemberStore) DeleteMember(ctx context.Context, memberID string) error {
	if _, ok := s.members[memberID]; !ok {
		return sd_errors.ErrMemberNotFound
	}
	delete(s.members, memberID)
	return nil
}

type fakePermissionSetStore struct {
	sets   map[string]*model.PermissionSet
	nextID int
}

func newFakePermissionSetStore(sets ...*model.PermissionSet) *fakePermissionSetStore {
	s := &fakePermissionSetStore{sets: make(map[string]*model.PermissionSet)}
	for _, set := range sets {
		s.sets[set.ID] = set
	}
	return s
}

func (s *fakePermissionSetStore) CreatePermissionSet(ctx context.Context, set model.PermissionSet) (string, error) {
	s.nextID++
	set.ID = fmt.Sprintf("set-%d", s.nextID)
	s.sets[set.ID] = &set
	return set.ID, nil
}

func (s *fakePermissionSetStore) GetPermissionSet(ctx context.Context, setID string) (*model.PermissionSet, error) {
	set, ok := s.sets[setID]
	if !ok {
		return nil, sd_errors.ErrPermissionSetNotFound
	}
	copied := *set
	return &copied, nil
}

func (s *fakePermissionSetStore) ListPermissionSets(ctx context.Context, organizationID string, limit, offset int) ([]*model.PermissionSet, error) {
	var out []*model.PermissionSet
	for _, set := range s.sets {
		if set.OrganizationID == organizationID {
			copied := *set
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakePermissionSetStore) UpdatePermissionSet(ctx context.Context, set model.PermissionSet) (*model.PermissionSet, error) {
	if _, ok := s.sets[set.ID]; !ok {
		return nil, sd_errors.ErrPermissionSetNotFound
	}
	s.sets[set.ID] = &set
	copied := set
	return &copied, nil
}

func (s *fakePermissionSetStore) DeletePermissionSet(ctx context.Context, setID string) error {
	if _, ok := s.sets[setID]; !ok {
		return sd_errors.ErrPermissionSetNotFound
	}
	delete(s.sets, setID)
	return nil
}

type fakeProjectStore struct {
	projects map[string]*model.Project
	tasks    map[string]*model.Task
	worklogs []*model.Worklog
	nextID   int
}

func newFakeProjectStore(projects ...*model.Project) *fakeProjectStore {
	s := &fakeProjectStore{
		projects: make(map[string]*model.Project),
		tasks:    make(map[string]*model.Task),
	}
	for _, p := range projects {
		s.projects[p.ID] = p
	}
	return s
}

func (s *fakeProjectStore) seedTask(task *model.Task) {
	s.tasks[task.ID] = task
}

func (s *fakeProjectStore) CreateProject(ctx context.Context, project model.Project) (string, error) {
	s.nextID++
	project.ID = fmt.Sprintf("project-%d", s.nextID)
	s.projects[project.ID] = &project
	return project.ID, nil
}

func (s *fakeProjectStore) GetProject(ctx context.Context, projectID string) (*model.Project, error) {
	p, ok := s.projects[projectID]
	if !ok {
		return nil, sd_errors.ErrProjectNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *fakeProjectStore) ListProjects(ctx context.Context, organizationID string, limit, offset int) ([]*model.Project, error) {
	var out []*model.Project
	for _, p := range s.projects {
		if p.OrganizationID == organizationID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeProjectStore) UpdateProject(ctx context.Context, project model.Project) (*model.Project, error) {
	if _, ok := s.projects[project.ID]; !ok {
		return nil, sd_errors.ErrProjectNotFound
	}
	s.projects[project.ID] = &project
	copied := project
	return &copied, nil
}

func (s *fakeProjectStore) DeleteProject(ctx context.Context, projectID string) error {
	if _, ok := s.projects[projectID]; !ok {
		return sd_errors.ErrProjectNotFound
	}
	delete(s.projects, projectID)
	return nil
}

func (s *fakeProjectStore) AssignMember(ctx context.Context, projectID, memberID string) error {
	p, ok := s.projects[projectID]
	if !ok {
		return sd_errors.ErrProjectNotFound
	}
	p.AssigneeIDs = append(p.AssigneeIDs, memberID)
	return nil
}

func (s *fakeProjectStore) IsAssigned(ctx context.Context, projectID, memberID string) (bool, error) {
	p, ok := s.projects[projectID]
	if !ok {
		return false, sd_errors.ErrProjectNotFound
	}
	for _, id := range p.AssigneeIDs {
		if id == memberID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeProjectStore) CreateTask(ctx context.Context, task model.Task) (string, error) {
	s.nextID++
	task.ID = fmt.Sprintf("task-%d", s.nextID)
	s.tasks[task.ID] = &task
	return task.ID, nil
}

func (s *fakeProjectStore) GetTask(ctx context.Context, taskID string) (*model.Task, error) {
	t, ok := s.tasks[taskID]
	if !ok {
		return nil, sd_errors.ErrTaskNotFound
	}
	copied := *t
	return &copied, nil
}

func (s *fakeProjectStore) ListTasks(ctx context.Context, projectID string) ([]*model.Task, error) {
	var out []*model.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeProjectStore) CreateWorklog(ctx context.Context, worklog model.Worklog) (string, error) {
	s.nextID++
	worklog.ID = fmt.Sprintf("worklog-%d", s.nextID)
	s.worklogs = append(s.worklogs, &worklog)
	return worklog.ID, nil
}

func (s *fakeProjectStore) ListWorklogs(ctx context.Context, taskID string) ([]*model.Worklog, error) {
	var out []*model.Worklog
	for _, w := range s.worklogs {
		if w.TaskID == taskID {
			copied := *w
			out = append(out, &copied)
		}
	}
	return out, nil
}

// noopCache always misses so tests exercise the stores directly.
type noopCache struct{}

func (noopCache) GetMember(ctx context.Context, memberID string) (*model.OrganizationMember, error) {
	return nil, nil
}
func (noopCache) SetMember(ctx context.Context, member model.OrganizationMember) error { return nil }
func (noopCache) DeleteMember(ctx context.Context, memberID string) error              { return nil }
func (noopCache) GetPermissionSet(ctx context.Context, setID string) (*model.PermissionSet, error) {
	return nil, nil
}
func (noopCache) SetPermissionSet(ctx context.Context, set model.PermissionSet) error { return nil }
func (noopCache) DeletePermissionSet(ctx context.Context, setID string) error         { return nil }

type noopNotifier struct{}

func (noopNotifier) NotifyRoleChange(ctx context.Context, member model.OrganizationMember, oldRole authz.Role) error {
	return nil
}
func (noopNotifier) NotifyPermissionSetChange(ctx context.Context, changeType string, set model.PermissionSet) error {
	return nil
}
func (noopNotifier) NotifyProjectAssignment(ctx context.Context, projectID, memberID string) error {
	return nil
}

type noopEvents struct{}

func (noopEvents) Publish(ctx context.Context, eventType string, subjectID string) {}
