package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sprintdeck/api/authz"
	sd_errors "github.com/sprintdeck/api/errors"
	logger "github.com/sprintdeck/api/logging"
	"github.com/sprintdeck/api/model"
	"github.com/sprintdeck/api/sanitize"
	"github.com/sprintdeck/api/util"
)

// ProjectService gates project operations on the acting member's
// capabilities plus the per-record facts: whether the actor owns the
// project and whether the actor is assigned to it.
type ProjectService struct {
	actors   actorResolver
	store    ProjectStore
	notifier Notifier
	events   EventPublisher
}

func NewProjectService(store ProjectStore, members MemberStore, sets PermissionSetStore, cache Cache, notifier Notifier, events EventPublisher) *ProjectService {
	return &ProjectService{
		actors:   actorResolver{members: members, sets: sets, cache: cache},
		store:    store,
		notifier: notifier,
		events:   events,
	}
}

// projectContext derives the authorization context for one project.
func projectContext(project *model.Project, actorMemberID string) *authz.Context {
	pctx := &authz.Context{IsOwner: project.OwnerID == actorMemberID}
	for _, id := range project.AssigneeIDs {
		if id == actorMemberID {
			pctx.IsAssigned = true
			break
		}
	}
	return pctx
}

func (s *ProjectService) CreateProject(ctx context.Context, actorID string, project model.Project) (string, error) {
	actingMember, actor, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return "", err
	}
	if !authz.CanPerformAction(actor, authz.ActionCreate, authz.ResourceProject, nil) {
		return "", sd_errors.ErrForbidden
	}

	project.Name = sanitize.Input(project.Name)
	project.Description = sanitize.Input(project.Description)
	if project.Name == "" || project.OrganizationID == "" {
		return "", sd_errors.ErrInvalidProjectData
	}
	if project.OwnerID == "" {
		project.OwnerID = actingMember.ID
	}

	id, err := s.store.CreateProject(ctx, project)
	if err != nil {
		return "", err
	}
	s.events.Publish(ctx, util.EventProjectCreated, id)
	return id, nil
}

func (s *ProjectService) GetProject(ctx context.Context, actorID, projectID string) (*model.Project, error) {
	var (
		actingMember *model.OrganizationMember
		actor        authz.Member
		project      *model.Project
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		actingMember, actor, err = s.actors.resolve(gctx, actorID)
		return err
	})
	g.Go(func() error {
		var err error
		project, err = s.store.GetProject(gctx, projectID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !authz.CanPerformAction(actor, authz.ActionView, authz.ResourceProject, projectContext(project, actingMember.ID)) {
		return nil, sd_errors.ErrForbidden
	}
	return project, nil
}

// ListProjects returns the projects in the organization the actor is
// allowed to see. Members with only assignment-scoped view get the
// projects they own or are assigned to.
func (s *ProjectService) ListProjects(ctx context.Context, actorID, organizationID string, limit, offset int) ([]*model.Project, error) {
	var (
		actingMember *model.OrganizationMember
		actor        authz.Member
		projects     []*model.Project
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		actingMember, actor, err = s.actors.resolve(gctx, actorID)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = s.store.ListProjects(gctx, organizationID, limit, offset)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	visible := make([]*model.Project, 0, len(projects))
	for _, p := range projects {
		if authz.CanPerformAction(actor, authz.ActionView, authz.ResourceProject, projectContext(p, actingMember.ID)) {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, actorID string, project model.Project) (*model.Project, error) {
	actingMember, actor, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	if !authz.CanPerformAction(actor, authz.ActionUpdate, authz.ResourceProject, projectContext(existing, actingMember.ID)) {
		return nil, sd_errors.ErrForbidden
	}

	project.Name = sanitize.Input(project.Name)
	project.Description = sanitize.Input(project.Description)
	if project.Name == "" {
		return nil, sd_errors.ErrInvalidProjectData
	}

	updated, err := s.store.UpdateProject(ctx, project)
	if err != nil {
		return nil, err
	}
	s.events.Publish(ctx, util.EventProjectUpdated, project.ID)
	return updated, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, actorID, projectID string) error {
	actingMember, actor, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return err
	}

	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if !authz.CanPerformAction(actor, authz.ActionDelete, authz.ResourceProject, projectContext(project, actingMember.ID)) {
		return sd_errors.ErrForbidden
	}

	if err := s.store.DeleteProject(ctx, projectID); err != nil {
		return err
	}
	s.events.Publish(ctx, util.EventProjectDeleted, projectID)
	return nil
}

func (s *ProjectService) AssignMember(ctx context.Context, actorID, projectID, memberID string) error {
	actingMember, actor, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return err
	}

	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if !authz.CanPerformAction(actor, authz.ActionUpdate, authz.ResourceProject, projectContext(project, actingMember.ID)) {
		return sd_errors.ErrForbidden
	}

	target, err := s.actors.member(ctx, memberID)
	if err != nil {
		return err
	}
	if target.OrganizationID != project.OrganizationID {
		return sd_errors.ErrInvalidProjectData
	}

	if err := s.store.AssignMember(ctx, projectID, memberID); err != nil {
		return err
	}
	if err := s.notifier.NotifyProjectAssignment(ctx, projectID, memberID); err != nil {
		logger.Warn("Assignment notification failed", zap.String("projectID", projectID), zap.Error(err))
	}
	s.events.Publish(ctx, util.EventProjectMemberAssigned, projectID)
	return nil
}

// CreateTask adds a task to a project. Task creation follows project
// update rights, so record owners and assigned members with management
// capability can populate their projects.
func (s *ProjectService) CreateTask(ctx context.Context, actorID string, task model.Task) (string, error) {
	actingMember, actor, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return "", err
	}

	project, err := s.store.GetProject(ctx, task.ProjectID)
	if err != nil {
		return "", err
	}
	if !authz.CanPerformAction(actor, authz.ActionUpdate, authz.ResourceProject, projectContext(project, actingMember.ID)) {
		return "", sd_errors.ErrForbidden
	}

	task.Title = sanitize.Input(task.Title)
	task.Body = sanitize.Input(task.Body)
	if task.Title == "" {
		return "", sd_errors.ErrInvalidTaskData
	}

	id, err := s.store.CreateTask(ctx, task)
	if err != nil {
		return "", err
	}
	s.events.Publish(ctx, util.EventTaskCreated, id)
	return id, nil
}

// ListTasks returns the project's tasks for anyone who can view the
// project.
func (s *ProjectService) ListTasks(ctx context.Context, actorID, projectID string) ([]*model.Task, error) {
	actingMember, actor, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}

	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !authz.CanPerformAction(actor, authz.ActionView, authz.ResourceProject, projectContext(project, actingMember.ID)) {
		return nil, sd_errors.ErrForbidden
	}
	return s.store.ListTasks(ctx, projectID)
}

// LogWork records time against a task. Members always log their own
// time; logging on someone else's behalf needs the worklog management
// capability.
func (s *ProjectService) LogWork(ctx context.Context, actorID string, worklog model.Worklog) (string, error) {
	actingMember, actor, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return "", err
	}

	if worklog.MemberID == "" {
		worklog.MemberID = actingMember.ID
	}
	if worklog.MemberID != actingMember.ID &&
		!authz.CanPerformAction(actor, authz.ActionCreate, authz.ResourceWorklog, nil) {
		return "", sd_errors.ErrForbidden
	}

	worklog.Note = sanitize.Input(worklog.Note)
	if worklog.TaskID == "" || worklog.Minutes <= 0 {
		return "", sd_errors.ErrInvalidProjectData
	}
	if _, err := s.store.GetTask(ctx, worklog.TaskID); err != nil {
		return "", err
	}
	if worklog.LoggedAt.IsZero() {
		worklog.LoggedAt = time.Now().UTC()
	}

	id, err := s.store.CreateWorklog(ctx, worklog)
	if err != nil {
		return "", err
	}
	s.events.Publish(ctx, util.EventWorklogCreated, id)
	return id, nil
}

// ListWorklogs returns the task's worklogs. Without the worklog
// management capability the caller only sees their own entries.
func (s *ProjectService) ListWorklogs(ctx context.Context, actorID, taskID string) ([]*model.Worklog, error) {
	actingMember, actor, err := s.actors.resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}

	worklogs, err := s.store.ListWorklogs(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if authz.CanPerformAction(actor, authz.ActionView, authz.ResourceWorklog, nil) {
		return worklogs, nil
	}

	own := make([]*model.Worklog, 0, len(worklogs))
	for _, w := range worklogs {
		if w.MemberID == actingMember.ID {
			own = append(own, w)
		}
	}
	return own, nil
}
