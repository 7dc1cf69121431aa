package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/sprintdeck/api/audit"
	sd_errors "github.com/sprintdeck/api/errors"
	logger "github.com/sprintdeck/api/logging"
	"github.com/sprintdeck/api/model"
	sd_neo4j "github.com/sprintdeck/api/model/neo4j"
)

type ProjectDAO struct {
	Driver       neo4j.Driver
	AuditService audit.Service
}

func NewProjectDAO(driver neo4j.Driver, auditService audit.Service) *ProjectDAO {
	dao := &ProjectDAO{Driver: driver, AuditService: auditService}
	ctx := context.Background()
	if err := dao.EnsureUniqueConstraint(ctx); err != nil {
		logger.Fatal("Failed to ensure unique constraint for Project", zap.Error(err))
	}
	return dao
}

func (dao *ProjectDAO) EnsureUniqueConstraint(ctx context.Context) error {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        CREATE CONSTRAINT unique_project_id IF NOT EXISTS
        FOR (p:` + sd_neo4j.LabelProject + `) REQUIRE p.id IS UNIQUE
        `
		_, err := transaction.Run(query, nil)
		return nil, err
	})
	return err
}

func (dao *ProjectDAO) CreateProject(ctx context.Context, project model.Project) (string, error) {
	start := time.Now()
	logger.Info("Creating project",
		zap.String("name", project.Name),
		zap.String("orgID", project.OrganizationID))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if project.Status == "" {
		project.Status = "active"
	}

	result, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (o:` + sd_neo4j.LabelOrganization + ` {id: $orgID})
        MATCH (owner:` + sd_neo4j.LabelMember + ` {id: $ownerID})
        MERGE (p:` + sd_neo4j.LabelProject + ` {id: $id})
        ON CREATE SET p += $props
        MERGE (o)-[:` + sd_neo4j.RelOwns + `]->(p)
        MERGE (owner)-[:` + sd_neo4j.RelOwnerOf + `]->(p)
        RETURN p.id as id
        `
		params := map[string]interface{}{
			"id":      project.ID,
			"orgID":   project.OrganizationID,
			"ownerID": project.OwnerID,
			"props": map[string]interface{}{
				"name":           project.Name,
				"description":    project.Description,
				"organizationId": project.OrganizationID,
				"ownerId":        project.OwnerID,
				"status":         project.Status,
				"createdAt":      time.Now().Format(time.RFC3339),
				"updatedAt":      time.Now().Format(time.RFC3339),
			},
		}

		result, err := transaction.Run(query, params)
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}
		if result.Next() {
			return result.Record().Values[0], nil
		}
		return nil, sd_errors.ErrOrganizationNotFound
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create project",
			zap.Error(err),
			zap.String("name", project.Name),
			zap.Duration("duration", duration))
		return "", err
	}

	projectID := fmt.Sprintf("%v", result)
	logger.Info("Project created successfully",
		zap.String("projectID", projectID),
		zap.Duration("duration", duration))

	recordAudit(ctx, dao.AuditService, audit.NewEntry(audit.Params{
		UserID:         requestingUserID(ctx),
		OrganizationID: project.OrganizationID,
		Action:         "CREATE_PROJECT",
		ResourceType:   "project",
		ResourceID:     projectID,
		Details:        changeDetails(nil, project),
	}))

	return projectID, nil
}

func (dao *ProjectDAO) GetProject(ctx context.Context, projectID string) (*model.Project, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (p:` + sd_neo4j.LabelProject + ` {id: $id})
        OPTIONAL MATCH (assignee:` + sd_neo4j.LabelMember + `)-[:` + sd_neo4j.RelAssignedTo + `]->(p)
        RETURN p, collect(assignee.id) as assigneeIds
        `
		result, err := transaction.Run(query, map[string]interface{}{"id": projectID})
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}
		if result.Next() {
			record := result.Record()
			node := record.Values[0].(neo4j.Node)
			project := parseProjectNode(node.Props)
			if ids, ok := record.Values[1].([]interface{}); ok {
				for _, id := range ids {
					if s, ok := id.(string); ok && s != "" {
						project.AssigneeIDs = append(project.AssigneeIDs, s)
					}
				}
			}
			return project, nil
		}
		return nil, sd_errors.ErrProjectNotFound
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.Project), nil
}

func (dao *ProjectDAO) ListProjects(ctx context.Context, organizationID string, limit, offset int) ([]*model.Project, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (o:` + sd_neo4j.LabelOrganization + ` {id: $orgID})-[:` + sd_neo4j.RelOwns + `]->(p:` + sd_neo4j.LabelProject + `)
        OPTIONAL MATCH (assignee:` + sd_neo4j.LabelMember + `)-[:` + sd_neo4j.RelAssignedTo + `]->(p)
        RETURN p, collect(assignee.id) as assigneeIds
        ORDER BY p.name
        SKIP $offset LIMIT $limit
        `
		params := map[string]interface{}{
			"orgID":  organizationID,
			"offset": offset,
			"limit":  limit,
		}
		result, err := transaction.Run(query, params)
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}

		var projects []*model.Project
		for result.Next() {
			record := result.Record()
			node := record.Values[0].(neo4j.Node)
			project := parseProjectNode(node.Props)
			if ids, ok := record.Values[1].([]interface{}); ok {
				for _, id := range ids {
					if s, ok := id.(string); ok && s != "" {
						project.AssigneeIDs = append(project.AssigneeIDs, s)
					}
				}
			}
			projects = append(projects, project)
		}
		return projects, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]*model.Project), nil
}

func (dao *ProjectDAO) UpdateProject(ctx context.Context, project model.Project) (*model.Project, error) {
	start := time.Now()
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	old, err := dao.GetProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	_, err = session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (p:` + sd_neo4j.LabelProject + ` {id: $id})
        SET p.name = $name,
            p.description = $description,
            p.status = $status,
            p.updatedAt = $updatedAt
        RETURN p.id as id
        `
		params := map[string]interface{}{
			"id":          project.ID,
			"name":        project.Name,
			"description": project.Description,
			"status":      project.Status,
			"updatedAt":   time.Now().Format(time.RFC3339),
		}
		result, err := transaction.Run(query, params)
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}
		if result.Next() {
			return result.Record().Values[0], nil
		}
		return nil, sd_errors.ErrProjectNotFound
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to update project",
			zap.Error(err),
			zap.String("projectID", project.ID),
			zap.Duration("duration", duration))
		return nil, err
	}

	logger.Info("Project updated successfully",
		zap.String("projectID", project.ID),
		zap.Duration("duration", duration))

	recordAudit(ctx, dao.AuditService, audit.NewEntry(audit.Params{
		UserID:         requestingUserID(ctx),
		OrganizationID: old.OrganizationID,
		Action:         "UPDATE_PROJECT",
		ResourceType:   "project",
		ResourceID:     project.ID,
		Details:        changeDetails(old, project),
	}))

	updated := project
	updated.OrganizationID = old.OrganizationID
	updated.OwnerID = old.OwnerID
	updated.AssigneeIDs = old.AssigneeIDs
	updated.CreatedAt = old.CreatedAt
	updated.UpdatedAt = time.Now()
	return &updated, nil
}

func (dao *ProjectDAO) DeleteProject(ctx context.Context, projectID string) error {
	start := time.Now()
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	old, err := dao.GetProject(ctx, projectID)
	if err != nil {
		return err
	}

	_, err = session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (p:` + sd_neo4j.LabelProject + ` {id: $id})
        DETACH DELETE p
        `
		_, err := transaction.Run(query, map[string]interface{}{"id": projectID})
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}
		return nil, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to delete project",
			zap.Error(err),
			zap.String("projectID", projectID),
			zap.Duration("duration", duration))
		return err
	}

	logger.Info("Project deleted successfully",
		zap.String("projectID", projectID),
		zap.Duration("duration", duration))

	recordAudit(ctx, dao.AuditService, audit.NewEntry(audit.Params{
		UserID:         requestingUserID(ctx),
		OrganizationID: old.OrganizationID,
		Action:         "DELETE_PROJECT",
		ResourceType:   "project",
		ResourceID:     projectID,
		Details:        changeDetails(old, nil),
	}))

	return nil
}

// AssignMember links a member as an assignee of the project.
func (dao *ProjectDAO) AssignMember(ctx context.Context, projectID, memberID string) error {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (p:` + sd_neo4j.LabelProject + ` {id: $projectID})
        MATCH (m:` + sd_neo4j.LabelMember + ` {id: $memberID})
        MERGE (m)-[:` + sd_neo4j.RelAssignedTo + `]->(p)
        RETURN p.id as id
        `
		params := map[string]interface{}{
			"projectID": projectID,
			"memberID":  memberID,
		}
		result, err := transaction.Run(query, params)
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}
		if result.Next() {
			return result.Record().Values[0], nil
		}
		return nil, sd_errors.ErrProjectNotFound
	})
	return err
}

// IsAssigned reports whether the member is an assignee of the project.
func (dao *ProjectDAO) IsAssigned(ctx context.Context, projectID, memberID string) (bool, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (m:` + sd_neo4j.LabelMember + ` {id: $memberID})-[:` + sd_neo4j.RelAssignedTo + `]->(p:` + sd_neo4j.LabelProject + ` {id: $projectID})
        RETURN count(p) > 0 as assigned
        `
		params := map[string]interface{}{
			"projectID": projectID,
			"memberID":  memberID,
		}
		result, err := transaction.Run(query, params)
		if err != nil {
			return false, sd_errors.ErrDatabaseOperation
		}
		if result.Next() {
			return result.Record().Values[0], nil
		}
		return false, nil
	})
	if err != nil {
		return false, err
	}
	assigned, _ := result.(bool)
	return assigned, nil
}

// CreateTask adds a task to the project. Worklogs attach to tasks, so
// a task node must exist before time can be logged.
func (dao *ProjectDAO) CreateTask(ctx context.Context, task model.Task) (string, error) {
	start := time.Now()
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.Status == "" {
		task.Status = "todo"
	}

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (p:` + sd_neo4j.LabelProject + ` {id: $projectID})
        MERGE (t:` + sd_neo4j.LabelTask + ` {id: $id})
        ON CREATE SET t += $props
        MERGE (t)-[:` + sd_neo4j.RelPartOf + `]->(p)
        RETURN t.id as id
        `
		params := map[string]interface{}{
			"id":        task.ID,
			"projectID": task.ProjectID,
			"props": map[string]interface{}{
				"projectId":  task.ProjectID,
				"title":      task.Title,
				"body":       task.Body,
				"assigneeId": task.AssigneeID,
				"status":     task.Status,
				"createdAt":  time.Now().Format(time.RFC3339),
				"updatedAt":  time.Now().Format(time.RFC3339),
			},
		}
		result, err := transaction.Run(query, params)
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}
		if result.Next() {
			return result.Record().Values[0], nil
		}
		return nil, sd_errors.ErrProjectNotFound
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create task",
			zap.Error(err),
			zap.String("projectID", task.ProjectID),
			zap.Duration("duration", duration))
		return "", err
	}

	logger.Info("Task created successfully",
		zap.String("taskID", task.ID),
		zap.Duration("duration", duration))

	recordAudit(ctx, dao.AuditService, audit.NewEntry(audit.Params{
		UserID:       requestingUserID(ctx),
		Action:       "CREATE_TASK",
		ResourceType: "task",
		ResourceID:   task.ID,
		Details:      changeDetails(nil, task),
	}))

	return task.ID, nil
}

func (dao *ProjectDAO) GetTask(ctx context.Context, taskID string) (*model.Task, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (t:` + sd_neo4j.LabelTask + ` {id: $id})
        RETURN t
        `
		result, err := transaction.Run(query, map[string]interface{}{"id": taskID})
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}
		if result.Next() {
			node := result.Record().Values[0].(neo4j.Node)
			return parseTaskNode(node.Props), nil
		}
		return nil, sd_errors.ErrTaskNotFound
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.Task), nil
}

// ListTasks returns the project's tasks.
func (dao *ProjectDAO) ListTasks(ctx context.Context, projectID string) ([]*model.Task, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (t:` + sd_neo4j.LabelTask + `)-[:` + sd_neo4j.RelPartOf + `]->(p:` + sd_neo4j.LabelProject + ` {id: $projectID})
        RETURN t
        ORDER BY t.createdAt
        `
		result, err := transaction.Run(query, map[string]interface{}{"projectID": projectID})
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}

		var tasks []*model.Task
		for result.Next() {
			node := result.Record().Values[0].(neo4j.Node)
			tasks = append(tasks, parseTaskNode(node.Props))
		}
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]*model.Task), nil
}

func parseTaskNode(props map[string]interface{}) *model.Task {
	task := &model.Task{}
	task.ID, _ = props["id"].(string)
	task.ProjectID, _ = props["projectId"].(string)
	task.Title, _ = props["title"].(string)
	task.Body, _ = props["body"].(string)
	task.AssigneeID, _ = props["assigneeId"].(string)
	task.Status, _ = props["status"].(string)
	if createdAt, ok := props["createdAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			task.CreatedAt = t
		}
	}
	if updatedAt, ok := props["updatedAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
			task.UpdatedAt = t
		}
	}
	return task
}

// CreateWorklog records time logged by a member against a task.
func (dao *ProjectDAO) CreateWorklog(ctx context.Context, worklog model.Worklog) (string, error) {
	start := time.Now()
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if worklog.ID == "" {
		worklog.ID = uuid.New().String()
	}

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (t:` + sd_neo4j.LabelTask + ` {id: $taskID})
        MERGE (w:` + sd_neo4j.LabelWorklog + ` {id: $id})
        ON CREATE SET w += $props
        MERGE (w)-[:` + sd_neo4j.RelPartOf + `]->(t)
        RETURN w.id as id
        `
		params := map[string]interface{}{
			"id":     worklog.ID,
			"taskID": worklog.TaskID,
			"props": map[string]interface{}{
				"taskId":    worklog.TaskID,
				"memberId":  worklog.MemberID,
				"minutes":   worklog.Minutes,
				"note":      worklog.Note,
				"loggedAt":  worklog.LoggedAt.Format(time.RFC3339),
				"createdAt": time.Now().Format(time.RFC3339),
			},
		}
		result, err := transaction.Run(query, params)
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}
		if result.Next() {
			return result.Record().Values[0], nil
		}
		return nil, sd_errors.ErrProjectNotFound
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create worklog",
			zap.Error(err),
			zap.String("taskID", worklog.TaskID),
			zap.Duration("duration", duration))
		return "", err
	}

	recordAudit(ctx, dao.AuditService, audit.NewEntry(audit.Params{
		UserID:       requestingUserID(ctx),
		Action:       "CREATE_WORKLOG",
		ResourceType: "worklog",
		ResourceID:   worklog.ID,
		Details:      changeDetails(nil, worklog),
	}))

	return worklog.ID, nil
}

// ListWorklogs returns all time logged against a task.
func (dao *ProjectDAO) ListWorklogs(ctx context.Context, taskID string) ([]*model.Worklog, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (w:` + sd_neo4j.LabelWorklog + `)-[:` + sd_neo4j.RelPartOf + `]->(t:` + sd_neo4j.LabelTask + ` {id: $taskID})
        RETURN w
        ORDER BY w.loggedAt
        `
		result, err := transaction.Run(query, map[string]interface{}{"taskID": taskID})
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}

		var worklogs []*model.Worklog
		for result.Next() {
			node := result.Record().Values[0].(neo4j.Node)
			worklogs = append(worklogs, parseWorklogNode(node.Props))
		}
		return worklogs, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]*model.Worklog), nil
}

func parseWorklogNode(props map[string]interface{}) *model.Worklog {
	worklog := &model.Worklog{}
	worklog.ID, _ = props["id"].(string)
	worklog.TaskID, _ = props["taskId"].(string)
	worklog.MemberID, _ = props["memberId"].(string)
	if minutes, ok := props["minutes"].(int64); ok {
		worklog.Minutes = int(minutes)
	}
	worklog.Note, _ = props["note"].(string)
	if loggedAt, ok := props["loggedAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, loggedAt); err == nil {
			worklog.LoggedAt = t
		}
	}
	if createdAt, ok := props["createdAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			worklog.CreatedAt = t
		}
	}
	return worklog
}

func parseProjectNode(props map[string]interface{}) *model.Project {
	project := &model.Project{}
	project.ID, _ = props["id"].(string)
	project.Name, _ = props["name"].(string)
	project.Description, _ = props["description"].(string)
	project.OrganizationID, _ = props["organizationId"].(string)
	project.OwnerID, _ = props["ownerId"].(string)
	project.Status, _ = props["status"].(string)
	if createdAt, ok := props["createdAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			project.CreatedAt = t
		}
	}
	if updatedAt, ok := props["updatedAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
			project.UpdatedAt = t
		}
	}
	return project
}
