package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	sd_errors "github.com/sprintdeck/api/errors"
	"github.com/sprintdeck/api/model"
	"github.com/sprintdeck/api/service"
	"github.com/sprintdeck/api/util"
)

type ProjectController struct {
	projectService service.IProjectService
}

func NewProjectController(projectService service.IProjectService) *ProjectController {
	return &ProjectController{
		projectService: projectService,
	}
}

// RegisterRoutes registers the API routes
func (pc *ProjectController) RegisterRoutes(r *gin.RouterGroup) {
	projects := r.Group("/projects")
	{
		projects.POST("", pc.CreateProject)
		projects.PUT("/:id", pc.UpdateProject)
		projects.DELETE("/:id", pc.DeleteProject)
		projects.GET("/:id", pc.GetProject)
		projects.GET("", pc.ListProjects)
		projects.POST("/:id/assignees", pc.AssignMember)
		projects.POST("/:id/tasks", pc.CreateTask)
		projects.GET("/:id/tasks", pc.ListTasks)
	}
	tasks := r.Group("/tasks")
	{
		tasks.POST("/:id/worklogs", pc.LogWork)
		tasks.GET("/:id/worklogs", pc.ListWorklogs)
	}
}

func respondProjectError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, sd_errors.ErrForbidden):
		util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
	case errors.Is(err, sd_errors.ErrProjectNotFound):
		util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
	case errors.Is(err, sd_errors.ErrMemberNotFound):
		util.RespondWithError(c, http.StatusNotFound, "Member not found", err)
	case errors.Is(err, sd_errors.ErrProjectConflict):
		util.RespondWithError(c, http.StatusConflict, "Project already exists", err)
	case errors.Is(err, sd_errors.ErrTaskNotFound):
		util.RespondWithError(c, http.StatusNotFound, "Task not found", err)
	case errors.Is(err, sd_errors.ErrInvalidTaskData):
		util.RespondWithError(c, http.StatusBadRequest, "Invalid task data", err)
	case errors.Is(err, sd_errors.ErrInvalidProjectData):
		util.RespondWithError(c, http.StatusBadRequest, "Invalid project data", err)
	default:
		util.RespondWithError(c, http.StatusInternalServerError, fallback, err)
	}
}

// CreateProject endpoint
func (pc *ProjectController) CreateProject(c *gin.Context) {
	var project model.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid project data", sd_errors.ErrInvalidProjectData)
		return
	}
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	id, err := pc.projectService.CreateProject(c, actorID, project)
	if err != nil {
		respondProjectError(c, err, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateProject endpoint
func (pc *ProjectController) UpdateProject(c *gin.Context) {
	var project model.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid project data", sd_errors.ErrInvalidProjectData)
		return
	}
	project.ID = c.Param("id")
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updated, err := pc.projectService.UpdateProject(c, actorID, project)
	if err != nil {
		respondProjectError(c, err, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteProject endpoint
func (pc *ProjectController) DeleteProject(c *gin.Context) {
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := pc.projectService.DeleteProject(c, actorID, c.Param("id")); err != nil {
		respondProjectError(c, err, "Failed to delete project")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetProject endpoint
func (pc *ProjectController) GetProject(c *gin.Context) {
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	project, err := pc.projectService.GetProject(c, actorID, c.Param("id"))
	if err != nil {
		respondProjectError(c, err, "Failed to get project")
		return
	}

	c.JSON(http.StatusOK, project)
}

// ListProjects endpoint
func (pc *ProjectController) ListProjects(c *gin.Context) {
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	organizationID, err := util.GetOrganizationIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	limit, offset, err := util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", sd_errors.ErrInvalidPagination)
		return
	}

	projects, err := pc.projectService.ListProjects(c, actorID, organizationID, limit, offset)
	if err != nil {
		respondProjectError(c, err, "Failed to list projects")
		return
	}

	c.JSON(http.StatusOK, projects)
}

// AssignMember endpoint
func (pc *ProjectController) AssignMember(c *gin.Context) {
	var body struct {
		MemberID string `json:"member_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.MemberID == "" {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid assignment data", sd_errors.ErrInvalidProjectData)
		return
	}
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := pc.projectService.AssignMember(c, actorID, c.Param("id"), body.MemberID); err != nil {
		respondProjectError(c, err, "Failed to assign member")
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateTask endpoint
func (pc *ProjectController) CreateTask(c *gin.Context) {
	var task model.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid task data", sd_errors.ErrInvalidTaskData)
		return
	}
	task.ProjectID = c.Param("id")
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	id, err := pc.projectService.CreateTask(c, actorID, task)
	if err != nil {
		respondProjectError(c, err, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListTasks endpoint
func (pc *ProjectController) ListTasks(c *gin.Context) {
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	tasks, err := pc.projectService.ListTasks(c, actorID, c.Param("id"))
	if err != nil {
		respondProjectError(c, err, "Failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// LogWork endpoint
func (pc *ProjectController) LogWork(c *gin.Context) {
	var worklog model.Worklog
	if err := c.ShouldBindJSON(&worklog); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid worklog data", sd_errors.ErrInvalidProjectData)
		return
	}
	worklog.TaskID = c.Param("id")
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	id, err := pc.projectService.LogWork(c, actorID, worklog)
	if err != nil {
		respondProjectError(c, err, "Failed to log work")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListWorklogs endpoint
func (pc *ProjectController) ListWorklogs(c *gin.Context) {
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	worklogs, err := pc.projectService.ListWorklogs(c, actorID, c.Param("id"))
	if err != nil {
		respondProjectError(c, err, "Failed to list worklogs")
		return
	}

	c.JSON(http.StatusOK, worklogs)
}
