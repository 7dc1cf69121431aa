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

type PermissionSetController struct {
	permissionSetService service.IPermissionSetService
}

func NewPermissionSetController(permissionSetService service.IPermissionSetService) *PermissionSetController {
	return &PermissionSetController{
		permissionSetService: permissionSetService,
	}
}

// RegisterRoutes registers the API routes
func (pc *PermissionSetController) RegisterRoutes(r *gin.RouterGroup) {
	sets := r.Group("/permission-sets")
	{
		sets.POST("", pc.CreatePermissionSet)
		sets.PUT("/:id", pc.UpdatePermissionSet)
		sets.DELETE("/:id", pc.DeletePermissionSet)
		sets.GET("/:id", pc.GetPermissionSet)
		sets.GET("", pc.ListPermissionSets)
	}
}

// respondPermissionSetError maps service errors onto HTTP statuses.
// Dependency violations carry the full list so the client can show
// every problem at once.
func respondPermissionSetError(c *gin.Context, err error, fallback string) {
	var depErr *sd_errors.PermissionDependencyError
	switch {
	case errors.As(err, &depErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Permission set violates dependency constraints",
			"violations": depErr.Violations,
		})
	case errors.Is(err, sd_errors.ErrForbidden):
		util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
	case errors.Is(err, sd_errors.ErrPermissionSetNotFound):
		util.RespondWithError(c, http.StatusNotFound, "Permission set not found", err)
	case errors.Is(err, sd_errors.ErrPermissionSetConflict):
		util.RespondWithError(c, http.StatusConflict, "Permission set already exists", err)
	case errors.Is(err, sd_errors.ErrInvalidPermissionSetData):
		util.RespondWithError(c, http.StatusBadRequest, "Invalid permission set data", err)
	default:
		util.RespondWithError(c, http.StatusInternalServerError, fallback, err)
	}
}

// CreatePermissionSet endpoint
func (pc *PermissionSetController) CreatePermissionSet(c *gin.Context) {
	var set model.PermissionSet
	if err := c.ShouldBindJSON(&set); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid permission set data", sd_errors.ErrInvalidPermissionSetData)
		return
	}
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	created, err := pc.permissionSetService.CreatePermissionSet(c, actorID, set)
	if err != nil {
		respondPermissionSetError(c, err, "Failed to create permission set")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdatePermissionSet endpoint
func (pc *PermissionSetController) UpdatePermissionSet(c *gin.Context) {
	var set model.PermissionSet
	if err := c.ShouldBindJSON(&set); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid permission set data", sd_errors.ErrInvalidPermissionSetData)
		return
	}
	set.ID = c.Param("id")
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updated, err := pc.permissionSetService.UpdatePermissionSet(c, actorID, set)
	if err != nil {
		respondPermissionSetError(c, err, "Failed to update permission set")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeletePermissionSet endpoint
func (pc *PermissionSetController) DeletePermissionSet(c *gin.Context) {
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := pc.permissionSetService.DeletePermissionSet(c, actorID, c.Param("id")); err != nil {
		respondPermissionSetError(c, err, "Failed to delete permission set")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetPermissionSet endpoint
func (pc *PermissionSetController) GetPermissionSet(c *gin.Context) {
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	set, err := pc.permissionSetService.GetPermissionSet(c, actorID, c.Param("id"))
	if err != nil {
		respondPermissionSetError(c, err, "Failed to get permission set")
		return
	}

	c.JSON(http.StatusOK, set)
}

// ListPermissionSets endpoint
func (pc *PermissionSetController) ListPermissionSets(c *gin.Context) {
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

	sets, err := pc.permissionSetService.ListPermissionSets(c, actorID, organizationID, limit, offset)
	if err != nil {
		respondPermissionSetError(c, err, "Failed to list permission sets")
		return
	}

	c.JSON(http.StatusOK, sets)
}
