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

type OrganizationController struct {
	organizationService service.IOrganizationService
}

func NewOrganizationController(organizationService service.IOrganizationService) *OrganizationController {
	return &OrganizationController{
		organizationService: organizationService,
	}
}

// RegisterRoutes registers the API routes
func (oc *OrganizationController) RegisterRoutes(r *gin.RouterGroup) {
	orgs := r.Group("/organizations")
	{
		orgs.POST("", oc.CreateOrganization)
		orgs.GET("/:id", oc.GetOrganization)
		orgs.PUT("/:id", oc.UpdateOrganization)
	}
}

// CreateOrganization endpoint. The authenticated user becomes the
// organization's owner.
func (oc *OrganizationController) CreateOrganization(c *gin.Context) {
	var body struct {
		Name       string `json:"name"`
		LogoURL    string `json:"logo_url"`
		OwnerName  string `json:"owner_name"`
		OwnerEmail string `json:"owner_email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid organization data", sd_errors.ErrInvalidOrganizationData)
		return
	}
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	org := model.Organization{Name: body.Name, LogoURL: body.LogoURL}
	owner := model.OrganizationMember{Name: body.OwnerName, Email: body.OwnerEmail}

	id, err := oc.organizationService.CreateOrganization(c, userID, org, owner)
	if err != nil {
		switch {
		case errors.Is(err, sd_errors.ErrInvalidOrganizationData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid organization data", err)
		case errors.Is(err, sd_errors.ErrOrganizationConflict):
			util.RespondWithError(c, http.StatusConflict, "Organization already exists", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create organization", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetOrganization endpoint
func (oc *OrganizationController) GetOrganization(c *gin.Context) {
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	org, err := oc.organizationService.GetOrganization(c, actorID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, sd_errors.ErrForbidden):
			util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
		case errors.Is(err, sd_errors.ErrOrganizationNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Organization not found", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get organization", err)
		}
		return
	}

	c.JSON(http.StatusOK, org)
}

// UpdateOrganization endpoint
func (oc *OrganizationController) UpdateOrganization(c *gin.Context) {
	var org model.Organization
	if err := c.ShouldBindJSON(&org); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid organization data", sd_errors.ErrInvalidOrganizationData)
		return
	}
	org.ID = c.Param("id")
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updated, err := oc.organizationService.UpdateOrganization(c, actorID, org)
	if err != nil {
		switch {
		case errors.Is(err, sd_errors.ErrForbidden):
			util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
		case errors.Is(err, sd_errors.ErrOrganizationNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Organization not found", err)
		case errors.Is(err, sd_errors.ErrInvalidOrganizationData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid organization data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update organization", err)
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}
