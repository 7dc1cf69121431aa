package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sprintdeck/api/authz"
	sd_errors "github.com/sprintdeck/api/errors"
	"github.com/sprintdeck/api/model"
	"github.com/sprintdeck/api/service"
	"github.com/sprintdeck/api/util"
)

type MemberController struct {
	memberService service.IMemberService
}

func NewMemberController(memberService service.IMemberService) *MemberController {
	return &MemberController{
		memberService: memberService,
	}
}

// RegisterRoutes registers the API routes
func (mc *MemberController) RegisterRoutes(r *gin.RouterGroup) {
	members := r.Group("/members")
	{
		members.POST("", mc.AddMember)
		members.GET("", mc.ListMembers)
		members.POST("/search", mc.SearchMembers)
		members.GET("/:id", mc.GetMember)
		members.PUT("/:id/role", mc.ChangeRole)
		members.PUT("/:id/permission-set", mc.AttachPermissionSet)
		members.DELETE("/:id", mc.RemoveMember)
	}
}

// AddMember endpoint
func (mc *MemberController) AddMember(c *gin.Context) {
	var member model.OrganizationMember
	if err := c.ShouldBindJSON(&member); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid member data", sd_errors.ErrInvalidMemberData)
		return
	}
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	id, err := mc.memberService.AddMember(c, actorID, member)
	if err != nil {
		switch {
		case errors.Is(err, sd_errors.ErrForbidden):
			util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
		case errors.Is(err, sd_errors.ErrInvalidMemberData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid member data", err)
		case errors.Is(err, sd_errors.ErrMemberConflict):
			util.RespondWithError(c, http.StatusConflict, "Member already exists", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to add member", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetMember endpoint
func (mc *MemberController) GetMember(c *gin.Context) {
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	profile, err := mc.memberService.GetMemberProfile(c, actorID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, sd_errors.ErrForbidden):
			util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
		case errors.Is(err, sd_errors.ErrMemberNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Member not found", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get member", err)
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ListMembers endpoint
func (mc *MemberController) ListMembers(c *gin.Context) {
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

	profiles, err := mc.memberService.ListMemberProfiles(c, actorID, organizationID, limit, offset)
	if err != nil {
		if errors.Is(err, sd_errors.ErrForbidden) {
			util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to list members", err)
		}
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// SearchMembers endpoint
func (mc *MemberController) SearchMembers(c *gin.Context) {
	var criteria model.MemberSearchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid search criteria", sd_errors.ErrInvalidMemberData)
		return
	}
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	profiles, err := mc.memberService.SearchMemberProfiles(c, actorID, criteria)
	if err != nil {
		switch {
		case errors.Is(err, sd_errors.ErrForbidden):
			util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
		case errors.Is(err, sd_errors.ErrInvalidMemberData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid search criteria", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to search members", err)
		}
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// ChangeRole endpoint
func (mc *MemberController) ChangeRole(c *gin.Context) {
	var body struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid role data", sd_errors.ErrInvalidMemberData)
		return
	}
	role, err := authz.ParseRole(body.Role)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid role", sd_errors.ErrInvalidMemberData)
		return
	}
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updated, err := mc.memberService.ChangeRole(c, actorID, c.Param("id"), role)
	if err != nil {
		switch {
		case errors.Is(err, sd_errors.ErrForbidden):
			util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
		case errors.Is(err, sd_errors.ErrMemberNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Member not found", err)
		case errors.Is(err, sd_errors.ErrInvalidMemberData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid role change", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to change role", err)
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// AttachPermissionSet endpoint
func (mc *MemberController) AttachPermissionSet(c *gin.Context) {
	var body struct {
		PermissionSetID string `json:"permission_set_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.PermissionSetID == "" {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid permission set reference", sd_errors.ErrInvalidMemberData)
		return
	}
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := mc.memberService.AttachPermissionSet(c, actorID, c.Param("id"), body.PermissionSetID); err != nil {
		switch {
		case errors.Is(err, sd_errors.ErrForbidden):
			util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
		case errors.Is(err, sd_errors.ErrMemberNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Member not found", err)
		case errors.Is(err, sd_errors.ErrPermissionSetNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Permission set not found", err)
		case errors.Is(err, sd_errors.ErrInvalidMemberData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid permission set reference", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to attach permission set", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveMember endpoint
func (mc *MemberController) RemoveMember(c *gin.Context) {
	actorID, err := util.GetMemberIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := mc.memberService.RemoveMember(c, actorID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, sd_errors.ErrForbidden):
			util.RespondWithError(c, http.StatusForbidden, "Forbidden", err)
		case errors.Is(err, sd_errors.ErrMemberNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Member not found", err)
		case errors.Is(err, sd_errors.ErrInvalidMemberData):
			util.RespondWithError(c, http.StatusBadRequest, "Member cannot be removed", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to remove member", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
