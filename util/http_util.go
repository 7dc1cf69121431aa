package util

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	sd_errors "github.com/sprintdeck/api/errors"
	logger "github.com/sprintdeck/api/logging"
)

const (
	// DefaultPageSize applies when a list request carries no limit.
	DefaultPageSize = 25
	// MaxPageSize caps the limit a client may request.
	MaxPageSize = 100
)

// GetPaginationParams reads limit and offset query parameters. Limits
// above MaxPageSize are clamped rather than rejected; non-numeric or
// negative values fail with ErrInvalidPagination.
func GetPaginationParams(c *gin.Context) (limit int, offset int, err error) {
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize)))
	if err != nil || limit <= 0 {
		return 0, 0, sd_errors.ErrInvalidPagination
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, sd_errors.ErrInvalidPagination
	}
	return limit, offset, nil
}

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"error": message})
}

// GetUserIDFromContext returns the authenticated user's id set by the
// auth middleware.
func GetUserIDFromContext(c *gin.Context) (string, error) {
	userID, exists := c.Get("requestingUserID")
	if !exists {
		return "", sd_errors.ErrUnauthorized
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		return "", sd_errors.ErrUnauthorized
	}
	return id, nil
}

// GetMemberIDFromContext returns the acting organization member's id.
func GetMemberIDFromContext(c *gin.Context) (string, error) {
	memberID, exists := c.Get("memberID")
	if !exists {
		return "", sd_errors.ErrUnauthorized
	}
	id, ok := memberID.(string)
	if !ok || id == "" {
		return "", sd_errors.ErrUnauthorized
	}
	return id, nil
}

// GetOrganizationIDFromContext returns the organization the request is
// scoped to.
func GetOrganizationIDFromContext(c *gin.Context) (string, error) {
	orgID, exists := c.Get("organizationID")
	if !exists {
		return "", sd_errors.ErrUnauthorized
	}
	id, ok := orgID.(string)
	if !ok || id == "" {
		return "", sd_errors.ErrUnauthorized
	}
	return id, nil
}
