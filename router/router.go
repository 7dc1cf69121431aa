// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sprintdeck/api/controller"
	"github.com/sprintdeck/api/middleware"
	"github.com/sprintdeck/api/ratelimit"
)

// Limits carries the two request budgets: the general one and the
// tighter one for endpoints that change who can do what.
type Limits struct {
	Requests          int
	Window            time.Duration
	SensitiveRequests int
	SensitiveWindow   time.Duration
}

func SetupRouter(
	controllers *controller.Controllers,
	store ratelimit.Store,
	limits Limits,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Auth())
	router.Use(middleware.RateLimiter(store, limits.Requests, limits.Window, middleware.MemberOrIP))

	api := router.Group("/api/v1")
	controllers.Organization.RegisterRoutes(api)
	controllers.Project.RegisterRoutes(api)

	// Member and permission set mutations change authorization state,
	// so they get the tighter budget on top of the general one. The key
	// prefix keeps the two counters separate in the store.
	sensitiveKey := func(c *gin.Context) string {
		return "sensitive:" + middleware.MemberOrIP(c)
	}
	sensitive := api.Group("", middleware.RateLimiter(store, limits.SensitiveRequests, limits.SensitiveWindow, sensitiveKey))
	controllers.Member.RegisterRoutes(sensitive)
	controllers.PermissionSet.RegisterRoutes(sensitive)

	return router
}
