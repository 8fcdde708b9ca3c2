package analytics

import (
	"go-hrportal/internal/middleware"
	"go-hrportal/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	analytics := r.Group("/analytics")
	analytics.Use(middleware.AuthMiddleware())
	{
		analytics.GET("/leave-summary", middleware.RBACAuthorize(rbacService, "analytics", "read"), handler.LeaveSummary)
		analytics.GET("/headcount", middleware.RBACAuthorize(rbacService, "analytics", "read"), handler.Headcount)
	}
}
