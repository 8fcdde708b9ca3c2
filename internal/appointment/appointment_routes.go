package appointment

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
	appointments := r.Group("/appointments")
	appointments.Use(middleware.AuthMiddleware())
	{
		appointments.GET("", middleware.RBACAuthorize(rbacService, "appointment", "read"), handler.GetAll)
		appointments.GET("/:id", middleware.RBACAuthorize(rbacService, "appointment", "read"), handler.GetById)
		appointments.POST("", middleware.RBACAuthorize(rbacService, "appointment", "create"), handler.Schedule)
		appointments.PUT("/:id", middleware.RBACAuthorize(rbacService, "appointment", "create"), handler.Update)
		appointments.POST("/:id/complete", middleware.RBACAuthorize(rbacService, "appointment", "create"), handler.Complete)
		appointments.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "appointment", "create"), handler.Cancel)
	}
}
