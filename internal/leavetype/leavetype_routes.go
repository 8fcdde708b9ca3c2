package leavetype

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
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware())
	{
		types.GET("", middleware.RBACAuthorize(rbacService, "leave_type", "read"), handler.GetAll)
		types.GET("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "read"), handler.GetById)
		types.POST("", middleware.RBACAuthorize(rbacService, "leave_type", "manage"), handler.Create)
		types.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "manage"), handler.Update)
		types.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "manage"), handler.Delete)
	}
}
