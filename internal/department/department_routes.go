package department

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
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", middleware.RBACAuthorize(rbacService, "department", "read"), handler.GetAll)
		departments.GET("/:id", middleware.RBACAuthorize(rbacService, "department", "read"), handler.GetById)
		departments.POST("", middleware.RBACAuthorize(rbacService, "department", "manage"), handler.Create)
		departments.PUT("/:id", middleware.RBACAuthorize(rbacService, "department", "manage"), handler.Update)
		departments.DELETE("/:id", middleware.RBACAuthorize(rbacService, "department", "manage"), handler.Delete)
	}
}
