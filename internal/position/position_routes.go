package position

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
	positions := r.Group("/positions")
	positions.Use(middleware.AuthMiddleware())
	{
		positions.GET("", middleware.RBACAuthorize(rbacService, "position", "read"), handler.GetAll)
		positions.GET("/:id", middleware.RBACAuthorize(rbacService, "position", "read"), handler.GetById)
		positions.POST("", middleware.RBACAuthorize(rbacService, "position", "manage"), handler.Create)
		positions.PUT("/:id", middleware.RBACAuthorize(rbacService, "position", "manage"), handler.Update)
		positions.DELETE("/:id", middleware.RBACAuthorize(rbacService, "position", "manage"), handler.Delete)
	}
}
