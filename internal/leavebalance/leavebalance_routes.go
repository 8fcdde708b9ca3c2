package leavebalance

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
	balances := r.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/me", handler.GetMine)
		balances.GET("/employee/:employee_id", middleware.RBACAuthorize(rbacService, "leave_balance", "read"), handler.GetByEmployee)
		balances.POST("", middleware.RBACAuthorize(rbacService, "leave_balance", "manage"), handler.Provision)
	}
}
