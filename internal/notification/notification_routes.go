package notification

import (
	"go-hrportal/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Notifications are always scoped to the authenticated recipient, so no
// RBAC policy check beyond authentication.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", handler.GetAll)
		notifications.GET("/unread-count", handler.UnreadCount)
		notifications.PATCH("/:id/read", handler.MarkRead)
		notifications.PATCH("/read-all", handler.MarkAllRead)
	}
}
