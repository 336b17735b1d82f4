package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/unlinked/server/src/controllers"
)

// NotificationRoutes sets up notification-related routes for listing, marking as read, and deleting notifications
func NotificationRoutes(app *fiber.App, ctrl *controllers.NotificationController, protect fiber.Handler) {
	notification := app.Group("/api/v1/notifications", protect)

	notification.Get("/", ctrl.GetUserNotifications)
	notification.Put("/:id/read", ctrl.MarkNotificationAsRead)
	notification.Delete("/:id", ctrl.DeleteNotification)
}
