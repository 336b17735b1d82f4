package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/unlinked/server/src/lib"
	"github.com/unlinked/server/src/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationController struct {
	notifications *services.NotificationService
	log           *logrus.Entry
}

func NewNotificationController(notifications *services.NotificationService, log *logrus.Entry) *NotificationController {
	return &NotificationController{notifications: notifications, log: log}
}

// GetUserNotifications returns the authenticated user's notifications
func (ctrl *NotificationController) GetUserNotifications(c *fiber.Ctx) error {
	user := currentUser(c)

	notifications, err := ctrl.notifications.List(c.Context(), user.Id)
	if err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(notifications)
}

// MarkNotificationAsRead marks one of the user's notifications as read
func (ctrl *NotificationController) MarkNotificationAsRead(c *fiber.Ctx) error {
	notificationID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid notification ID format"))
	}

	user := currentUser(c)

	notification, err := ctrl.notifications.MarkRead(c.Context(), notificationID, user.Id)
	if err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(notification)
}

// DeleteNotification removes one of the user's notifications
func (ctrl *NotificationController) DeleteNotification(c *fiber.Ctx) error {
	notificationID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid notification ID format"))
	}

	user := currentUser(c)

	if err := ctrl.notifications.Delete(c.Context(), notificationID, user.Id); err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("Notification deleted successfully"))
}
