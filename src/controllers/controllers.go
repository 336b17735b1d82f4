package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/unlinked/server/src/lib"
	"github.com/unlinked/server/src/models"
	"github.com/unlinked/server/src/services"
)

// currentUser returns the authenticated user attached by the auth middleware.
func currentUser(c *fiber.Ctx) models.User {
	return c.Locals("user").(models.User)
}

var statusByError = map[error]int{
	services.ErrSelfRequest:        fiber.StatusBadRequest,
	services.ErrAlreadyConnected:   fiber.StatusBadRequest,
	services.ErrDuplicateRequest:   fiber.StatusBadRequest,
	services.ErrRequestProcessed:   fiber.StatusBadRequest,
	services.ErrMissingFields:      fiber.StatusBadRequest,
	services.ErrPasswordTooShort:   fiber.StatusBadRequest,
	services.ErrEmailTaken:         fiber.StatusBadRequest,
	services.ErrUsernameTaken:      fiber.StatusBadRequest,
	services.ErrInvalidCredentials: fiber.StatusBadRequest,
	services.ErrInvalidImage:       fiber.StatusBadRequest,

	services.ErrNotRecipient: fiber.StatusForbidden,
	services.ErrNotAuthor:    fiber.StatusForbidden,

	services.ErrRequestNotFound:      fiber.StatusNotFound,
	services.ErrUserNotFound:         fiber.StatusNotFound,
	services.ErrPostNotFound:         fiber.StatusNotFound,
	services.ErrNotificationNotFound: fiber.StatusNotFound,
}

// handleError translates domain errors to their status; anything unmatched
// is a store failure and becomes a 500 with a generic message.
func handleError(c *fiber.Ctx, log *logrus.Entry, err error) error {
	for domainErr, status := range statusByError {
		if errors.Is(err, domainErr) {
			return c.Status(status).JSON(lib.MessageResponse(domainErr.Error()))
		}
	}

	log.WithError(err).Error("internal server error")
	return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
}
