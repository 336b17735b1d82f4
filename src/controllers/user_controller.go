package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/unlinked/server/src/lib"
	"github.com/unlinked/server/src/services"
)

type UserController struct {
	users *services.UserService
	log   *logrus.Entry
}

func NewUserController(users *services.UserService, log *logrus.Entry) *UserController {
	return &UserController{users: users, log: log}
}

// GetSuggestedConnections returns users the caller might want to connect with
func (ctrl *UserController) GetSuggestedConnections(c *fiber.Ctx) error {
	user := currentUser(c)

	suggestions, err := ctrl.users.GetSuggestions(c.Context(), &user)
	if err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(suggestions)
}

// GetPublicProfile returns a user's profile by username
func (ctrl *UserController) GetPublicProfile(c *fiber.Ctx) error {
	user, err := ctrl.users.GetPublicProfile(c.Context(), c.Params("username"))
	if err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// UpdateProfile updates the authenticated user's profile fields
func (ctrl *UserController) UpdateProfile(c *fiber.Ctx) error {
	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	user := currentUser(c)

	updated, err := ctrl.users.UpdateProfile(c.Context(), &user, input)
	if err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}
