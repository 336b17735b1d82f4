package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/unlinked/server/src/lib"
	"github.com/unlinked/server/src/services"
)

type AuthController struct {
	auth      *services.AuthService
	jwtSecret string
	log       *logrus.Entry
}

func NewAuthController(auth *services.AuthService, jwtSecret string, log *logrus.Entry) *AuthController {
	return &AuthController{auth: auth, jwtSecret: jwtSecret, log: log}
}

// Signup registers a new user and logs them in.
func (ctrl *AuthController) Signup(c *fiber.Ctx) error {
	var input services.SignupInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	user, err := ctrl.auth.Signup(c.Context(), input)
	if err != nil {
		return handleError(c, ctrl.log, err)
	}

	token, err := ctrl.issueToken(c, user.Id.Hex())
	if err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"token":   token,
	})
}

// Login authenticates a user by username and password.
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	user, err := ctrl.auth.Login(c.Context(), input.Username, input.Password)
	if err != nil {
		return handleError(c, ctrl.log, err)
	}

	token, err := ctrl.issueToken(c, user.Id.Hex())
	if err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged in successfully",
		"token":   token,
	})
}

// Logout clears the session cookie.
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("Logged out successfully"))
}

// GetCurrentUser returns the authenticated user's own record.
func (ctrl *AuthController) GetCurrentUser(c *fiber.Ctx) error {
	user := currentUser(c)
	return c.Status(fiber.StatusOK).JSON(user)
}

func (ctrl *AuthController) issueToken(c *fiber.Ctx, userID string) (string, error) {
	token, err := lib.GenerateJWT(userID, ctrl.jwtSecret)
	if err != nil {
		return "", err
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  time.Now().Add(3 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Strict",
	})

	return token, nil
}
