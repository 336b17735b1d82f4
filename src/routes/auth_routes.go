package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/unlinked/server/src/controllers"
)

// AuthRoutes sets up authentication routes for signup, login, logout, and current user
func AuthRoutes(app *fiber.App, ctrl *controllers.AuthController, protect fiber.Handler) {
	auth := app.Group("/api/v1/auth")

	auth.Post("/signup", ctrl.Signup)
	auth.Post("/login", ctrl.Login)
	auth.Post("/logout", ctrl.Logout)
	auth.Get("/me", protect, ctrl.GetCurrentUser)
}
