package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/unlinked/server/src/controllers"
)

// UserRoutes sets up user-related routes for suggestions, public profile, and profile update
func UserRoutes(app *fiber.App, ctrl *controllers.UserController, protect fiber.Handler) {
	user := app.Group("/api/v1/users", protect)

	user.Get("/suggestions", ctrl.GetSuggestedConnections)
	user.Get("/:username", ctrl.GetPublicProfile)
	user.Put("/profile", ctrl.UpdateProfile)
}
