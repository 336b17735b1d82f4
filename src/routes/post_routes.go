package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/unlinked/server/src/controllers"
)

// PostRoutes sets up post-related routes for the feed, creating, deleting, fetching, commenting, and liking posts
func PostRoutes(app *fiber.App, ctrl *controllers.PostController, protect fiber.Handler) {
	post := app.Group("/api/v1/posts", protect)

	post.Get("/", ctrl.GetFeedPosts)
	post.Post("/create", ctrl.CreatePost)
	post.Delete("/delete/:id", ctrl.DeletePost)
	post.Get("/:id", ctrl.GetPostByID)
	post.Post("/:id/comment", ctrl.CreateComment)
	post.Post("/:id/like", ctrl.LikePost)
}
