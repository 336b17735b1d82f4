package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/unlinked/server/src/lib"
	"github.com/unlinked/server/src/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostController struct {
	posts *services.PostService
	log   *logrus.Entry
}

func NewPostController(posts *services.PostService, log *logrus.Entry) *PostController {
	return &PostController{posts: posts, log: log}
}

// GetFeedPosts returns posts from the authenticated user and their connections
func (ctrl *PostController) GetFeedPosts(c *fiber.Ctx) error {
	user := currentUser(c)

	feed, err := ctrl.posts.GetFeed(c.Context(), &user)
	if err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(feed)
}

// CreatePost creates a post with optional image
func (ctrl *PostController) CreatePost(c *fiber.Ctx) error {
	var input struct {
		Content string `json:"content"`
		Image   string `json:"image"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	user := currentUser(c)

	post, err := ctrl.posts.CreatePost(c.Context(), &user, input.Content, input.Image)
	if err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost deletes one of the authenticated user's posts
func (ctrl *PostController) DeletePost(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post ID format"))
	}

	user := currentUser(c)

	if err := ctrl.posts.DeletePost(c.Context(), postID, &user); err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("Post deleted successfully"))
}

// GetPostByID returns a single post
func (ctrl *PostController) GetPostByID(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post ID format"))
	}

	post, err := ctrl.posts.GetPost(c.Context(), postID)
	if err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

// CreateComment adds a comment to a post
func (ctrl *PostController) CreateComment(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post ID format"))
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	user := currentUser(c)

	post, err := ctrl.posts.CreateComment(c.Context(), postID, &user, input.Content)
	if err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

// LikePost toggles the authenticated user's like on a post
func (ctrl *PostController) LikePost(c *fiber.Ctx) error {
	postID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post ID format"))
	}

	user := currentUser(c)

	post, err := ctrl.posts.LikePost(c.Context(), postID, &user)
	if err != nil {
		return handleError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}
