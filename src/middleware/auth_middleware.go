package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/unlinked/server/src/lib"
	"github.com/unlinked/server/src/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProtectRoute checks for a valid JWT (Authorization bearer header or jwt
// cookie), loads the user and attaches it to the request context.
func ProtectRoute(users repositories.UserRepository, jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - No token provided"))
		}

		claims, err := lib.VerifyJWT(token, jwtSecret)
		if err != nil || claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - Invalid token"))
		}

		userID, ok := claims["userId"].(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - Invalid token"))
		}

		objectID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - Invalid user ID"))
		}

		user, err := users.FindByID(c.Context(), objectID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - User not found"))
		}

		user.Password = ""
		c.Locals("user", *user)

		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Cookies("jwt")
}
