package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"habitflow/backend/config"
	"habitflow/backend/models"
	"habitflow/backend/utils"
)

// AuthMiddleware verifies the Bearer token, checks the user still exists
// and stores the caller id in c.Locals("userID") for the handlers.
func AuthMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}

		var user models.User
		if err := db.Select("id", "role").First(&user, userID).Error; err != nil {
			return utils.Unauthorized(c, "Invalid token")
		}

		c.Locals("userID", user.ID)
		c.Locals("userRole", user.Role)
		return c.Next()
	}
}

// AdminMiddleware gates catalog mutations to admin users. Must run after
// AuthMiddleware.
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("userRole").(string)
		if role != "admin" {
			return utils.Forbidden(c, "Admin access required")
		}
		return c.Next()
	}
}

// UserID returns the authenticated caller id set by AuthMiddleware.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}
