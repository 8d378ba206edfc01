package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/printly/internal/config"
	"github.com/example/printly/internal/models"
)

const adminUserContextKey = "currentAdminUser"

// AdminMiddleware gates administrative endpoints. It runs after
// AuthMiddleware, loads the authenticated user's email, and checks it
// against the configured allow-list on every request; admin status is
// never cached between requests.
func AdminMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := GetCurrentUserID(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
			}
			return err
		}

		if !cfg.IsAdminEmail(user.Email) {
			return fiber.NewError(fiber.StatusForbidden, "not an admin")
		}

		c.Locals(adminUserContextKey, user)
		return c.Next()
	}
}

// GetAdminUser returns the admin user loaded by AdminMiddleware.
func GetAdminUser(c *fiber.Ctx) (models.User, bool) {
	if user, ok := c.Locals(adminUserContextKey).(models.User); ok {
		return user, true
	}
	return models.User{}, false
}
