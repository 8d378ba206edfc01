package main

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/printly/internal/config"
	"github.com/example/printly/internal/database"
	"github.com/example/printly/internal/logstore"
	"github.com/example/printly/internal/models"
	"github.com/example/printly/internal/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)
	logs := logstore.New(db)

	app := fiber.New(fiber.Config{
		AppName:      "Printly Backend",
		ErrorHandler: errorHandler(logs),
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// In-memory per-process limiter; counters reset on restart and are
	// not shared across instances.
	app.Use("/api", limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	routes.Register(app, db, cfg)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}

// errorHandler keeps fiber.Error statuses and messages as-is, and maps
// everything else to a logged, generic 500 so data-store errors never
// leak verbatim.
func errorHandler(logs *logstore.Store) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"message": fiberErr.Message,
			})
		}

		logs.Error(models.LogCategoryError, "unhandled error", logstore.Entry{
			Metadata: map[string]interface{}{
				"path":   c.Path(),
				"method": c.Method(),
				"error":  err.Error(),
			},
			IP: c.IP(),
		})

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "internal server error",
		})
	}
}
