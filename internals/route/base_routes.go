package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"dansebakken_backend/internals/configs"
)

var startTime = time.Now()

func BaseRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Dansebakken backend up 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":           "OK",
			"server_time":      time.Now().Format(time.RFC3339),
			"uptime_seconds":   int(time.Since(startTime).Seconds()),
			"sheetsConfigured": configs.Sheets().Configured(),
			"vippsConfigured":  configs.Vipps().Configured(),
			"mailConfigured":   configs.Mail().Configured(),
		})
	})
}
