package route

import (
	"github.com/gofiber/fiber/v2"

	"dansebakken_backend/internals/features/registrations/controller"
	"dansebakken_backend/internals/middlewares"
)

// WebhookRoutes mounts the registration relay on the given router. Mounted
// twice in practice: once bare and once under /api.
func WebhookRoutes(r fiber.Router, ctl *controller.WebhookController) {
	r.Post("/webhook", middlewares.SubmitRateLimiter(), ctl.HandleWebhook)
}
