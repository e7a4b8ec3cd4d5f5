package route

import (
	"github.com/gofiber/fiber/v2"

	"dansebakken_backend/internals/features/feedback/controller"
	"dansebakken_backend/internals/middlewares"
)

func FeedbackRoutes(r fiber.Router, ctl *controller.FeedbackController) {
	r.Post("/feedback", middlewares.SubmitRateLimiter(), ctl.HandleFeedback)
}
