package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"

	fbcontroller "dansebakken_backend/internals/features/feedback/controller"
	fbroute "dansebakken_backend/internals/features/feedback/route"
	vippscontroller "dansebakken_backend/internals/features/payments/vipps/controller"
	vippsroute "dansebakken_backend/internals/features/payments/vipps/route"
	regcontroller "dansebakken_backend/internals/features/registrations/controller"
	regroute "dansebakken_backend/internals/features/registrations/route"
)

// Deps carries the wired controllers. Which capabilities each controller
// holds is decided in main from the environment.
type Deps struct {
	Webhook  *regcontroller.WebhookController
	Feedback *fbcontroller.FeedbackController
	Vipps    *vippscontroller.VippsController
}

func SetupRoutes(app *fiber.App, d Deps) {
	BaseRoutes(app)

	// submissions are reachable both bare and under /api; the deployed
	// frontends disagree on which prefix they call
	api := app.Group("/api")

	log.Println("[INFO] Mounting webhook routes...")
	regroute.WebhookRoutes(app, d.Webhook)
	regroute.WebhookRoutes(api, d.Webhook)

	log.Println("[INFO] Mounting feedback routes...")
	fbroute.FeedbackRoutes(app, d.Feedback)
	fbroute.FeedbackRoutes(api, d.Feedback)

	log.Println("[INFO] Mounting Vipps routes...")
	vippsroute.VippsAPIRoutes(api, d.Vipps)
	vippsroute.VippsStatusRoute(app, d.Vipps)
}
