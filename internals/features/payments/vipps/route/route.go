package route

import (
	"github.com/gofiber/fiber/v2"

	"dansebakken_backend/internals/features/payments/vipps/controller"
)

// VippsAPIRoutes mounts the payment endpoints under /api.
func VippsAPIRoutes(r fiber.Router, ctl *controller.VippsController) {
	r.Post("/vipps-initiate", ctl.HandleInitiate)
	r.Post("/vipps-callback", ctl.HandleCallback)
	r.Get("/vipps-test", ctl.HandleTest)
}

// VippsStatusRoute is the bare status proxy used by the confirmation page.
func VippsStatusRoute(app *fiber.App, ctl *controller.VippsController) {
	app.Get("/vipps/payment-status/:reference", ctl.HandleStatus)
}
