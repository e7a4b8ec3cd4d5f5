package controller

import (
	"context"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"dansebakken_backend/internals/configs"
	"dansebakken_backend/internals/features/payments/vipps/dto"
	"dansebakken_backend/internals/features/payments/vipps/service"
)

// PaymentClient is the slice of the Vipps client the controller needs.
type PaymentClient interface {
	CreatePayment(ctx context.Context, in service.CreatePaymentInput) (service.CreatePaymentResult, error)
	GetPaymentStatus(ctx context.Context, reference string) (map[string]interface{}, error)
}

// VippsController fronts payment initiation, the provider callback, the
// status proxy and the config diagnostic. A nil Client means Vipps is not
// configured; initiation and status then fail with a generic 500 and the
// frontend shows its manual-payment panel.
type VippsController struct {
	Client   PaymentClient
	Validate *validator.Validate
}

func NewVippsController(client PaymentClient) *VippsController {
	return &VippsController{Client: client, Validate: validator.New()}
}

func (ctl *VippsController) HandleInitiate(c *fiber.Ctx) error {
	var body dto.InitiateRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request",
		})
	}
	if err := ctl.Validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid amount",
		})
	}
	if ctl.Client == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Vipps is not configured",
		})
	}

	orderID := body.OrderID
	if orderID == "" {
		orderID = fmt.Sprintf("DANS-%s", uuid.NewString())
	}

	desc := "Dansebakken medlemskap"
	if body.MemberType != "" {
		desc = fmt.Sprintf("Dansebakken medlemskap (%s)", body.MemberType)
	}

	res, err := ctl.Client.CreatePayment(c.UserContext(), service.CreatePaymentInput{
		AmountNOK:   body.Amount,
		Description: desc,
		Reference:   orderID,
		PhoneNumber: body.Phone,
	})
	if err != nil {
		log.Printf("[VIPPS] initiate failed for order %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Payment initiation failed",
			"details": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"url":     res.RedirectURL,
		"orderId": res.Reference,
	})
}

// HandleCallback logs the transaction status and always acknowledges.
// There is deliberately no reconciliation against stored registrations.
func (ctl *VippsController) HandleCallback(c *fiber.Ctx) error {
	var body dto.CallbackRequest
	if err := c.BodyParser(&body); err != nil {
		log.Printf("[VIPPS] unreadable callback payload: %v", err)
		return c.JSON(fiber.Map{"success": true})
	}
	log.Printf("[VIPPS] callback: order=%s status=%s amount=%d",
		body.OrderID, body.TransactionInfo.Status, body.TransactionInfo.Amount)
	return c.JSON(fiber.Map{"success": true})
}

func (ctl *VippsController) HandleStatus(c *fiber.Ctx) error {
	reference := c.Params("reference")
	if ctl.Client == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Vipps is not configured",
		})
	}
	out, err := ctl.Client.GetPaymentStatus(c.UserContext(), reference)
	if err != nil {
		log.Printf("[VIPPS] status lookup failed for %s: %v", reference, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Status lookup failed",
		})
	}
	return c.JSON(out)
}

// HandleTest reports which credentials are present, never their values.
func (ctl *VippsController) HandleTest(c *fiber.Ctx) error {
	cfg := configs.Vipps()
	env := "production"
	if cfg.TestMode {
		env = "test"
	}
	return c.JSON(fiber.Map{
		"configured":         cfg.Configured(),
		"environment":        env,
		"hasClientId":        cfg.ClientID != "",
		"hasClientSecret":    cfg.ClientSecret != "",
		"hasSubscriptionKey": cfg.SubscriptionKey != "",
		"hasMerchantSerial":  cfg.MerchantSerial != "",
	})
}
