package controller

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"dansebakken_backend/internals/features/registrations/dto"
	"dansebakken_backend/internals/features/registrations/model"
	"dansebakken_backend/internals/helpers/timeutil"
)

// RegistrationsTab is the sheet tab registrations append to.
const RegistrationsTab = "Registrations"

// Persister appends one row to a sheet tab.
type Persister interface {
	Append(ctx context.Context, tab string, row []string) error
}

// FallbackPersister appends the row locally when the sheet is unavailable.
type FallbackPersister interface {
	AppendRegistration(row []string) error
}

// Notifier dispatches the thank-you mail without blocking the request.
type Notifier interface {
	NotifyBestEffort(name, email, paymentAmount string)
}

// WebhookController is the submission relay for registrations. Which
// capabilities exist is deployment configuration: a nil Sheets means
// "unconfigured, go straight to CSV", a nil Fallback means "hard-fail when
// the sheet is unreachable" (the serverless posture), a nil Notify disables
// thank-you mails.
type WebhookController struct {
	Sheets   Persister
	Fallback FallbackPersister
	Notify   Notifier
	Validate *validator.Validate
}

func NewWebhookController(sheets Persister, fallback FallbackPersister, notify Notifier) *WebhookController {
	return &WebhookController{
		Sheets:   sheets,
		Fallback: fallback,
		Notify:   notify,
		Validate: validator.New(),
	}
}

// HandleWebhook runs the fixed chain: validate, sheet append, CSV fallback,
// best-effort notify.
func (ctl *WebhookController) HandleWebhook(c *fiber.Ctx) error {
	var body dto.WebhookRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request",
		})
	}

	if err := ctl.Validate.Struct(body); err != nil ||
		strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.Email) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	rec := body.ToRecord(timeutil.Stamp(time.Now()))

	if ctl.Sheets != nil {
		if err := ctl.Sheets.Append(c.UserContext(), RegistrationsTab, rec.Row()); err == nil {
			ctl.maybeNotify(rec)
			return c.JSON(fiber.Map{"ok": true, "note": "saved-to-sheets"})
		} else {
			log.Printf("[SHEETS] registration append failed, trying CSV fallback: %v", err)
		}
	}

	if ctl.Fallback == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Google Sheets required for production",
		})
	}
	if err := ctl.Fallback.AppendRegistration(rec.Row()); err != nil {
		log.Printf("[ERROR] registration CSV fallback failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "save-failed",
		})
	}

	ctl.maybeNotify(rec)
	return c.JSON(fiber.Map{"ok": true, "note": "saved-to-csv"})
}

// Thank-you mail goes to supported members only, after either persistence
// path succeeded. Its outcome never affects the response.
func (ctl *WebhookController) maybeNotify(rec model.RegistrationRecord) {
	if ctl.Notify == nil {
		return
	}
	if rec.MemberType != model.MemberTypeSupported || rec.Email == "" {
		return
	}
	ctl.Notify.NotifyBestEffort(rec.Name, rec.Email, rec.PaymentAmount)
}
