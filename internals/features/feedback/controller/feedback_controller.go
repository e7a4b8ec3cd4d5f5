package controller

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"dansebakken_backend/internals/features/feedback/dto"
	"dansebakken_backend/internals/helpers/timeutil"
)

// FeedbackTab is the sheet tab feedback appends to.
const FeedbackTab = "Feedback"

type Persister interface {
	Append(ctx context.Context, tab string, row []string) error
}

type FallbackPersister interface {
	AppendFeedback(row []string) error
}

// FeedbackController relays feedback submissions through the same
// sheet-then-CSV chain as registrations. No notification step.
type FeedbackController struct {
	Sheets   Persister
	Fallback FallbackPersister
}

func NewFeedbackController(sheets Persister, fallback FallbackPersister) *FeedbackController {
	return &FeedbackController{Sheets: sheets, Fallback: fallback}
}

func (ctl *FeedbackController) HandleFeedback(c *fiber.Ctx) error {
	var body dto.FeedbackRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request",
		})
	}

	if strings.TrimSpace(body.Feedback) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Feedback is required",
		})
	}

	rec := body.ToRecord(timeutil.Stamp(time.Now()))

	if ctl.Sheets != nil {
		if err := ctl.Sheets.Append(c.UserContext(), FeedbackTab, rec.Row()); err == nil {
			return c.JSON(fiber.Map{"ok": true, "note": "saved-to-sheets"})
		} else {
			log.Printf("[SHEETS] feedback append failed, trying CSV fallback: %v", err)
		}
	}

	if ctl.Fallback == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Google Sheets required for production",
		})
	}
	if err := ctl.Fallback.AppendFeedback(rec.Row()); err != nil {
		log.Printf("[ERROR] feedback CSV fallback failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "save-failed",
		})
	}

	return c.JSON(fiber.Map{"ok": true, "note": "saved-to-csv"})
}
