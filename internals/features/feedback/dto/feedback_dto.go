package dto

import (
	"strings"

	"dansebakken_backend/internals/features/feedback/model"
)

// FeedbackRequest is the payload posted by the feedback form.
type FeedbackRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Feedback  string `json:"feedback" validate:"required"`
	Anonymous bool   `json:"anonymous"`
}

// ToRecord blanks the identity columns for anonymous submissions so the
// sheet never carries them, whatever the client sent.
func (r FeedbackRequest) ToRecord(timestamp string) model.FeedbackRecord {
	rec := model.FeedbackRecord{
		Timestamp: timestamp,
		Anonymous: r.Anonymous,
		Name:      strings.TrimSpace(r.Name),
		Email:     strings.TrimSpace(r.Email),
		Feedback:  strings.TrimSpace(r.Feedback),
	}
	if rec.Anonymous {
		rec.Name = ""
		rec.Email = ""
	}
	return rec
}
