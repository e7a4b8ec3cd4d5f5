package dto

import (
	"encoding/json"
	"strings"

	"dansebakken_backend/internals/features/registrations/model"
)

// FlexString accepts both JSON strings and bare numbers. Older frontend
// builds sent paymentAmount as a number, newer ones as a string.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "null" {
		*s = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	*s = FlexString(trimmed)
	return nil
}

// WebhookRequest is the registration payload posted by the signup form.
type WebhookRequest struct {
	Name           string     `json:"name" validate:"required"`
	Email          string     `json:"email" validate:"required"`
	Phone          string     `json:"phone"`
	DOB            string     `json:"dob"`
	MemberType     string     `json:"memberType"`
	ClassSelection string     `json:"classSelection"`
	Experience     string     `json:"experience"`
	SkillLevel     string     `json:"skillLevel"` // field name used by an older client build
	Comments       string     `json:"comments"`
	Relation       string     `json:"relation"`
	PaymentAmount  FlexString `json:"paymentAmount"`
	PaymentStatus  string     `json:"paymentStatus"`
}

func (r WebhookRequest) ToRecord(timestamp string) model.RegistrationRecord {
	memberType := model.MemberType(r.MemberType)
	if memberType != model.MemberTypeSupported {
		memberType = model.MemberTypeActive
	}
	skill := r.Experience
	if skill == "" {
		skill = r.SkillLevel
	}
	return model.RegistrationRecord{
		Timestamp:      timestamp,
		Name:           strings.TrimSpace(r.Name),
		Email:          strings.TrimSpace(r.Email),
		Phone:          strings.TrimSpace(r.Phone),
		DateOfBirth:    r.DOB,
		MemberType:     memberType,
		ClassSelection: r.ClassSelection,
		SkillLevel:     skill,
		Comments:       r.Comments,
		Relation:       r.Relation,
		PaymentAmount:  string(r.PaymentAmount),
		PaymentStatus:  r.PaymentStatus,
	}
}
