package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dansebakken_backend/internals/features/registrations/model"
)

func TestFlexStringAcceptsNumberAndString(t *testing.T) {
	cases := map[string]string{
		`{"paymentAmount":349}`:     "349",
		`{"paymentAmount":"349"}`:   "349",
		`{"paymentAmount":null}`:    "",
		`{}`:                        "",
		`{"paymentAmount":"50 kr"}`: "50 kr",
	}
	for raw, want := range cases {
		var req WebhookRequest
		require.NoError(t, json.Unmarshal([]byte(raw), &req), raw)
		assert.Equal(t, want, string(req.PaymentAmount), raw)
	}
}

func TestToRecordExperienceAlias(t *testing.T) {
	rec := WebhookRequest{Name: "Jane", Email: "j@e.com", SkillLevel: "Advanced"}.ToRecord("01.02.2026 10:00")
	assert.Equal(t, "Advanced", rec.SkillLevel)

	rec = WebhookRequest{Name: "Jane", Email: "j@e.com", Experience: "Beginner", SkillLevel: "Advanced"}.ToRecord("01.02.2026 10:00")
	assert.Equal(t, "Beginner", rec.SkillLevel, "experience wins when both are sent")
}

func TestToRecordMemberTypeDefaultsToActive(t *testing.T) {
	rec := WebhookRequest{Name: "Jane", Email: "j@e.com"}.ToRecord("01.02.2026 10:00")
	assert.Equal(t, model.MemberTypeActive, rec.MemberType)
	assert.Equal(t, model.NotesComment, rec.NotesKind())

	rec = WebhookRequest{Name: "Kari", Email: "k@e.com", MemberType: "supported", Relation: "Aunt"}.ToRecord("01.02.2026 10:00")
	assert.Equal(t, model.MemberTypeSupported, rec.MemberType)
	assert.Equal(t, model.NotesRelation, rec.NotesKind())
	assert.Equal(t, "Aunt", rec.Notes())
}
