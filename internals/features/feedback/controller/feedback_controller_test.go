package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPersister struct {
	err  error
	tabs []string
	rows [][]string
}

func (m *mockPersister) Append(_ context.Context, tab string, row []string) error {
	m.tabs = append(m.tabs, tab)
	m.rows = append(m.rows, row)
	return m.err
}

type mockFallback struct {
	err  error
	rows [][]string
}

func (m *mockFallback) AppendFeedback(row []string) error {
	m.rows = append(m.rows, row)
	return m.err
}

func postFeedback(t *testing.T, ctl *FeedbackController, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Post("/feedback", ctl.HandleFeedback)

	b, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/feedback", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestFeedbackBlankTextRejected(t *testing.T) {
	persister := &mockPersister{}
	fallback := &mockFallback{}
	ctl := NewFeedbackController(persister, fallback)

	for _, payload := range []map[string]interface{}{
		{},
		{"feedback": ""},
		{"feedback": "   "},
		{"feedback": "\n\t"},
	} {
		resp, body := postFeedback(t, ctl, payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Feedback is required", body["error"])
	}
	assert.Empty(t, persister.rows)
	assert.Empty(t, fallback.rows)
}

func TestFeedbackSavedToSheets(t *testing.T) {
	persister := &mockPersister{}
	ctl := NewFeedbackController(persister, nil)

	resp, body := postFeedback(t, ctl, map[string]interface{}{
		"name":     "Jane",
		"email":    "jane@example.com",
		"feedback": "Great classes!",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "saved-to-sheets", body["note"])
	assert.Equal(t, []string{FeedbackTab}, persister.tabs)

	require.Len(t, persister.rows, 1)
	row := persister.rows[0]
	require.Len(t, row, 5)
	assert.Equal(t, "no", row[1])
	assert.Equal(t, "Jane", row[2])
	assert.Equal(t, "Great classes!", row[4])
}

func TestFeedbackAnonymousBlanksIdentity(t *testing.T) {
	persister := &mockPersister{}
	ctl := NewFeedbackController(persister, nil)

	resp, _ := postFeedback(t, ctl, map[string]interface{}{
		"anonymous": true,
		"name":      "Jane",
		"email":     "jane@example.com",
		"feedback":  "Great classes!",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, persister.rows, 1)
	row := persister.rows[0]
	assert.Equal(t, "yes", row[1])
	assert.Equal(t, "", row[2])
	assert.Equal(t, "", row[3])
	assert.Equal(t, "Great classes!", row[4])
}

func TestFeedbackFallbackChain(t *testing.T) {
	persister := &mockPersister{err: errors.New("down")}
	fallback := &mockFallback{}
	ctl := NewFeedbackController(persister, fallback)

	resp, body := postFeedback(t, ctl, map[string]interface{}{"feedback": "Fine"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "saved-to-csv", body["note"])
	assert.Len(t, fallback.rows, 1)

	fallback.err = errors.New("disk full")
	resp, body = postFeedback(t, ctl, map[string]interface{}{"feedback": "Fine"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "save-failed", body["error"])
}

func TestFeedbackNoFallbackHardFails(t *testing.T) {
	ctl := NewFeedbackController(&mockPersister{err: errors.New("down")}, nil)

	resp, body := postFeedback(t, ctl, map[string]interface{}{"feedback": "Fine"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Google Sheets required for production", body["error"])
}
