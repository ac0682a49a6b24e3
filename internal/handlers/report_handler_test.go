package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/campushare/campushare-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A bad report request reports every failing field at once so the client can
// attach messages to inputs.
func TestCreateReportFieldErrors(t *testing.T) {
	app := fiber.New()
	app.Post("/reports", NewReportHandler(nil).Create)

	body := `{"entity_type":"post","entity_id":0,"reason":"offensive"}`
	req := httptest.NewRequest(fiber.MethodPost, "/reports", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var envelope dto.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "error", envelope.Status)

	fields := make([]string, 0, len(envelope.Errors))
	for _, fe := range envelope.Errors {
		fields = append(fields, fe.Field)
		assert.NotEmpty(t, fe.Message)
	}
	assert.ElementsMatch(t, []string{"entity_type", "entity_id", "reason"}, fields)
}

func TestCreateReportValidReasonPassesValidation(t *testing.T) {
	for _, reason := range []string{"plagiarism", "abuse", "spam", "other"} {
		assert.True(t, validReportReason(reason), reason)
	}
	for _, reason := range []string{"", "Spam", "offensive"} {
		assert.False(t, validReportReason(reason), reason)
	}
}
