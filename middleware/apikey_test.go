package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"foliocms/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKey(t *testing.T) {
	tests := []struct {
		name           string
		key            string
		expectedStatus int
		handlerReached bool
	}{
		{
			name:           "correct key",
			key:            "top-secret",
			expectedStatus: fiber.StatusOK,
			handlerReached: true,
		},
		{
			name:           "wrong key",
			key:            "guess",
			expectedStatus: fiber.StatusForbidden,
		},
		{
			name:           "missing key",
			key:            "",
			expectedStatus: fiber.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			app := fiber.New()
			app.Use(APIKey("top-secret"))
			app.Get("/resource", func(c *fiber.Ctx) error {
				reached = true
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/resource", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}

			rejectionsBefore := testutil.ToFloat64(observability.GateRejections)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.Equal(t, tt.handlerReached, reached,
				"handler must only run for an authorized request")

			rejections := testutil.ToFloat64(observability.GateRejections) - rejectionsBefore
			if tt.expectedStatus == fiber.StatusForbidden {
				assert.Equal(t, float64(1), rejections)
			} else {
				assert.Zero(t, rejections)
			}

			if tt.expectedStatus == fiber.StatusForbidden {
				var body map[string]string
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, map[string]string{"error": "Forbidden"}, body)
			}
		})
	}
}
