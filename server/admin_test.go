package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == adminSessionCookie {
			return c
		}
	}
	return nil
}

func TestAdminLogin(t *testing.T) {
	app, db := setupTestServer(t)
	createTestUser(t, db) // stores the bcrypt hash of password123

	tests := []struct {
		name           string
		payload        map[string]any
		expectedStatus int
		wantCookie     bool
	}{
		{
			name:           "valid credentials",
			payload:        map[string]any{"email": "author@example.com", "password": "password123"},
			expectedStatus: fiber.StatusOK,
			wantCookie:     true,
		},
		{
			name:           "wrong password",
			payload:        map[string]any{"email": "author@example.com", "password": "nope"},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "unknown user",
			payload:        map[string]any{"email": "ghost@example.com", "password": "password123"},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "missing fields",
			payload:        map[string]any{"email": "author@example.com"},
			expectedStatus: fiber.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Console login uses its own session auth, not the API key.
			req := apiRequest("POST", "/admin/login", tt.payload)
			req.Header.Del("X-API-Key")

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			cookie := sessionCookie(resp)
			if tt.wantCookie {
				require.NotNil(t, cookie)
				assert.NotEmpty(t, cookie.Value)
				assert.True(t, cookie.HttpOnly)
			} else {
				assert.Nil(t, cookie)
			}
		})
	}
}

func TestAdminMe(t *testing.T) {
	app, db := setupTestServer(t)
	createTestUser(t, db)

	login := apiRequest("POST", "/admin/login", map[string]any{
		"email": "author@example.com", "password": "password123",
	})
	resp, err := app.Test(login, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)

	req := httptest.NewRequest("GET", "/admin/me", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "author", body["username"])
	_, exposed := body["password"]
	assert.False(t, exposed)
}

func TestAdminMeWithoutSession(t *testing.T) {
	app, _ := setupTestServer(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/me", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/admin/me", nil)
	req.AddCookie(&http.Cookie{Name: adminSessionCookie, Value: "not-a-token"})
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
