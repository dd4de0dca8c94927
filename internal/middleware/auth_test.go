package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-notify/internal/config"
)

func okHandler(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusOK)
}

func TestServiceAuth(t *testing.T) {
	cfg := &config.Config{ServiceExpectedToken: "secret-token"}
	app := fiber.New()
	app.Get("/svc", ServiceAuth(cfg), okHandler)

	tests := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"valid service token header", "X-Service-Token", "secret-token", fiber.StatusOK},
		{"valid bearer token", "Authorization", "Bearer secret-token", fiber.StatusOK},
		{"wrong token", "X-Service-Token", "nope", fiber.StatusUnauthorized},
		{"missing token", "", "", fiber.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/svc", nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestGatewayAuthRequiresUserID(t *testing.T) {
	app := fiber.New()
	app.Get("/v", GatewayAuth(), okHandler)

	req := httptest.NewRequest("GET", "/v", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("GET", "/v", nil)
	req.Header.Set("X-User-ID", "u-123")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminRoleAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", AdminRoleAuth(), okHandler)

	tests := []struct {
		name  string
		roles string
		want  int
	}{
		{"admin role", "admin", fiber.StatusOK},
		{"admin among others", "support, Admin ,billing", fiber.StatusOK},
		{"no admin role", "support,billing", fiber.StatusForbidden},
		{"no roles header", "", fiber.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tc.roles != "" {
				req.Header.Set("X-User-Roles", tc.roles)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
