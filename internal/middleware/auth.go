// internal/middleware/auth.go
package middleware

import (
	"log"
	"strings"

	"rental-notify/internal/config"

	"github.com/gofiber/fiber/v2"
)

// Context keys for gateway-supplied identity (Fiber Locals).
const (
	UserIDContextKey = "userID"
	RolesContextKey  = "userRoles"
)

// ServiceAuth guards service-to-service routes. Callers present the shared
// token via X-Service-Token or an Authorization bearer.
func ServiceAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("X-Service-Token")
		if token == "" {
			authHeader := c.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}
		maskedToken := "<empty>"
		if token != "" {
			if len(token) > 6 {
				maskedToken = token[:6] + "..."
			} else {
				maskedToken = token
			}
		}
		if token != cfg.ServiceExpectedToken {
			log.Printf("[SERVICE-AUTH] ❌ REJECTED | IP=%s | Path=%s | Token=%s",
				c.IP(), c.Path(), maskedToken)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized: invalid or missing service token",
			})
		}
		log.Printf("[SERVICE-AUTH] ✅ ACCEPTED | IP=%s | Path=%s", c.IP(), c.Path())
		return c.Next()
	}
}

// GatewayAuth requires the user context headers the API gateway injects.
func GatewayAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			log.Printf("[GATEWAY-AUTH] ❌ REJECTED | IP=%s | Path=%s", c.IP(), c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized: missing user context from Gateway",
			})
		}
		c.Locals(UserIDContextKey, userID)
		return c.Next()
	}
}

// AdminRoleAuth requires an admin role in the gateway's X-User-Roles header.
// Stacks after GatewayAuth.
func AdminRoleAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRolesHeader := c.Get("X-User-Roles")
		if userRolesHeader == "" {
			log.Printf("[ADMIN-AUTH] ❌ REJECTED (no roles) | Path=%s", c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: missing user roles from Gateway",
			})
		}
		userRoles := strings.Split(userRolesHeader, ",")
		hasAdminRole := false
		for _, role := range userRoles {
			if strings.ToLower(strings.TrimSpace(role)) == "admin" {
				hasAdminRole = true
				break
			}
		}
		if !hasAdminRole {
			log.Printf("[ADMIN-AUTH] ❌ REJECTED (no admin) | Roles=%v | Path=%s",
				userRoles, c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: admin role required",
			})
		}
		c.Locals(RolesContextKey, userRoles)
		return c.Next()
	}
}
