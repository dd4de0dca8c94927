// internal/transport/http/unsubscribe.go
package http

import (
	"log"
	"strings"

	"rental-notify/internal/suppression"
	"rental-notify/pkg/models"

	"github.com/gofiber/fiber/v2"
)

// UnsubscribeHandler serves the public opt-out endpoint linked from every
// email footer. No auth: the link must work from any mail client.
type UnsubscribeHandler struct {
	suppressions *suppression.Store
}

func NewUnsubscribeHandler(suppressions *suppression.Store) *UnsubscribeHandler {
	return &UnsubscribeHandler{suppressions: suppressions}
}

// Unsubscribe handles GET and POST /unsubscribe?email=...
// Repeat calls for an already suppressed address still return 200.
func (h *UnsubscribeHandler) Unsubscribe(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		var req struct {
			Email string `json:"email"`
		}
		if err := c.BodyParser(&req); err == nil {
			email = strings.TrimSpace(req.Email)
		}
	}
	if email == "" || !strings.Contains(email, "@") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "a valid email is required"})
	}

	if err := h.suppressions.Suppress(c.Context(), email, models.SuppressionSourceUnsubscribeLink, ""); err != nil {
		log.Printf("❌ [UNSUBSCRIBE] Failed for %s: %v", email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not process unsubscribe"})
	}

	log.Printf("🚫 [UNSUBSCRIBE] %s opted out", suppression.Normalize(email))
	return c.JSON(fiber.Map{
		"status":  "unsubscribed",
		"message": "You will no longer receive emails from Drivana.",
	})
}
