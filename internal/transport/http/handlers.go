// internal/transport/http/handlers.go
package http

import (
	"log"

	"rental-notify/internal/email/templates"
	"rental-notify/internal/notify"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	notifyService *notify.NotifyService
}

func NewHandler(notifyService *notify.NotifyService) *Handler {
	return &Handler{notifyService: notifyService}
}

// resultResponse maps a delivery Result onto an HTTP response. Skips are a
// success from the caller's point of view: the request was handled, the
// recipient just doesn't get an email.
func resultResponse(c *fiber.Ctx, res notify.Result) error {
	switch res.Outcome {
	case notify.OutcomeSent:
		return c.JSON(fiber.Map{
			"outcome":    string(res.Outcome),
			"message_id": res.MessageID,
		})
	case notify.OutcomeSkipped:
		return c.JSON(fiber.Map{
			"outcome": string(res.Outcome),
			"reason":  res.Reason,
		})
	default:
		log.Printf("❌ [HTTP] Delivery failed for %s: %v", c.Path(), res.Err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"outcome": string(notify.OutcomeFailed),
			"error":   "delivery failed",
		})
	}
}

// SendRefundConfirmation handles POST /svc/v1/notify/refund-confirmation.
func (h *Handler) SendRefundConfirmation(c *fiber.Ctx) error {
	var p notify.RefundConfirmationParams
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if p.GuestEmail == "" || p.GuestName == "" || p.BookingCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "guest_name, guest_email and booking_code are required"})
	}
	if p.RefundType != templates.RefundTypeFull && p.RefundType != templates.RefundTypePartial {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "refund_type must be full or partial"})
	}

	log.Printf("📬 [EMAIL REQUEST] Type: refund-confirmation | Booking: %s", p.BookingCode)
	return resultResponse(c, h.notifyService.SendRefundConfirmation(c.Context(), p))
}

// SendPartnerWelcome handles POST /svc/v1/notify/partner-welcome.
func (h *Handler) SendPartnerWelcome(c *fiber.Ctx) error {
	var p notify.PartnerWelcomeParams
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if p.PartnerEmail == "" || p.PartnerName == "" || p.SetupURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "partner_name, partner_email and setup_url are required"})
	}

	log.Printf("📬 [EMAIL REQUEST] Type: partner-welcome | Partner: %s", p.PartnerEmail)
	return resultResponse(c, h.notifyService.SendPartnerWelcome(c.Context(), p))
}

// SendPartnerReactivated handles POST /svc/v1/notify/partner-reactivated.
func (h *Handler) SendPartnerReactivated(c *fiber.Ctx) error {
	var p notify.PartnerReactivatedParams
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if p.PartnerEmail == "" || p.PartnerName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "partner_name and partner_email are required"})
	}

	log.Printf("📬 [EMAIL REQUEST] Type: partner-reactivated | Partner: %s", p.PartnerEmail)
	return resultResponse(c, h.notifyService.SendPartnerReactivated(c.Context(), p))
}

// SendPartnerApplicationReceived handles POST /svc/v1/notify/partner-application-received.
func (h *Handler) SendPartnerApplicationReceived(c *fiber.Ctx) error {
	var p notify.PartnerApplicationParams
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if p.ApplicantEmail == "" || p.ApplicantName == "" || p.CompanyName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "applicant_name, company_name and applicant_email are required"})
	}

	log.Printf("📬 [EMAIL REQUEST] Type: partner-application-received | Applicant: %s", p.ApplicantEmail)
	return resultResponse(c, h.notifyService.SendPartnerApplicationReceived(c.Context(), p))
}
