// internal/transport/http/admin.go
package http

import (
	"errors"
	"log"

	"rental-notify/internal/assets"
	"rental-notify/internal/notify"
	"rental-notify/internal/suppression"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the back-office surface: resending onboarding email,
// inspecting the suppression list and audit trail, uploading brand assets.
type AdminHandler struct {
	notifyService *notify.NotifyService
	suppressions  *suppression.Store
	r2Client      *assets.R2Client // nil when R2 is not configured
}

func NewAdminHandler(notifyService *notify.NotifyService, suppressions *suppression.Store, r2Client *assets.R2Client) *AdminHandler {
	return &AdminHandler{
		notifyService: notifyService,
		suppressions:  suppressions,
		r2Client:      r2Client,
	}
}

// ResendPartnerWelcome handles POST /admin/partners/resend-welcome.
// Idempotent from the operator's side: each call mints a fresh setup link
// and invalidates the previous one.
func (h *AdminHandler) ResendPartnerWelcome(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email is required"})
	}

	log.Printf("📬 [ADMIN] Resend partner welcome requested for %s", req.Email)
	res := h.notifyService.ResendPartnerWelcome(c.Context(), req.Email)

	if res.Outcome == notify.OutcomeFailed {
		switch {
		case errors.Is(res.Err, notify.ErrUserNotFound), errors.Is(res.Err, notify.ErrHostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": res.Err.Error()})
		case errors.Is(res.Err, notify.ErrNotFleetPartner):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": res.Err.Error()})
		}
	}
	return resultResponse(c, res)
}

// ListSuppressions handles GET /admin/suppressions.
func (h *AdminHandler) ListSuppressions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)

	entries, err := h.suppressions.List(c.Context(), limit, offset)
	if err != nil {
		log.Printf("❌ [ADMIN] Failed to list suppressions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list suppressions"})
	}
	return c.JSON(fiber.Map{
		"suppressions": entries,
		"count":        len(entries),
	})
}

// ListAuditLog handles GET /admin/audit.
func (h *AdminHandler) ListAuditLog(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)

	entries, err := h.notifyService.AuditLog(c.Context(), limit, offset)
	if err != nil {
		log.Printf("❌ [ADMIN] Failed to list audit log: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list audit log"})
	}
	return c.JSON(fiber.Map{
		"entries": entries,
		"count":   len(entries),
	})
}

// UploadBrandAsset handles POST /admin/assets (multipart form, field "file").
func (h *AdminHandler) UploadBrandAsset(c *fiber.Ctx) error {
	if h.r2Client == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "asset storage not configured"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "multipart field 'file' is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not open uploaded file"})
	}
	defer file.Close()

	url, err := h.r2Client.UploadBrandAsset(c.Context(), file, fileHeader.Filename)
	if err != nil {
		log.Printf("❌ [ADMIN] Brand asset upload failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "upload failed"})
	}

	log.Printf("✅ [ADMIN] Brand asset uploaded: %s", url)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
