// internal/notify/partner_onboarding.go
package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"rental-notify/internal/email/templates"
	"rental-notify/internal/store"
	"rental-notify/internal/token"
	"rental-notify/pkg/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound    = errors.New("no user with that email")
	ErrHostNotFound    = errors.New("user has no rental host record")
	ErrNotFleetPartner = errors.New("host is not a fleet partner")
)

// ResendPartnerWelcome re-sends the fleet partner welcome email with a
// freshly minted setup link. The previous reset token is overwritten, so any
// older setup link stops working. The token row is persisted before the send
// is attempted; a failed send leaves a valid token behind, which the next
// resend replaces.
func (s *NotifyService) ResendPartnerWelcome(ctx context.Context, partnerEmail string) Result {
	if s.db == nil {
		return failed(fmt.Errorf("resend unavailable: no database"))
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", partnerEmail).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return failed(ErrUserNotFound)
	}
	if err != nil {
		return failed(fmt.Errorf("user lookup: %w", err))
	}

	var host models.RentalHost
	err = s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&host).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return failed(ErrHostNotFound)
	}
	if err != nil {
		return failed(fmt.Errorf("host lookup: %w", err))
	}
	if host.HostType != models.HostTypeFleetPartner {
		return failed(ErrNotFleetPartner)
	}

	reset, err := token.NewResetToken(time.Now())
	if err != nil {
		return failed(fmt.Errorf("mint setup token: %w", err))
	}
	err = s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"reset_token":        reset.Hashed,
			"reset_token_expiry": reset.ExpiresAt,
			"reset_token_used":   false,
		}).Error
	if err != nil {
		return failed(fmt.Errorf("persist setup token: %w", err))
	}
	log.Printf("🔑 [RESEND] Minted setup token for %s (host %s)", user.Email, host.ID)

	company := user.Name
	if host.PartnerCompanyName != nil && *host.PartnerCompanyName != "" {
		company = *host.PartnerCompanyName
	}
	setupURL := token.ResetURL(s.branding.BaseURL, reset.Raw)

	metadata := map[string]interface{}{
		"host_id": host.ID,
		"company": company,
		"resend":  true,
	}
	return s.deliverWithMetadata(ctx, store.EventPartnerWelcome, user.Email, "", metadata, func() (*templates.Email, error) {
		return templates.RenderPartnerWelcomeEmail(s.branding, templates.PartnerWelcomeData{
			PartnerName:       user.Name,
			CompanyName:       company,
			PartnerEmail:      user.Email,
			SetupURL:          setupURL,
			CommissionPercent: fmt.Sprintf("%.2f", host.CurrentCommissionRate*100),
			Tier:              templates.TierForRate(host.CurrentCommissionRate),
		})
	})
}
