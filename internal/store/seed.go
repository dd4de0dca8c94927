// internal/store/seed.go
package store

import (
	"fmt"
	"log"

	"rental-notify/pkg/models"

	"gorm.io/gorm"
)

// Event keys for every email type this service sends.
const (
	EventRefundConfirmation         = "refund.confirmation"
	EventPartnerWelcome             = "partner.welcome"
	EventPartnerReactivated         = "partner.reactivated"
	EventPartnerApplicationReceived = "partner.application_received"
)

// seedSystemEmailSettings populates the switchboard with one row per email
// type. Existing rows are left alone so admin toggles survive restarts.
func seedSystemEmailSettings(db *gorm.DB) error {
	settings := []models.SystemEmailSetting{
		{
			EventKey:    EventRefundConfirmation,
			Name:        "Refund Confirmation",
			Enabled:     true,
			Description: "Sent to a guest when a full or partial refund has been processed for a booking.",
		},
		{
			EventKey:    EventPartnerWelcome,
			Name:        "Fleet Partner Welcome",
			Enabled:     true,
			Description: "Onboarding email with the account setup link, sent when a fleet partner is approved.",
		},
		{
			EventKey:    EventPartnerReactivated,
			Name:        "Fleet Partner Reactivated",
			Enabled:     true,
			Description: "Sent when a previously deactivated fleet partner account is switched back on.",
		},
		{
			EventKey:    EventPartnerApplicationReceived,
			Name:        "Partner Application Received",
			Enabled:     true,
			Description: "Acknowledgement sent when a fleet partner application is submitted.",
		},
	}

	for _, s := range settings {
		var count int64
		db.Model(&models.SystemEmailSetting{}).
			Where("event_key = ?", s.EventKey).
			Count(&count)

		if count == 0 {
			if err := db.Create(&s).Error; err != nil {
				return fmt.Errorf("failed to seed email setting %s: %w", s.EventKey, err)
			}
			log.Printf("✅ Seeded email setting: %s", s.EventKey)
		}
	}
	return nil
}

// SettingEnabled reports whether the given email type is switched on. Unknown
// keys default to enabled so a missing seed row never silently drops mail.
func SettingEnabled(db *gorm.DB, eventKey string) (bool, error) {
	var setting models.SystemEmailSetting
	err := db.Where("event_key = ?", eventKey).First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		return true, nil
	}
	if err != nil {
		return true, err
	}
	return setting.Enabled, nil
}
