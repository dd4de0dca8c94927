// internal/sync/suppression_sync.go
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"rental-notify/internal/suppression"
	"rental-notify/pkg/models"

	"gorm.io/gorm"
)

const lastSyncKey = "last_suppression_sync_time"

// UnsubscribeEvent is one opt-out record from the compliance service.
type UnsubscribeEvent struct {
	Email     string    `json:"email"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SuppressionSyncService pulls unsubscribe events from the compliance
// service and folds them into the local suppression list, so opt-outs made
// on other surfaces (support tickets, CAN-SPAM mailbox) still block sends
// here.
type SuppressionSyncService struct {
	db            *gorm.DB
	suppressions  *suppression.Store
	complianceURL string
	serviceToken  string
}

func NewSuppressionSyncService(db *gorm.DB, suppressions *suppression.Store, complianceURL, serviceToken string) *SuppressionSyncService {
	return &SuppressionSyncService{
		db:            db,
		suppressions:  suppressions,
		complianceURL: complianceURL,
		serviceToken:  serviceToken,
	}
}

// StartScheduler runs periodic incremental syncs until ctx is cancelled.
// Call in a goroutine.
func (s *SuppressionSyncService) StartScheduler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("🛑 [SYNC] Suppression sync scheduler stopped")
			return
		case <-ticker.C:
			since, err := s.lastSyncTime()
			if err != nil {
				log.Printf("⚠️ [SYNC] Could not read last sync time, doing full sync: %v", err)
				since = time.Time{}
			}
			if err := s.SyncSince(ctx, since); err != nil {
				log.Printf("❌ [SYNC] Suppression sync failed: %v", err)
			}
		}
	}
}

// SyncSince fetches unsubscribe events recorded since the given time and
// upserts them into the suppression list. A zero time means a full sync.
func (s *SuppressionSyncService) SyncSince(ctx context.Context, since time.Time) error {
	events, err := s.fetchUnsubscribes(ctx, since)
	if err != nil {
		return fmt.Errorf("fetch unsubscribes: %w", err)
	}
	log.Printf("📥 [SYNC] Retrieved %d unsubscribe events from compliance service", len(events))

	synced := 0
	for _, ev := range events {
		if ev.Email == "" {
			continue
		}
		reason := ""
		if ev.Reason != nil {
			reason = *ev.Reason
		}
		if err := s.suppressions.Suppress(ctx, ev.Email, models.SuppressionSourceComplianceSync, reason); err != nil {
			log.Printf("⚠️ [SYNC] Failed to suppress %s: %v", ev.Email, err)
			continue
		}
		synced++
	}
	log.Printf("✅ [SYNC] Suppression sync completed (%d/%d applied)", synced, len(events))

	if err := s.updateLastSyncTime(ctx, time.Now()); err != nil {
		log.Printf("⚠️ [SYNC] Failed to update last sync time: %v", err)
	}
	return nil
}

func (s *SuppressionSyncService) fetchUnsubscribes(ctx context.Context, since time.Time) ([]UnsubscribeEvent, error) {
	if since.IsZero() {
		// The compliance API requires the since parameter, so a full sync
		// uses an epoch well before the product launched.
		since = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	url := fmt.Sprintf("%s/api/v1/compliance/unsubscribes?since=%s",
		s.complianceURL, since.UTC().Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Service-Token", s.serviceToken)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("compliance service returned status %d, body: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Unsubscribes []UnsubscribeEvent `json:"unsubscribes"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("unmarshal compliance response: %w", err)
	}
	return response.Unsubscribes, nil
}

func (s *SuppressionSyncService) lastSyncTime() (time.Time, error) {
	var cfg models.SyncConfig
	result := s.db.Where("key = ?", lastSyncKey).First(&cfg)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return time.Time{}, nil
		}
		return time.Time{}, result.Error
	}
	parsed, err := time.Parse(time.RFC3339, cfg.Value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse sync time: %w", err)
	}
	return parsed, nil
}

func (s *SuppressionSyncService) updateLastSyncTime(ctx context.Context, syncTime time.Time) error {
	value := syncTime.UTC().Format(time.RFC3339)

	var existing models.SyncConfig
	result := s.db.WithContext(ctx).Where("key = ?", lastSyncKey).First(&existing)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return s.db.WithContext(ctx).Create(&models.SyncConfig{Key: lastSyncKey, Value: value}).Error
		}
		return result.Error
	}
	return s.db.WithContext(ctx).Model(&existing).Update("value", value).Error
}
