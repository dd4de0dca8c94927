// internal/suppression/store.go
package suppression

import (
	"context"
	"log"
	"strings"
	"time"

	"rental-notify/pkg/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	cacheKeyPrefix = "suppression:"
	cacheTTL       = 15 * time.Minute
)

// Store answers "may we email this address?" against the suppression table,
// with a Redis look-aside cache in front. The cache is advisory: Redis errors
// fall through to the database, database errors surface to the caller so the
// delivery wrapper can fail closed.
type Store struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewStore wires a suppression store. rdb may be nil to run without a cache.
func NewStore(db *gorm.DB, rdb *redis.Client) *Store {
	return &Store{db: db, rdb: rdb}
}

// Normalize lowercases and trims an address so lookups and writes agree on
// one key per mailbox.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsEmailUnsubscribed reports whether the recipient has opted out.
func (s *Store) IsEmailUnsubscribed(ctx context.Context, email string) (bool, error) {
	addr := Normalize(email)

	if s.rdb != nil {
		val, err := s.rdb.Get(ctx, cacheKeyPrefix+addr).Result()
		switch {
		case err == nil:
			return val == "1", nil
		case err != redis.Nil:
			log.Printf("⚠️ [SUPPRESSION] Cache read failed for %s: %v (falling through to DB)", addr, err)
		}
	}

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.EmailSuppression{}).
		Where("email = ?", addr).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	suppressed := count > 0
	s.cache(ctx, addr, suppressed)
	return suppressed, nil
}

// Suppress records an opt-out. Idempotent: re-suppressing an address updates
// nothing but the cache.
func (s *Store) Suppress(ctx context.Context, email, source, reason string) error {
	addr := Normalize(email)

	entry := models.EmailSuppression{Email: addr, Source: source}
	if reason != "" {
		entry.Reason = &reason
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(&entry).Error
	if err != nil {
		return err
	}

	s.cache(ctx, addr, true)
	log.Printf("🚫 [SUPPRESSION] Recorded opt-out for %s (source: %s)", addr, source)
	return nil
}

// List returns suppression entries, newest first.
func (s *Store) List(ctx context.Context, limit, offset int) ([]models.EmailSuppression, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var entries []models.EmailSuppression
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}

func (s *Store) cache(ctx context.Context, addr string, suppressed bool) {
	if s.rdb == nil {
		return
	}
	val := "0"
	if suppressed {
		val = "1"
	}
	if err := s.rdb.Set(ctx, cacheKeyPrefix+addr, val, cacheTTL).Err(); err != nil {
		log.Printf("⚠️ [SUPPRESSION] Cache write failed for %s: %v", addr, err)
	}
}
