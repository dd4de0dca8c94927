package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Delivery outcomes recorded in the audit log. Mirrors notify.Outcome but
// stored as plain strings so the log survives enum renames.
const (
	AuditOutcomeSent    = "sent"
	AuditOutcomeSkipped = "skipped"
	AuditOutcomeFailed  = "failed"
)

// EmailAuditLog is one row per delivery attempt (including skips), written
// best-effort by the delivery wrappers and the admin resend endpoint.
type EmailAuditLog struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Recipient string         `json:"recipient" gorm:"type:varchar(255);not null;index"`
	EventKey  string         `json:"event_key" gorm:"type:varchar(60);not null;index"`
	Outcome   string         `json:"outcome" gorm:"type:varchar(20);not null"`
	Reason    *string        `json:"reason,omitempty" gorm:"type:text"`
	RequestID string         `json:"request_id" gorm:"type:varchar(100);index"`
	MessageID *string        `json:"message_id,omitempty" gorm:"type:varchar(255)"`
	Metadata  datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at"`
}

// TableName specifies the table name for EmailAuditLog
func (EmailAuditLog) TableName() string {
	return "email_audit_logs"
}

// SystemEmailSetting is the per-event-key switchboard: seeded at migration,
// editable by admins, consulted by the delivery wrappers before any send.
type SystemEmailSetting struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	EventKey    string    `json:"event_key" gorm:"uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Enabled     bool      `json:"enabled" gorm:"not null;default:true"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for SystemEmailSetting
func (SystemEmailSetting) TableName() string {
	return "system_email_settings"
}
