package models

import (
	"time"
)

// Suppression sources — where an unsubscribe/suppression entry came from.
const (
	SuppressionSourceUnsubscribeLink = "unsubscribe_link"
	SuppressionSourceComplianceSync  = "compliance_sync"
	SuppressionSourceAdmin           = "admin"
)

// EmailSuppression records a recipient who must never receive marketing or
// transactional-courtesy email again. Keyed by normalized (lowercased,
// trimmed) address.
type EmailSuppression struct {
	Email     string    `json:"email" gorm:"primaryKey;type:varchar(255)"`
	Source    string    `json:"source" gorm:"type:varchar(40);not null;default:'unsubscribe_link'"`
	Reason    *string   `json:"reason,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for EmailSuppression
func (EmailSuppression) TableName() string {
	return "email_suppressions"
}
