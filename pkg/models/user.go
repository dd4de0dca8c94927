// pkg/models/user.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// User mirrors the marketplace account record this service reads and, for the
// partner onboarding flow, writes reset-token fields on.
type User struct {
	ID               string         `json:"id" gorm:"primaryKey;type:varchar(36)"` // UUID as string
	Email            string         `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Name             string         `json:"name" gorm:"type:varchar(150);not null"`
	PasswordHash     string         `json:"-" gorm:"type:varchar(255)"`
	ResetToken       *string        `json:"-" gorm:"type:varchar(64);index"` // SHA-256 hex, never the raw token
	ResetTokenExpiry *time.Time     `json:"-"`
	ResetTokenUsed   bool           `json:"-" gorm:"not null;default:false"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// HostType discriminates individual peer hosts from fleet partner businesses.
const (
	HostTypePeer         = "PEER"
	HostTypeFleetPartner = "FLEET_PARTNER"
)

// RentalHost is the host/partner record owned by the marketplace core.
type RentalHost struct {
	ID                    string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID                string    `json:"user_id" gorm:"type:varchar(36);not null;index"`
	HostType              string    `json:"host_type" gorm:"type:varchar(30);not null;default:'PEER'"`
	ApprovalStatus        string    `json:"approval_status" gorm:"type:varchar(30);not null;default:'PENDING'"`
	Active                bool      `json:"active" gorm:"not null;default:true"`
	PartnerCompanyName    *string   `json:"partner_company_name,omitempty" gorm:"type:varchar(200)"`
	Name                  string    `json:"name" gorm:"type:varchar(150);not null"`
	Email                 string    `json:"email" gorm:"type:varchar(255);not null;index"`
	CurrentCommissionRate float64   `json:"current_commission_rate" gorm:"not null;default:0.30"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// TableName specifies the table name for RentalHost
func (RentalHost) TableName() string {
	return "rental_hosts"
}
