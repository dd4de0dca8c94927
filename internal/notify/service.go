// internal/notify/service.go
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"rental-notify/internal/email"
	"rental-notify/internal/email/templates"
	"rental-notify/internal/store"
	"rental-notify/pkg/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Sender is the SMTP transport contract, satisfied by email.Sender.
type Sender interface {
	Send(ctx context.Context, to, subject, html, text string, opts email.SendOptions) (*email.SendResult, error)
}

// SuppressionChecker answers the unsubscribe lookup, satisfied by
// suppression.Store.
type SuppressionChecker interface {
	IsEmailUnsubscribed(ctx context.Context, email string) (bool, error)
}

// NotifyService owns the per-type delivery wrappers. Each wrapper runs the
// same pipeline (setting check, unsubscribe check, render, send, audit) and
// reports a Result instead of propagating transport errors to its caller.
type NotifyService struct {
	sender       Sender
	suppressions SuppressionChecker
	db           *gorm.DB // settings + audit + partner lookups; nil disables both
	branding     templates.Branding
}

func NewNotifyService(sender Sender, suppressions SuppressionChecker, db *gorm.DB, branding templates.Branding) *NotifyService {
	return &NotifyService{
		sender:       sender,
		suppressions: suppressions,
		db:           db,
		branding:     branding,
	}
}

// Branding exposes the injected brand settings (used by transport handlers).
func (s *NotifyService) Branding() templates.Branding {
	return s.branding
}

// deliver runs the shared pipeline for one recipient. The renderer runs only
// after the recipient has cleared the switchboard and suppression checks.
func (s *NotifyService) deliver(ctx context.Context, eventKey, recipient, requestID string, render func() (*templates.Email, error)) Result {
	return s.deliverWithMetadata(ctx, eventKey, recipient, requestID, nil, render)
}

func (s *NotifyService) deliverWithMetadata(ctx context.Context, eventKey, recipient, requestID string, metadata map[string]interface{}, render func() (*templates.Email, error)) Result {
	if requestID == "" {
		requestID = uuid.NewString()
	}

	if s.db != nil {
		enabled, err := store.SettingEnabled(s.db, eventKey)
		if err != nil {
			log.Printf("⚠️ [NOTIFY] Settings lookup failed for %s: %v (treating as enabled)", eventKey, err)
		}
		if !enabled {
			log.Printf("⏭️ [NOTIFY] %s disabled by switchboard, skipping send to %s", eventKey, recipient)
			res := skipped(ReasonDisabled)
			s.audit(ctx, recipient, eventKey, requestID, metadata, res)
			return res
		}
	}

	unsubscribed, err := s.suppressions.IsEmailUnsubscribed(ctx, recipient)
	if err != nil {
		// Fail closed: an unanswered suppression lookup must never turn
		// into mail for someone who opted out.
		log.Printf("❌ [NOTIFY] Suppression lookup failed for %s: %v (email not sent)", recipient, err)
		res := failed(fmt.Errorf("suppression lookup: %w", err))
		s.audit(ctx, recipient, eventKey, requestID, metadata, res)
		return res
	}
	if unsubscribed {
		log.Printf("⏭️ [NOTIFY] %s is unsubscribed, skipping %s", recipient, eventKey)
		res := skipped(ReasonUnsubscribed)
		s.audit(ctx, recipient, eventKey, requestID, metadata, res)
		return res
	}

	rendered, err := render()
	if err != nil {
		log.Printf("❌ [NOTIFY] Render failed for %s (%s): %v", eventKey, recipient, err)
		res := failed(fmt.Errorf("render %s: %w", eventKey, err))
		s.audit(ctx, recipient, eventKey, requestID, metadata, res)
		return res
	}

	sendRes, err := s.sender.Send(ctx, recipient, rendered.Subject, rendered.HTML, rendered.Text, email.SendOptions{RequestID: requestID})
	if err != nil {
		log.Printf("❌ [NOTIFY] Send failed for %s (%s): %v", eventKey, recipient, err)
		res := failed(fmt.Errorf("send %s: %w", eventKey, err))
		s.audit(ctx, recipient, eventKey, requestID, metadata, res)
		return res
	}

	log.Printf("✅ [NOTIFY] %s sent to %s (MessageID: %s, RequestID: %s)", eventKey, recipient, sendRes.MessageID, requestID)
	res := sent(sendRes.MessageID)
	s.audit(ctx, recipient, eventKey, requestID, metadata, res)
	return res
}

// audit writes one best-effort log row per attempt. Failures here are logged,
// never surfaced.
func (s *NotifyService) audit(ctx context.Context, recipient, eventKey, requestID string, metadata map[string]interface{}, res Result) {
	if s.db == nil {
		return
	}

	entry := models.EmailAuditLog{
		Recipient: recipient,
		EventKey:  eventKey,
		Outcome:   string(res.Outcome),
		RequestID: requestID,
	}
	if len(metadata) > 0 {
		entry.Metadata = jsonMetadata(metadata)
	}
	if res.Reason != "" {
		reason := res.Reason
		entry.Reason = &reason
	}
	if res.Err != nil {
		msg := res.Err.Error()
		entry.Reason = &msg
	}
	if res.MessageID != "" {
		id := res.MessageID
		entry.MessageID = &id
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("⚠️ [AUDIT] Failed to record %s/%s: %v", eventKey, recipient, err)
	}
}

// AuditLog returns recent delivery attempts, newest first.
func (s *NotifyService) AuditLog(ctx context.Context, limit, offset int) ([]models.EmailAuditLog, error) {
	if s.db == nil {
		return nil, fmt.Errorf("audit log unavailable: no database")
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var entries []models.EmailAuditLog
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}

// --- Refund confirmation ---

type RefundConfirmationParams struct {
	GuestName      string    `json:"guest_name" validate:"required"`
	GuestEmail     string    `json:"guest_email" validate:"required,email"`
	BookingCode    string    `json:"booking_code" validate:"required"`
	VehicleName    string    `json:"vehicle_name"`
	RefundType     string    `json:"refund_type" validate:"required,oneof=full partial"`
	RefundAmount   float64   `json:"refund_amount"`
	OriginalAmount float64   `json:"original_amount"`
	Currency       string    `json:"currency"`
	Reason         string    `json:"reason"`
	ProcessedAt    time.Time `json:"processed_at"`
}

// SendRefundConfirmation emails a guest that their refund went through.
func (s *NotifyService) SendRefundConfirmation(ctx context.Context, p RefundConfirmationParams) Result {
	if p.Currency == "" {
		p.Currency = "USD"
	}
	processedAt := p.ProcessedAt
	if processedAt.IsZero() {
		processedAt = time.Now()
	}

	requestID := "refund-" + p.BookingCode
	return s.deliver(ctx, store.EventRefundConfirmation, p.GuestEmail, requestID, func() (*templates.Email, error) {
		return templates.RenderRefundConfirmationEmail(s.branding, templates.RefundConfirmationData{
			GuestName:      p.GuestName,
			GuestEmail:     p.GuestEmail,
			BookingCode:    p.BookingCode,
			VehicleName:    p.VehicleName,
			RefundType:     p.RefundType,
			RefundAmount:   fmt.Sprintf("%.2f", p.RefundAmount),
			OriginalAmount: fmt.Sprintf("%.2f", p.OriginalAmount),
			Currency:       p.Currency,
			Reason:         p.Reason,
			ProcessedDate:  processedAt.Format("Jan 2, 2006"),
		})
	})
}

// --- Partner reactivated ---

type PartnerReactivatedParams struct {
	PartnerName    string    `json:"partner_name" validate:"required"`
	CompanyName    string    `json:"company_name"`
	PartnerEmail   string    `json:"partner_email" validate:"required,email"`
	CommissionRate float64   `json:"commission_rate"`
	ReactivatedAt  time.Time `json:"reactivated_at"`
}

// SendPartnerReactivated emails a fleet partner whose account is live again.
func (s *NotifyService) SendPartnerReactivated(ctx context.Context, p PartnerReactivatedParams) Result {
	reactivatedAt := p.ReactivatedAt
	if reactivatedAt.IsZero() {
		reactivatedAt = time.Now()
	}
	company := p.CompanyName
	if company == "" {
		company = p.PartnerName
	}

	return s.deliver(ctx, store.EventPartnerReactivated, p.PartnerEmail, "", func() (*templates.Email, error) {
		return templates.RenderPartnerReactivatedEmail(s.branding, templates.PartnerReactivatedData{
			PartnerName:       p.PartnerName,
			CompanyName:       company,
			PartnerEmail:      p.PartnerEmail,
			CommissionPercent: fmt.Sprintf("%.2f", p.CommissionRate*100),
			Tier:              templates.TierForRate(p.CommissionRate),
			ReactivatedDate:   reactivatedAt.Format("Jan 2, 2006"),
		})
	})
}

// --- Partner application received ---

type PartnerApplicationParams struct {
	ApplicantName  string    `json:"applicant_name" validate:"required"`
	CompanyName    string    `json:"company_name" validate:"required"`
	ApplicantEmail string    `json:"applicant_email" validate:"required,email"`
	FleetSize      int       `json:"fleet_size"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// SendPartnerApplicationReceived acknowledges a new fleet partner application.
func (s *NotifyService) SendPartnerApplicationReceived(ctx context.Context, p PartnerApplicationParams) Result {
	submittedAt := p.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now()
	}

	return s.deliver(ctx, store.EventPartnerApplicationReceived, p.ApplicantEmail, "", func() (*templates.Email, error) {
		return templates.RenderPartnerApplicationReceivedEmail(s.branding, templates.PartnerApplicationReceivedData{
			ApplicantName:  p.ApplicantName,
			CompanyName:    p.CompanyName,
			ApplicantEmail: p.ApplicantEmail,
			FleetSize:      fmt.Sprintf("%d", p.FleetSize),
			SubmittedDate:  submittedAt.Format("Jan 2, 2006"),
		})
	})
}

// --- Partner welcome (direct payload variant) ---

type PartnerWelcomeParams struct {
	PartnerName    string  `json:"partner_name" validate:"required"`
	CompanyName    string  `json:"company_name"`
	PartnerEmail   string  `json:"partner_email" validate:"required,email"`
	SetupURL       string  `json:"setup_url" validate:"required,url"`
	CommissionRate float64 `json:"commission_rate"`
}

// SendPartnerWelcome emails the onboarding setup link. The caller supplies
// the link; minting a fresh token is the resend flow's job (see
// ResendPartnerWelcome).
func (s *NotifyService) SendPartnerWelcome(ctx context.Context, p PartnerWelcomeParams) Result {
	company := p.CompanyName
	if company == "" {
		company = p.PartnerName
	}

	return s.deliver(ctx, store.EventPartnerWelcome, p.PartnerEmail, "", func() (*templates.Email, error) {
		return templates.RenderPartnerWelcomeEmail(s.branding, templates.PartnerWelcomeData{
			PartnerName:       p.PartnerName,
			CompanyName:       company,
			PartnerEmail:      p.PartnerEmail,
			SetupURL:          p.SetupURL,
			CommissionPercent: fmt.Sprintf("%.2f", p.CommissionRate*100),
			Tier:              templates.TierForRate(p.CommissionRate),
		})
	})
}

// jsonMetadata marshals wrapper metadata for the audit log, tolerating
// marshal failures.
func jsonMetadata(v interface{}) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("⚠️ jsonMetadata marshal error: %v", err)
		return datatypes.JSON([]byte("{}"))
	}
	return b
}
