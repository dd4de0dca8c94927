package notify

import (
	"context"
	"errors"
	"testing"

	"rental-notify/internal/email"
	"rental-notify/internal/email/templates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent    []sentMail
	sendErr error
}

type sentMail struct {
	To      string
	Subject string
	HTML    string
	Text    string
	Opts    email.SendOptions
}

func (f *fakeSender) Send(ctx context.Context, to, subject, html, text string, opts email.SendOptions) (*email.SendResult, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, HTML: html, Text: text, Opts: opts})
	return &email.SendResult{Success: true, MessageID: "<test-message-id@smtp.test>"}, nil
}

type fakeSuppressions struct {
	unsubscribed map[string]bool
	lookupErr    error
}

func (f *fakeSuppressions) IsEmailUnsubscribed(ctx context.Context, addr string) (bool, error) {
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	return f.unsubscribed[addr], nil
}

func newTestService(sender *fakeSender, supp *fakeSuppressions) *NotifyService {
	b := templates.DefaultBranding()
	b.BaseURL = "https://test.drivana.com"
	return NewNotifyService(sender, supp, nil, b)
}

func TestSendRefundConfirmationSent(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(sender, &fakeSuppressions{})

	res := svc.SendRefundConfirmation(context.Background(), RefundConfirmationParams{
		GuestName:      "Alice",
		GuestEmail:     "alice@example.com",
		BookingCode:    "BK-100",
		RefundType:     templates.RefundTypeFull,
		RefundAmount:   125.5,
		OriginalAmount: 310,
	})

	assert.Equal(t, OutcomeSent, res.Outcome)
	assert.Equal(t, "<test-message-id@smtp.test>", res.MessageID)
	require.Len(t, sender.sent, 1)

	mail := sender.sent[0]
	assert.Equal(t, "alice@example.com", mail.To)
	assert.Equal(t, "Full Refund Processed - Booking BK-100", mail.Subject)
	// Amounts reach the template as two-decimal strings.
	assert.Contains(t, mail.HTML, "125.50")
	assert.Contains(t, mail.HTML, "310.00")
	// Currency defaults when the caller leaves it empty.
	assert.Contains(t, mail.HTML, "USD")
	assert.Equal(t, "refund-BK-100", mail.Opts.RequestID)
}

func TestSendSkipsUnsubscribedRecipient(t *testing.T) {
	sender := &fakeSender{}
	supp := &fakeSuppressions{unsubscribed: map[string]bool{"alice@example.com": true}}
	svc := newTestService(sender, supp)

	res := svc.SendRefundConfirmation(context.Background(), RefundConfirmationParams{
		GuestName:   "Alice",
		GuestEmail:  "alice@example.com",
		BookingCode: "BK-100",
		RefundType:  templates.RefundTypeFull,
	})

	assert.Equal(t, OutcomeSkipped, res.Outcome)
	assert.Equal(t, ReasonUnsubscribed, res.Reason)
	assert.Empty(t, sender.sent, "a suppressed recipient must never reach the transport")
}

func TestSendFailsClosedOnSuppressionLookupError(t *testing.T) {
	sender := &fakeSender{}
	supp := &fakeSuppressions{lookupErr: errors.New("redis and db both down")}
	svc := newTestService(sender, supp)

	res := svc.SendPartnerReactivated(context.Background(), PartnerReactivatedParams{
		PartnerName:  "Kofi",
		PartnerEmail: "kofi@example.com",
	})

	assert.Equal(t, OutcomeFailed, res.Outcome)
	require.Error(t, res.Err)
	assert.Empty(t, sender.sent, "an unanswered suppression lookup must not produce mail")
}

func TestSendReportsTransportFailure(t *testing.T) {
	sender := &fakeSender{sendErr: errors.New("smtp: connection refused")}
	svc := newTestService(sender, &fakeSuppressions{})

	res := svc.SendPartnerApplicationReceived(context.Background(), PartnerApplicationParams{
		ApplicantName:  "Maria",
		CompanyName:    "Lisbon Rides",
		ApplicantEmail: "maria@example.com",
	})

	assert.Equal(t, OutcomeFailed, res.Outcome)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "connection refused")
}

func TestSendPartnerWelcomeUsesCallerSetupURL(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(sender, &fakeSuppressions{})

	setupURL := "https://test.drivana.com/partner/reset-password?token=rawtoken"
	res := svc.SendPartnerWelcome(context.Background(), PartnerWelcomeParams{
		PartnerName:    "Dana",
		CompanyName:    "Ooms Mobility",
		PartnerEmail:   "dana@example.com",
		SetupURL:       setupURL,
		CommissionRate: 0.12,
	})

	assert.Equal(t, OutcomeSent, res.Outcome)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].HTML, setupURL)
	// 0.12 commission lands in the Platinum tier.
	assert.Contains(t, sender.sent[0].HTML, "Platinum")
	assert.Contains(t, sender.sent[0].HTML, "12.00")
}

func TestSendPartnerReactivatedDefaultsCompanyToName(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(sender, &fakeSuppressions{})

	res := svc.SendPartnerReactivated(context.Background(), PartnerReactivatedParams{
		PartnerName:    "Solo Host",
		PartnerEmail:   "solo@example.com",
		CommissionRate: 0.25,
	})

	assert.Equal(t, OutcomeSent, res.Outcome)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].HTML, "Solo Host")
	assert.Contains(t, sender.sent[0].HTML, "Standard")
}
