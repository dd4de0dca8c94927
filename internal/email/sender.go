// internal/email/sender.go
package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"time"

	"rental-notify/internal/config"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// SendOptions carries per-message metadata the transport stamps onto the
// outgoing mail for log correlation.
type SendOptions struct {
	RequestID string // correlation ID, e.g. derived from a booking code
	ReplyTo   string // overrides the configured default when set
}

// SendResult reports a successful handoff to the SMTP server.
type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id"`
}

type Sender struct {
	cfg *config.Config
}

func NewSender(cfg *config.Config) *Sender {
	return &Sender{cfg: cfg}
}

// Send delivers a multipart text+HTML message. Retries with exponential
// backoff: 1s, 2s, 4s → max 3 attempts.
func (s *Sender) Send(ctx context.Context, to, subject, html, text string, opts SendOptions) (*SendResult, error) {
	log.Printf("📧 [SEND] To: %s | Subject: %s | RequestID: %s", to, subject, opts.RequestID)

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.cfg.SMTPHost)

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", s.cfg.EmailFromName, s.cfg.EmailFrom))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetHeader("Message-ID", messageID)

	replyTo := opts.ReplyTo
	if replyTo == "" {
		replyTo = s.cfg.EmailReplyTo
	}
	if replyTo != "" {
		m.SetHeader("Reply-To", replyTo)
	}
	if opts.RequestID != "" {
		m.SetHeader("X-Request-ID", opts.RequestID)
	}

	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	dialer := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass)
	if !s.cfg.EmailRejectUnauthorized {
		// EMAIL_REJECT_UNAUTHORIZED=false: accept self-signed relay certs
		dialer.TLSConfig = &tls.Config{ServerName: s.cfg.SMTPHost, InsecureSkipVerify: true}
	}

	for attempt := 0; attempt < 3; attempt++ {
		if err := dialer.DialAndSend(m); err != nil {
			delay := time.Duration(1<<attempt) * time.Second // 1s, 2s, 4s
			log.Printf("❌ [ATTEMPT %d] Failed to send email to %s: %v → retrying in %v", attempt+1, to, err, delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("email send cancelled: %w", ctx.Err())
			}
			continue
		}
		log.Printf("✅ [SUCCESS] Email sent to %s (MessageID: %s)", to, messageID)
		return &SendResult{Success: true, MessageID: messageID}, nil
	}

	log.Printf("💥 [FAILED] All retries exhausted for %s", to)
	return nil, fmt.Errorf("failed to send email to %s after 3 attempts", to)
}
