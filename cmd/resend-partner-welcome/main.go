// Command resend-partner-welcome re-sends the fleet partner welcome email
// with a fresh account setup link. Intended for operators handling "I never
// got my setup email" tickets.
//
// Usage:
//
//	resend-partner-welcome -email partner@example.com
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"rental-notify/internal/config"
	"rental-notify/internal/email"
	"rental-notify/internal/email/templates"
	"rental-notify/internal/notify"
	"rental-notify/internal/store"
	"rental-notify/internal/suppression"
)

func main() {
	emailFlag := flag.String("email", "", "partner account email address")
	timeoutFlag := flag.Duration("timeout", 30*time.Second, "overall operation timeout")
	flag.Parse()

	if *emailFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: -email is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.Load()
	if err := cfg.ValidateSMTP(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store.InitDB(cfg)
	db := store.GetDB()

	// No redis here: a one-shot tool reads the suppression list straight
	// from the database.
	suppressions := suppression.NewStore(db, nil)
	sender := email.NewSender(cfg)

	branding := templates.DefaultBranding()
	branding.BaseURL = cfg.BaseURL

	svc := notify.NewNotifyService(sender, suppressions, db, branding)

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	res := svc.ResendPartnerWelcome(ctx, *emailFlag)
	switch res.Outcome {
	case notify.OutcomeSent:
		fmt.Printf("✅ Welcome email re-sent to %s (message id %s)\n", *emailFlag, res.MessageID)
	case notify.OutcomeSkipped:
		// The partner record was valid and a fresh token was minted, but
		// the recipient is suppressed or the email type is disabled.
		log.Printf("⚠️ Email not sent to %s: %s", *emailFlag, res.Reason)
	case notify.OutcomeFailed:
		switch {
		case errors.Is(res.Err, notify.ErrUserNotFound),
			errors.Is(res.Err, notify.ErrHostNotFound),
			errors.Is(res.Err, notify.ErrNotFleetPartner):
			fmt.Fprintf(os.Stderr, "Error: %v\n", res.Err)
		default:
			fmt.Fprintf(os.Stderr, "Error: resend failed: %v\n", res.Err)
		}
		os.Exit(1)
	}
}
