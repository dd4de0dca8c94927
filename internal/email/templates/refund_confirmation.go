// internal/email/templates/refund_confirmation.go
package templates

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

//go:embed refund_confirmation.html
var refundConfirmationHTML string

//go:embed refund_confirmation.txt
var refundConfirmationText string

var (
	refundConfirmationTmpl     = template.Must(template.New("refund_confirmation").Parse(refundConfirmationHTML))
	refundConfirmationTextTmpl = texttemplate.Must(texttemplate.New("refund_confirmation_text").Parse(refundConfirmationText))
)

// Refund type discriminants.
const (
	RefundTypeFull    = "full"
	RefundTypePartial = "partial"
)

// RefundConfirmationData carries one processed refund. Amount fields are
// pre-formatted two-decimal strings; renderers never touch raw floats.
type RefundConfirmationData struct {
	GuestName      string
	GuestEmail     string
	BookingCode    string
	VehicleName    string
	RefundType     string // "full" or "partial"
	RefundAmount   string // e.g. "125.00"
	OriginalAmount string // booking total, e.g. "310.00"
	Currency       string // e.g. "USD"
	Reason         string // free text, user controlled
	ProcessedDate  string
	Year           int
	LogoURL        string
}

type refundRenderCtx struct {
	RefundConfirmationData
	CompanyName string
	AccentColor string
	Heading     string
	Footer      template.HTML
	FooterText  string
}

func RenderRefundConfirmationEmail(b Branding, data RefundConfirmationData) (*Email, error) {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	if data.LogoURL == "" {
		data.LogoURL = b.LogoURL
	}

	subject := fmt.Sprintf("Partial Refund Processed - Booking %s", data.BookingCode)
	accent := "#f59e0b"
	heading := "Partial refund processed"
	if data.RefundType == RefundTypeFull {
		subject = fmt.Sprintf("Full Refund Processed - Booking %s", data.BookingCode)
		accent = "#16a34a"
		heading = "Full refund processed"
	}

	opts := DefaultFooterOptions()
	opts.RecipientEmail = data.GuestEmail
	footerHTML, footerText := Footer(b, opts)

	ctx := refundRenderCtx{
		RefundConfirmationData: data,
		CompanyName:            b.CompanyName,
		AccentColor:            accent,
		Heading:                heading,
		Footer:                 template.HTML(footerHTML),
		FooterText:             footerText,
	}

	var html strings.Builder
	if err := refundConfirmationTmpl.Execute(&html, ctx); err != nil {
		return nil, fmt.Errorf("refund confirmation template execution failed: %w", err)
	}
	var text strings.Builder
	if err := refundConfirmationTextTmpl.Execute(&text, ctx); err != nil {
		return nil, fmt.Errorf("refund confirmation text template execution failed: %w", err)
	}

	return &Email{Subject: subject, HTML: html.String(), Text: text.String()}, nil
}
