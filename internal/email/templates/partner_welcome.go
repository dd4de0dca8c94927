// internal/email/templates/partner_welcome.go
package templates

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

//go:embed partner_welcome.html
var partnerWelcomeHTML string

//go:embed partner_welcome.txt
var partnerWelcomeText string

var (
	partnerWelcomeTmpl     = template.Must(template.New("partner_welcome").Parse(partnerWelcomeHTML))
	partnerWelcomeTextTmpl = texttemplate.Must(texttemplate.New("partner_welcome_text").Parse(partnerWelcomeText))
)

// PartnerWelcomeData is the onboarding payload for an approved fleet partner.
// SetupURL carries the raw reset token; CommissionPercent is pre-formatted
// (e.g. "8.00").
type PartnerWelcomeData struct {
	PartnerName       string
	CompanyName       string // partner's business name, user controlled
	PartnerEmail      string
	SetupURL          string
	CommissionPercent string
	Tier              string
	ExpiryHours       int
	Year              int
	LogoURL           string
}

type partnerWelcomeRenderCtx struct {
	PartnerWelcomeData
	BrandName  string
	TierColor  string
	TierBadge  string
	Footer     template.HTML
	FooterText string
}

func RenderPartnerWelcomeEmail(b Branding, data PartnerWelcomeData) (*Email, error) {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	if data.LogoURL == "" {
		data.LogoURL = b.LogoURL
	}
	if data.ExpiryHours == 0 {
		data.ExpiryHours = 24
	}

	style := StyleForTier(data.Tier)

	opts := DefaultFooterOptions()
	opts.RecipientEmail = data.PartnerEmail
	footerHTML, footerText := Footer(b, opts)

	ctx := partnerWelcomeRenderCtx{
		PartnerWelcomeData: data,
		BrandName:          b.CompanyName,
		TierColor:          style.Color,
		TierBadge:          style.Badge,
		Footer:             template.HTML(footerHTML),
		FooterText:         footerText,
	}

	var html strings.Builder
	if err := partnerWelcomeTmpl.Execute(&html, ctx); err != nil {
		return nil, fmt.Errorf("partner welcome template execution failed: %w", err)
	}
	var text strings.Builder
	if err := partnerWelcomeTextTmpl.Execute(&text, ctx); err != nil {
		return nil, fmt.Errorf("partner welcome text template execution failed: %w", err)
	}

	subject := fmt.Sprintf("Welcome to %s - Set Up Your Fleet Partner Account", b.CompanyName)
	return &Email{Subject: subject, HTML: html.String(), Text: text.String()}, nil
}
