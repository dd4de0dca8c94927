// internal/email/templates/partner_reactivated.go
package templates

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

//go:embed partner_reactivated.html
var partnerReactivatedHTML string

//go:embed partner_reactivated.txt
var partnerReactivatedText string

var (
	partnerReactivatedTmpl     = template.Must(template.New("partner_reactivated").Parse(partnerReactivatedHTML))
	partnerReactivatedTextTmpl = texttemplate.Must(texttemplate.New("partner_reactivated_text").Parse(partnerReactivatedText))
)

type PartnerReactivatedData struct {
	PartnerName       string
	CompanyName       string // user controlled
	PartnerEmail      string
	CommissionPercent string // pre-formatted, e.g. "12.00"
	Tier              string
	ReactivatedDate   string
	DashboardURL      string
	Year              int
	LogoURL           string
}

type partnerReactivatedRenderCtx struct {
	PartnerReactivatedData
	BrandName  string
	TierColor  string
	TierBadge  string
	Footer     template.HTML
	FooterText string
}

func RenderPartnerReactivatedEmail(b Branding, data PartnerReactivatedData) (*Email, error) {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	if data.LogoURL == "" {
		data.LogoURL = b.LogoURL
	}
	if data.DashboardURL == "" {
		data.DashboardURL = b.BaseURL + "/partner/dashboard"
	}

	style := StyleForTier(data.Tier)

	opts := DefaultFooterOptions()
	opts.RecipientEmail = data.PartnerEmail
	footerHTML, footerText := Footer(b, opts)

	ctx := partnerReactivatedRenderCtx{
		PartnerReactivatedData: data,
		BrandName:              b.CompanyName,
		TierColor:              style.Color,
		TierBadge:              style.Badge,
		Footer:                 template.HTML(footerHTML),
		FooterText:             footerText,
	}

	var html strings.Builder
	if err := partnerReactivatedTmpl.Execute(&html, ctx); err != nil {
		return nil, fmt.Errorf("partner reactivated template execution failed: %w", err)
	}
	var text strings.Builder
	if err := partnerReactivatedTextTmpl.Execute(&text, ctx); err != nil {
		return nil, fmt.Errorf("partner reactivated text template execution failed: %w", err)
	}

	subject := fmt.Sprintf("Your %s Partner Account Is Active Again", b.CompanyName)
	return &Email{Subject: subject, HTML: html.String(), Text: text.String()}, nil
}
