// internal/email/templates/partner_application_received.go
package templates

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

//go:embed partner_application_received.html
var partnerApplicationHTML string

//go:embed partner_application_received.txt
var partnerApplicationText string

var (
	partnerApplicationTmpl     = template.Must(template.New("partner_application_received").Parse(partnerApplicationHTML))
	partnerApplicationTextTmpl = texttemplate.Must(texttemplate.New("partner_application_received_text").Parse(partnerApplicationText))
)

type PartnerApplicationReceivedData struct {
	ApplicantName  string
	CompanyName    string // user controlled
	ApplicantEmail string
	FleetSize      string
	SubmittedDate  string
	ReviewDays     int
	Year           int
	LogoURL        string
}

type partnerApplicationRenderCtx struct {
	PartnerApplicationReceivedData
	BrandName  string
	Footer     template.HTML
	FooterText string
}

func RenderPartnerApplicationReceivedEmail(b Branding, data PartnerApplicationReceivedData) (*Email, error) {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	if data.LogoURL == "" {
		data.LogoURL = b.LogoURL
	}
	if data.ReviewDays == 0 {
		data.ReviewDays = 5
	}

	opts := DefaultFooterOptions()
	opts.RecipientEmail = data.ApplicantEmail
	footerHTML, footerText := Footer(b, opts)

	ctx := partnerApplicationRenderCtx{
		PartnerApplicationReceivedData: data,
		BrandName:                      b.CompanyName,
		Footer:                         template.HTML(footerHTML),
		FooterText:                     footerText,
	}

	var html strings.Builder
	if err := partnerApplicationTmpl.Execute(&html, ctx); err != nil {
		return nil, fmt.Errorf("partner application template execution failed: %w", err)
	}
	var text strings.Builder
	if err := partnerApplicationTextTmpl.Execute(&text, ctx); err != nil {
		return nil, fmt.Errorf("partner application text template execution failed: %w", err)
	}

	subject := fmt.Sprintf("We Received Your %s Partner Application", b.CompanyName)
	return &Email{Subject: subject, HTML: html.String(), Text: text.String()}, nil
}
