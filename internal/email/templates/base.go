// internal/email/templates/base.go
package templates

import (
	_ "embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"
)

//go:embed footer_full.html
var footerFullHTML string

//go:embed footer_minimal.html
var footerMinimalHTML string

//go:embed footer_bare.html
var footerBareHTML string

var (
	footerFullTmpl    = template.Must(template.New("footer_full").Parse(footerFullHTML))
	footerMinimalTmpl = template.Must(template.New("footer_minimal").Parse(footerMinimalHTML))
	footerBareTmpl    = template.Must(template.New("footer_bare").Parse(footerBareHTML))
)

// Email is the rendered form of one message, ready for the transport.
type Email struct {
	Subject string
	HTML    string
	Text    string
}

// SocialLink is one entry in the footer's social row.
type SocialLink struct {
	Label string
	URL   string
}

// Branding is injected configuration for everything the shared footer and the
// template chrome need. Nothing here is hardcoded into templates so tests and
// white-label environments can swap it without source edits.
type Branding struct {
	CompanyName  string
	Tagline      string
	BaseURL      string
	LogoURL      string
	SupportEmail string
	TermsURL     string
	PrivacyURL   string
	SupportURL   string
	AppStoreURL  string
	SocialLinks  []SocialLink
	Disclaimer   string
}

// DefaultBranding returns the production Drivana brand settings.
func DefaultBranding() Branding {
	base := "https://drivana.com"
	return Branding{
		CompanyName:  "Drivana",
		Tagline:      "Peer-to-peer car rental, everywhere you drive.",
		BaseURL:      base,
		LogoURL:      base + "/icon.png",
		SupportEmail: "support@drivana.com",
		TermsURL:     base + "/terms",
		PrivacyURL:   base + "/privacy",
		SupportURL:   base + "/support",
		AppStoreURL:  "https://apps.apple.com/app/drivana/id000000000",
		SocialLinks: []SocialLink{
			{Label: "Instagram", URL: "https://instagram.com/drivana"},
			{Label: "X", URL: "https://x.com/drivana"},
			{Label: "Facebook", URL: "https://facebook.com/drivana"},
		},
		Disclaimer: "Drivana is a peer-to-peer vehicle rental marketplace. Vehicles are owned " +
			"and listed by independent hosts and fleet partners. Protection plans are provided " +
			"by third-party insurers and are subject to their terms.",
	}
}

// FooterType selects how much chrome the shared footer carries.
type FooterType string

const (
	FooterFull     FooterType = "full"
	FooterMinimal  FooterType = "minimal"
	FooterTextOnly FooterType = "text-only"
)

type FooterOptions struct {
	RecipientEmail     string
	IncludeAppButtons  bool
	IncludeSocialLinks bool
	Type               FooterType
}

// DefaultFooterOptions matches the documented defaults: full footer, app
// buttons and social links on.
func DefaultFooterOptions() FooterOptions {
	return FooterOptions{
		IncludeAppButtons:  true,
		IncludeSocialLinks: true,
		Type:               FooterFull,
	}
}

type footerData struct {
	Branding
	RecipientEmail     string
	UnsubscribeURL     string
	IncludeAppButtons  bool
	IncludeSocialLinks bool
	Year               int
}

// UnsubscribeURL builds the opt-out link with the recipient URL-encoded as a
// query parameter.
func UnsubscribeURL(baseURL, recipientEmail string) string {
	return fmt.Sprintf("%s/unsubscribe?email=%s", baseURL, url.QueryEscape(recipientEmail))
}

func newFooterData(b Branding, opts FooterOptions) footerData {
	d := footerData{
		Branding:           b,
		RecipientEmail:     opts.RecipientEmail,
		IncludeAppButtons:  opts.IncludeAppButtons,
		IncludeSocialLinks: opts.IncludeSocialLinks,
		Year:               time.Now().Year(),
	}
	if opts.RecipientEmail != "" {
		d.UnsubscribeURL = UnsubscribeURL(b.BaseURL, opts.RecipientEmail)
	}
	return d
}

// FooterHTML renders the shared footer fragment. Unrecognized footer types
// fall back to a bare copyright-only block.
func FooterHTML(b Branding, opts FooterOptions) string {
	d := newFooterData(b, opts)

	tmpl := footerBareTmpl
	switch opts.Type {
	case FooterFull, "":
		tmpl = footerFullTmpl
	case FooterMinimal:
		tmpl = footerMinimalTmpl
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, d); err != nil {
		// Footer templates take no user input beyond the escaped recipient
		// address; execution can only fail on a broken embedded template.
		return fmt.Sprintf(`<p style="font-size:12px;color:#9ca3af;">© %d %s. All rights reserved.</p>`, d.Year, b.CompanyName)
	}
	return buf.String()
}

// FooterText renders the plain-text footer variant.
func FooterText(b Branding, opts FooterOptions) string {
	d := newFooterData(b, opts)

	var sb strings.Builder
	sb.WriteString("--\n")

	switch opts.Type {
	case FooterFull, "":
		sb.WriteString(fmt.Sprintf("%s — %s\n", b.CompanyName, b.Tagline))
		if opts.IncludeSocialLinks {
			for _, link := range b.SocialLinks {
				sb.WriteString(fmt.Sprintf("%s: %s\n", link.Label, link.URL))
			}
		}
		if opts.IncludeAppButtons {
			sb.WriteString(fmt.Sprintf("Get the app: %s (Android coming soon)\n", b.AppStoreURL))
		}
		sb.WriteString("\n" + b.Disclaimer + "\n\n")
		sb.WriteString(fmt.Sprintf("Terms: %s | Privacy: %s | Support: %s\n", b.TermsURL, b.PrivacyURL, b.SupportURL))
	case FooterMinimal, FooterTextOnly:
		sb.WriteString(fmt.Sprintf("%s | Terms: %s | Privacy: %s\n", b.CompanyName, b.TermsURL, b.PrivacyURL))
	}

	sb.WriteString(fmt.Sprintf("© %d %s. All rights reserved.\n", d.Year, b.CompanyName))

	known := opts.Type == "" || opts.Type == FooterFull || opts.Type == FooterMinimal || opts.Type == FooterTextOnly
	if d.RecipientEmail != "" && known {
		sb.WriteString(fmt.Sprintf("Sent to %s. Unsubscribe: %s\n", d.RecipientEmail, d.UnsubscribeURL))
	}
	return sb.String()
}

// Footer renders both variants in one call.
func Footer(b Branding, opts FooterOptions) (html string, text string) {
	return FooterHTML(b, opts), FooterText(b, opts)
}
