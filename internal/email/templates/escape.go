package templates

import "html/template"

// Escape converts the five HTML-significant characters (& < > " ') to
// entities. Body templates already escape interpolations contextually; this
// helper is for fragments composed outside a template (subject prefixes,
// pre-built HTML snippets) that carry user-controlled text.
func Escape(input string) string {
	return template.HTMLEscapeString(input)
}
