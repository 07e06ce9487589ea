package generator

import (
	"context"
	"strings"
)

// Request carries the business fields the generator writes from.
type Request struct {
	Name     string
	Category string
	City     string
	Service  string
}

// Provider produces one short review text, or an error the adapter turns
// into fallback text.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Sanitize filters generated text to letters, digits, period, comma,
// apostrophe and space. The generator output is untrusted; this strips
// control characters and markup no matter which branch produced the text.
func Sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	lastSpace := false
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == ',', r == '\'':
			b.WriteRune(r)
			lastSpace = false
		case r == ' ', r == '\n', r == '\t':
			if !lastSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// FallbackText renders the static fallback review from the template's
// {name}, {city} and {category} placeholders.
func FallbackText(template string, req Request) string {
	r := strings.NewReplacer(
		"{name}", req.Name,
		"{city}", req.City,
		"{category}", req.Category,
		"{service}", req.Service,
	)
	return r.Replace(template)
}
