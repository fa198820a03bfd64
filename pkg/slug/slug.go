// Package slug builds URL-safe identifiers for catalog entities.
package slug

import (
	"fmt"
	"strings"
)

// Make converts free text to a URL-safe slug: lowercase, alphanumeric runs
// kept, everything else collapsed to single hyphens, edges trimmed.
func Make(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	pendingHyphen := false
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r + ('a' - 'A'))
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}

// Join slugifies the hyphen-join of the given parts, skipping empties.
func Join(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return Make(strings.Join(kept, "-"))
}

// WithSuffix returns the candidate for the given attempt: the base itself for
// attempt 1, then "base-2", "base-3", and so on.
func WithSuffix(base string, attempt int) string {
	if attempt <= 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt)
}

// SubjectContext carries the hierarchy levels that could be resolved when a
// subject slug is built. Missing levels degrade the slug to fewer components
// instead of failing the save.
type SubjectContext struct {
	ProgramShortName string
	TermNumber       int
	HasTermNumber    bool
}

// ForSubject derives the base slug for a subject from its resolved context,
// preferring code over name, with a literal fallback so the result is never
// empty.
func ForSubject(ctx SubjectContext, code, name string) string {
	parts := make([]string, 0, 3)
	if ctx.ProgramShortName != "" {
		parts = append(parts, ctx.ProgramShortName)
	}
	if ctx.HasTermNumber {
		parts = append(parts, fmt.Sprintf("%d", ctx.TermNumber))
	}
	if code != "" {
		parts = append(parts, code)
	} else if name != "" {
		parts = append(parts, name)
	}

	base := Join(parts...)
	if base == "" {
		base = Make(code)
	}
	if base == "" {
		base = Make(name)
	}
	if base == "" {
		base = "subject"
	}
	return base
}
