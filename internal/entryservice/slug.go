package entryservice

import (
	"regexp"
	"strings"
)

var (
	slugSeparatorRX = regexp.MustCompile(`[^a-z0-9_]+`)
	SlugRX          = regexp.MustCompile(`^[a-z0-9_]+(-[a-z0-9_]+)*$`)
)

// GenerateSlug derives a URL-safe identifier from a title: lowercase, every
// run of characters outside [a-z0-9_] collapsed to a single "-", leading and
// trailing separators trimmed. Deterministic and pure; a collision with an
// existing entry surfaces as ErrDuplicateSlug from the store's unique
// constraint.
func GenerateSlug(title string) string {
	slug := slugSeparatorRX.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
