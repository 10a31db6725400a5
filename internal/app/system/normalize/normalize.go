// Package normalize canonicalizes user-supplied fields before storage so
// uniqueness checks and duplicate detection compare like with like.
package normalize

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Email lowercases and trims an address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name and strips any markup.
func Name(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// Title trims a catalog title and strips any markup. Case is preserved.
func Title(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// Director trims and case-folds a director name so the
// (title, year, director) duplicate check is case-insensitive.
func Director(s string) string {
	return text.Fold(strings.TrimSpace(strict.Sanitize(s)))
}

// FreeText strips markup from a free-form field (synopsis, address) and
// trims surrounding whitespace.
func FreeText(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
