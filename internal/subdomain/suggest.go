package subdomain

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

const maxSuggestions = 3

var suggestionTemplates = []func(candidate string) string{
	func(c string) string { return fmt.Sprintf("%s-%d", c, time.Now().Year()) },
	func(c string) string { return "mein-" + c },
	func(c string) string { return c + "-gastro" },
	func(c string) string { return c + "-online" },
	func(c string) string { return c + "-de" },
}

// Suggestions derives up to three alternate subdomains from the candidate
// using fixed templates, in template order. Every returned string passes
// Validate; templates whose result does not are skipped.
func Suggestions(candidate string) []string {
	base := Normalize(candidate)

	suggestions := make([]string, 0, maxSuggestions)
	for _, tmpl := range suggestionTemplates {
		if len(suggestions) == maxSuggestions {
			break
		}

		suggestion, err := Validate(tmpl(base))
		if err != nil {
			continue
		}
		suggestions = append(suggestions, suggestion)
	}

	return suggestions
}

// SlugFromName turns a restaurant name into a subdomain candidate: Han
// runes are transliterated to pinyin, everything else non-alphanumeric
// becomes a hyphen, runs of hyphens collapse and leading/trailing hyphens
// are trimmed. The result is a candidate, not a guaranteed-valid subdomain;
// callers still run Validate.
func SlugFromName(name string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.Is(unicode.Han, r):
			syllables := pinyin.LazyConvert(string(r), nil)
			for _, s := range syllables {
				b.WriteString(s)
			}
		case r == 'ä':
			b.WriteString("ae")
		case r == 'ö':
			b.WriteString("oe")
		case r == 'ü':
			b.WriteString("ue")
		case r == 'ß':
			b.WriteString("ss")
		default:
			b.WriteRune('-')
		}
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	return strings.Trim(slug, "-")
}
