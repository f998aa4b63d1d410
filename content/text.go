package content

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const WordsPerMinute = 200

// Applied in order; code has to go before links so bracketed code is not read as a link.
var markupPatterns = []*regexp.Regexp{
	regexp.MustCompile("(?s)```.*?```"),
	regexp.MustCompile("`[^`]*`"),
	regexp.MustCompile(`!\[.*?\]\(.*?\)`),
	regexp.MustCompile(`\[.*?\]\(.*?\)`),
	regexp.MustCompile(`#+ `),
	regexp.MustCompile(`[*_~]`),
	regexp.MustCompile(`<[^>]*>`),
}

var whitespace = regexp.MustCompile(`\s+`)

// StripMarkup removes markdown syntax and HTML tags and collapses whitespace.
func StripMarkup(s string) string {
	for _, re := range markupPatterns {
		s = re.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

func WordCount(s string) int {
	return len(strings.Fields(StripMarkup(s)))
}

// ReadingTime is the estimated reading time in whole minutes, never less than one.
func ReadingTime(s string) int {
	minutes := int(math.Ceil(float64(WordCount(s)) / WordsPerMinute))
	return max(1, minutes)
}

// Excerpt returns the stripped text cut at the last word boundary within limit runes.
// Text without a space inside the limit is cut hard.
func Excerpt(s string, limit int) string {
	clean := []rune(StripMarkup(s))
	if len(clean) <= limit {
		return string(clean)
	}
	truncated := string(clean[:max(0, limit)])
	if i := strings.LastIndex(truncated, " "); i > 0 {
		return truncated[:i] + "..."
	}
	return truncated + "..."
}

var (
	slugInvalid  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugHyphens  = regexp.MustCompile(`-+`)
	accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slug turns a title into a lowercase, hyphen separated path segment. Accents are folded first.
func Slug(title string) string {
	folded, _, err := transform.String(accentFolder, strings.ToLower(title))
	if err != nil {
		folded = strings.ToLower(title)
	}
	s := slugInvalid.ReplaceAllString(folded, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SplitList normalizes a list field that arrives either as a comma delimited string
// or as a JSON array. Items are trimmed, empty items and repeats dropped; first occurrences keep their order.
func SplitList(v any) []string {
	var raw []string
	switch t := v.(type) {
	case nil:
	case string:
		raw = strings.Split(t, ",")
	case []string:
		raw = t
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return lo.Uniq(out)
}
