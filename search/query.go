package search

import (
	"strconv"
	"strings"
	"unicode"
)

const DefaultLimit = 10

// Query is a parsed search request. Flags are pulled out of the raw input,
// everything else is free text.
// Flag values holding spaces are double-quoted.
// Example: recruitment video --tag Gen-Z --category "Recruitment Insights" --limit 5
type Query struct {
	Raw      string
	Terms    string
	Tag      string
	Category string
	Limit    int
}

func ParseQuery(input string) Query {
	query := Query{Raw: input, Limit: DefaultLimit}

	parts := splitQuoted(input)
	var terms []string
	for i := 0; i < len(parts); i++ {
		part := parts[i]
		if strings.HasPrefix(part, "--") && i+1 < len(parts) {
			value := parts[i+1]
			switch strings.TrimPrefix(part, "--") {
			case "tag":
				query.Tag = value
			case "category":
				query.Category = value
			case "limit":
				if n, err := strconv.Atoi(value); err == nil && n > 0 {
					query.Limit = n
				}
			}
			i++
			continue
		}
		terms = append(terms, part)
	}
	query.Terms = strings.Join(terms, " ")
	return query
}

// splitQuoted splits on whitespace, keeping double-quoted runs together.
// An unterminated quote runs to the end of the input.
func splitQuoted(input string) []string {
	var parts []string
	var current strings.Builder
	quoted, started := false, false
	for _, r := range input {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case unicode.IsSpace(r) && !quoted:
			if started {
				parts = append(parts, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if started {
		parts = append(parts, current.String())
	}
	return parts
}

// IsEmpty is true when the query neither has terms nor filters.
func (q Query) IsEmpty() bool {
	return q.Terms == "" && q.Tag == "" && q.Category == ""
}
