package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"html tags", "<p>Hallo <strong>wereld</strong></p>", "Hallo wereld"},
		{"code block", "voor ```go\nfmt.Println()\n``` na", "voor na"},
		{"inline code", "gebruik `go test` vaak", "gebruik vaak"},
		{"image before link", "![logo](/logo.png) [lees meer](/blog)", ""},
		{"headers and emphasis", "## Titel\n*vet* _schuin_ ~weg~", "Titel vet schuin weg"},
		{"whitespace", "  een \n\n twee\tdrie ", "een twee drie"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, StripMarkup(tt.input))
		})
	}
}

func TestReadingTime(t *testing.T) {
	req := require.New(t)
	req.Equal(1, ReadingTime(""))
	req.Equal(1, ReadingTime("<p>kort</p>"))
	req.Equal(1, ReadingTime(strings.Repeat("woord ", 200)))
	req.Equal(2, ReadingTime(strings.Repeat("woord ", 201)))
	req.Equal(3, ReadingTime("<p>"+strings.Repeat("woord ", 450)+"</p>"))
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{"cut at last space", "aaaa bbbb cccc", 7, "aaaa..."},
		{"short text untouched", "aaaa bbbb", 160, "aaaa bbbb"},
		{"hard cut without space", "abcdefghij", 4, "abcd..."},
		{"markup removed first", "<p>aaaa</p> <em>bbbb</em>", 9, "aaaa bbbb"},
		{"multibyte runes", "één twee drie", 8, "één..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Excerpt(tt.input, tt.limit))
		})
	}
}

func TestSlug(t *testing.T) {
	req := require.New(t)
	req.Equal("werving-selectie-in-2025", Slug("Werving & Selectie in 2025!"))
	req.Equal("cafe-creme", Slug("  Café   Crème "))
	req.Equal("a-b", Slug("--a---b--"))
	req.Equal("", Slug("!!!"))
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{"comma string", "a, b ,,c", []string{"a", "b", "c"}},
		{"json array", []any{" x", "", "y ", 3}, []string{"x", "y"}},
		{"string slice", []string{"p", " "}, []string{"p"}},
		{"empty string", "", []string{}},
		{"nil", nil, []string{}},
		{"repeated tags", "Gen-Z, Recruitment, Gen-Z ,Recruitment", []string{"Gen-Z", "Recruitment"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SplitList(tt.input))
		})
	}
}
