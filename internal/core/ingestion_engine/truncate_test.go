package ingestion_engine

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{"under budget", "short", 10, "short"},
		{"exact budget", "abcde", 5, "abcde"},
		{"over budget", "abcdef", 3, "abc"},
		{"empty", "", 3000, ""},
		{"zero limit", "abc", 0, ""},
		{"multibyte counts runes", "héllo wörld", 4, "héll"},
		{"cjk", "文書の要約です", 2, "文書"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Truncate(tc.text, tc.limit))
		})
	}
}

func TestTruncateNeverExceedsBudget(t *testing.T) {
	for _, n := range []int{0, 1, 2999, 3000, 3001, 10000} {
		text := strings.Repeat("é", n)
		got := Truncate(text, 3000)
		assert.LessOrEqual(t, utf8.RuneCountInString(got), 3000)
		assert.True(t, strings.HasPrefix(text, got))
	}
}
