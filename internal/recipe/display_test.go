package recipe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateDescription(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"short", "A quick soup", "A quick soup"},
		{"exactly 50", strings.Repeat("a", 50), strings.Repeat("a", 50)},
		{"51", strings.Repeat("a", 51), strings.Repeat("a", 50) + "..."},
		{"60", strings.Repeat("A", 60), strings.Repeat("A", 50) + "..."},
		{"multibyte 50", strings.Repeat("é", 50), strings.Repeat("é", 50)},
		{"multibyte 51", strings.Repeat("日", 51), strings.Repeat("日", 50) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateDescription(tt.in))
		})
	}
}

func TestTruncateDescription_DecomposedCountsAsOne(t *testing.T) {
	// "e" + combining acute composes to a single code point under NFC.
	in := strings.Repeat("e\u0301", 50)
	assert.Equal(t, in, TruncateDescription(in))

	long := strings.Repeat("e\u0301", 51)
	assert.Equal(t, strings.Repeat("e\u0301", 50)+"...", TruncateDescription(long))
}

func TestTruncateDescription_KeepsOriginalCharacters(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		// U+F900 normalizes to U+8C48; the output must keep U+F900.
		{"compatibility ideograph", strings.Repeat("\uF900", 51), strings.Repeat("\uF900", 50) + "..."},
		{"mixed decomposed", "a" + strings.Repeat("e\u0301", 55), "a" + strings.Repeat("e\u0301", 49) + "..."},
		{"ascii then ideographs", strings.Repeat("x", 45) + strings.Repeat("\uF900", 10), strings.Repeat("x", 45) + strings.Repeat("\uF900", 5) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := TruncateDescription(tt.in)
			assert.Equal(t, tt.want, out)
			assert.True(t, strings.HasPrefix(tt.in, strings.TrimSuffix(out, Ellipsis)))
		})
	}
}

func TestTruncateDescription_EllipsisAppendedNotReplacing(t *testing.T) {
	in := strings.Repeat("b", 53)
	out := TruncateDescription(in)
	assert.Len(t, out, 53)
	assert.True(t, strings.HasPrefix(out, strings.Repeat("b", 50)))
	assert.True(t, strings.HasSuffix(out, "..."))
}
