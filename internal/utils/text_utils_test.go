package utils

import (
	"testing"

	"go.uber.org/zap"
)

func TestSanitizeReply(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	cases := []struct {
		name     string
		input    string
		maxWords int
		want     string
	}{
		{
			name:     "plain reply unchanged",
			input:    "What should I do next?",
			maxWords: 18,
			want:     "What should I do next?",
		},
		{
			name:     "first line only",
			input:    "Sure, here is my reply.\nAs an assistant I should note...",
			maxWords: 18,
			want:     "Sure, here is my reply.",
		},
		{
			name:     "quotes and emphasis stripped",
			input:    `"I am *so* worried about this"`,
			maxWords: 18,
			want:     "I am so worried about this",
		},
		{
			name:     "word cap",
			input:    "one two three four five six",
			maxWords: 4,
			want:     "one two three four",
		},
		{
			name:     "whitespace collapsed",
			input:    "  spaced   out    words  ",
			maxWords: 18,
			want:     "spaced out words",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tp.SanitizeReply(tc.input, tc.maxWords); got != tc.want {
				t.Errorf("SanitizeReply = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	valid := "hello, नमस्ते"
	if got := tp.SanitizeUTF8(valid); got != valid {
		t.Errorf("valid string changed: %q", got)
	}

	invalid := "abc\xff\xfedef"
	got := tp.SanitizeUTF8(invalid)
	if got != "abcdef" {
		t.Errorf("SanitizeUTF8 = %q, want %q", got, "abcdef")
	}
}
