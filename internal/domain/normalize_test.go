package domain

import "testing"

func TestNormalizeAnswer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "uppercase", input: "usher", want: "USHER"},
		{name: "trim spaces", input: "  eves ", want: "EVES"},
		{name: "already upper", input: "CBS", want: "CBS"},
		{name: "mixed case", input: "BaItS", want: "BAITS"},
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "   ", want: ""},
		{name: "tabs", input: "\tref\t", want: "REF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeAnswer(tt.input); got != tt.want {
				t.Errorf("NormalizeAnswer(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeWord(t *testing.T) {
	t.Parallel()

	if got := NormalizeWord("  ESHER "); got != "esher" {
		t.Errorf("NormalizeWord = %q, want %q", got, "esher")
	}
}

func TestHasLetter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"ABC", true},
		{"A1", true},
		{"123", false},
		{"", false},
		{"--", false},
	}
	for _, tt := range tests {
		if got := HasLetter(tt.input); got != tt.want {
			t.Errorf("HasLetter(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
