package htmltext

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text untouched",
			input:    "Climate talks resume",
			expected: "Climate talks resume",
		},
		{
			name:     "whitespace collapsed",
			input:    "  Climate \n\t talks   resume ",
			expected: "Climate talks resume",
		},
		{
			name:     "tags stripped",
			input:    "<p>Climate <strong>talks</strong> resume</p>",
			expected: "Climate talks resume",
		},
		{
			name:     "entities decoded",
			input:    "Tom &amp; Jerry",
			expected: "Tom & Jerry",
		},
		{
			name:     "comparison operators kept",
			input:    "Use a<b and c>d",
			expected: "Use a<b and c>d",
		},
		{
			name:     "bare ampersand kept",
			input:    "Revenue<5% & profit>3% in Q3",
			expected: "Revenue<5% & profit>3% in Q3",
		},
		{
			name:     "tag with attributes stripped",
			input:    `<a href="https://example.com">Climate</a> talks`,
			expected: "Climate talks",
		},
		{
			name:     "line break stripped",
			input:    "Climate<br/>talks",
			expected: "Climatetalks",
		},
		{
			name:     "numeric entity decoded",
			input:    "Caf&#233; owners",
			expected: "Café owners",
		},
		{
			name:     "scripts dropped",
			input:    "<p>Hello</p><script>alert(1)</script>",
			expected: "Hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
