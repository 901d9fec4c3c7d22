package progress

import "testing"

func TestFit(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"hello", 10, "hello     "},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello..."},
		{"abcd", 4, "abcd"},
		{"abcde", 4, "a..."},
		{"abcd", 3, "abc"},
		{"", 3, "   "},
		{"x", 0, ""},
		{"x", -2, ""},
	}

	for _, tt := range tests {
		got := Fit(tt.input, tt.n)
		if got != tt.want {
			t.Errorf("Fit(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}
