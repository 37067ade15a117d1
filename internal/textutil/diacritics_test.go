package textutil

import "testing"

func TestStripDiacritics(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"tăcuși", "tacusi"},
		{"glumesc", "glumesc"},
		{"înțeleg", "inteleg"},
		{"șțăîâ", "staia"},
		{"", ""},
		{"no diacritics here", "no diacritics here"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := StripDiacritics(tt.in); got != tt.want {
				t.Errorf("StripDiacritics(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
