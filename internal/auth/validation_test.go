package auth

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"john@x.com", true},
		{"john.doe+tag@example.co.uk", true},
		{"", false},
		{"john", false},
		{"john@", false},
		{"@x.com", false},
		{"john@x", false},
		// 255 characters is the longest accepted address.
		{strings.Repeat("a", 249) + "@x.com", true},
		{strings.Repeat("a", 250) + "@x.com", false},
	}

	for _, tt := range tests {
		if got := ValidateEmail(tt.email); got != tt.valid {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.valid)
		}
	}
}
