package roster

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"test@example.com", true},
		{"first.last+tag@sub.domain.org", true},
		{"UPPER@CASE.IO", true},
		{"invalid-email", false},
		{"missing@tld", false},
		{"@nolocal.com", false},
		{"spaces in@x.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"0612345678", true},
		{"+33612345678", true},
		{"12345", true},
		{"1234567890123456", true},
		{"1234", false},
		{"12345678901234567", false},
		{"+", false},
		{"06 12 34 56 78", false},
		{"phone", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidPhone(tt.phone); got != tt.want {
			t.Errorf("IsValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}
