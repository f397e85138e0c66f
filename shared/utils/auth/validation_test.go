package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"user@example.com", false},
		{"  user@example.com  ", false},
		{"", true},
		{"not-an-email", true},
		{"@example.com", true},
	}

	for _, tt := range tests {
		err := ValidateEmail(tt.email)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone   string
		wantErr bool
	}{
		{"+919876543210", false},
		{"9876543210", false},
		{"6123456789", false},
		{"", true},
		{"1234567890", true},     // must start 6-9
		{"+91987654321", true},   // too short
		{"98765432101", true},    // too long
		{"+1 555 123 4567", true}, // not an Indian number
	}

	for _, tt := range tests {
		err := ValidatePhone(tt.phone)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePhone(%q) error = %v, wantErr %v", tt.phone, err, tt.wantErr)
		}
	}
}

func TestValidateContact(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		phone   string
		wantErr bool
	}{
		{"email only", "user@example.com", "", false},
		{"phone only", "", "+919876543210", false},
		{"both", "user@example.com", "9876543210", false},
		{"neither", "", "", true},
		{"whitespace counts as empty", "   ", "  ", true},
		{"bad email with good phone", "nope", "+919876543210", true},
		{"good email with bad phone", "user@example.com", "123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContact(tt.email, tt.phone)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateContact(%q, %q) error = %v, wantErr %v", tt.email, tt.phone, err, tt.wantErr)
			}
		})
	}
}
