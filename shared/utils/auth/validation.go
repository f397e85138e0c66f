package utils

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
)

var phoneRegex = regexp.MustCompile(`^(\+91)?[6-9][0-9]{9}$`)

func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}

	_, err := mail.ParseAddress(email)
	if err != nil {
		return errors.New("invalid email format")
	}

	return nil
}

func ValidatePhone(phone string) error {
	if phone == "" {
		return errors.New("phone number is required")
	}

	if !phoneRegex.MatchString(phone) {
		return errors.New("invalid phone number format")
	}

	return nil
}

// ValidateContact checks that at least one of email/phone is present
// and that whichever is present is well formed.
func ValidateContact(email, phone string) error {
	if strings.TrimSpace(email) == "" && strings.TrimSpace(phone) == "" {
		return errors.New("email or phone number is required")
	}
	if email != "" {
		if err := ValidateEmail(email); err != nil {
			return err
		}
	}
	if phone != "" {
		if err := ValidatePhone(phone); err != nil {
			return err
		}
	}
	return nil
}

func ValidateRequired(field, fieldName string) error {
	if strings.TrimSpace(field) == "" {
		return errors.New(fieldName + " is required")
	}
	return nil
}
