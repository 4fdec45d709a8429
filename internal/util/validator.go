package util

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	accountNoRegex = regexp.MustCompile(`^\d{6}$`)
	nameRegex      = regexp.MustCompile(`^[a-zA-Z\s]+$`)
)

// ValidateAccountNo checks the 6-digit account number format. The client
// enforces the same rule; the server re-validates.
func ValidateAccountNo(accountNo string) error {
	if !accountNoRegex.MatchString(accountNo) {
		return fmt.Errorf("account number must be exactly 6 digits, got %q", accountNo)
	}
	return nil
}

// ValidateName checks the holder name: non-empty, letters and whitespace only.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is empty")
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("name must contain only letters and spaces, got %q", name)
	}
	return nil
}
