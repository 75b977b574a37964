package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidPIN      = errors.New("PIN must be exactly 4 digits")
	ErrAmountTooLarge  = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MinUsernameLength = 3
	MaxUsernameLength = 64
	PINLength         = 4
	MaxDescriptionLen = 500

	// MaxTransferAmount bounds a single operation.
	MaxTransferAmount = "1000000000" // 1 billion
)

// ValidateUsername validates a username at registration time.
// Matching is case-sensitive throughout the system.
func ValidateUsername(username string) error {
	if len(username) < MinUsernameLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrInvalidUsername, MinUsernameLength)
	}

	if len(username) > MaxUsernameLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidUsername, MaxUsernameLength)
	}

	if strings.TrimSpace(username) != username {
		return fmt.Errorf("%w: leading or trailing whitespace", ErrInvalidUsername)
	}

	return nil
}

// ValidatePIN validates the raw PIN format used at registration and login.
func ValidatePIN(pin string) error {
	if len(pin) != PINLength {
		return ErrInvalidPIN
	}

	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return ErrInvalidPIN
		}
	}

	return nil
}

// ValidateAmount validates a transfer or charge amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxTransferAmount)
	if amount.GreaterThan(maxAmount) {
		return ErrAmountTooLarge
	}

	return nil
}
