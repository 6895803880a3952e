// Package payment validates the simulated checkout form. No charge is
// ever made; the checks exist so obviously bad card details are
// rejected before a purchase is recorded.
package payment

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	ErrHolderRequired = errors.New("cardholder name required")
	ErrInvalidNumber  = errors.New("card number must be 12-19 digits")
	ErrInvalidExpiry  = errors.New("card expiry must be MM/YY")
	ErrCardExpired    = errors.New("card expired")
	ErrInvalidCVV     = errors.New("CVV must be 3 or 4 digits")
	ErrInvalidEmail   = errors.New("invalid receipt email")
)

var (
	digitsRe = regexp.MustCompile(`^\d+$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2})$`)
	emailRe  = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
)

// Card holds the fields of the checkout form. Number may contain
// spaces; Expiry is MM/YY; Email is an optional receipt address.
type Card struct {
	Holder string
	Number string
	Expiry string
	CVV    string
	Email  string
}

// Validate checks the card against the given clock and returns the
// first failing rule.
func (c Card) Validate(now time.Time) error {
	if strings.TrimSpace(c.Holder) == "" {
		return ErrHolderRequired
	}

	number := NormalizeNumber(c.Number)
	if !digitsRe.MatchString(number) || len(number) < 12 || len(number) > 19 {
		return ErrInvalidNumber
	}

	m := expiryRe.FindStringSubmatch(strings.TrimSpace(c.Expiry))
	if m == nil {
		return ErrInvalidExpiry
	}
	var month, year int
	fmt.Sscanf(m[1], "%d", &month)
	fmt.Sscanf(m[2], "%d", &year)
	// a card is good through the end of its expiry month
	expires := time.Date(2000+year, time.Month(month), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 31)
	if expires.Before(now) {
		return ErrCardExpired
	}

	cvv := strings.TrimSpace(c.CVV)
	if !digitsRe.MatchString(cvv) || len(cvv) < 3 || len(cvv) > 4 {
		return ErrInvalidCVV
	}

	if email := strings.TrimSpace(c.Email); email != "" && !emailRe.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// NormalizeNumber strips whitespace from a card number.
func NormalizeNumber(number string) string {
	return strings.Join(strings.Fields(number), "")
}

// MaskNumber masks all but the last four digits, e.g. "********1234".
func MaskNumber(number string) string {
	n := NormalizeNumber(number)
	if len(n) <= 4 {
		return n
	}
	return strings.Repeat("*", len(n)-4) + n[len(n)-4:]
}
