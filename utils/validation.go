package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ParseID parses a positive numeric identifier from a query or path value.
// A missing or malformed value is a client error, not a lookup miss.
func ParseID(value, name string) (uint, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, BadRequestError(fmt.Sprintf("%s is required", name), nil)
	}
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil || id == 0 {
		return 0, BadRequestError(fmt.Sprintf("Invalid %s", name), err)
	}
	return uint(id), nil
}

// ValidateEmail checks email format
func ValidateEmail(email string) error {
	if email == "" {
		return ValidationFailedError("Email is required", nil)
	}
	if !emailRegex.MatchString(email) {
		return ValidationFailedError("Invalid email format", nil)
	}
	return nil
}

// ValidatePassword enforces the minimum password policy: at least 8
// characters with an upper-case letter, a lower-case letter and a digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ValidationFailedError("Password must be at least 8 characters long", nil)
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return ValidationFailedError("Password must contain upper case, lower case and a digit", nil)
	}
	return nil
}

// ValidateDiscount checks that an offer discount percentage is usable:
// strictly positive and at most 100.
func ValidateDiscount(discount float64) error {
	if discount <= 0 || discount > 100 {
		return ValidationFailedError("Discount must be between 0 and 100", nil)
	}
	return nil
}

// ValidateOfferWindow checks that an offer's validity window is well formed.
func ValidateOfferWindow(fromDate, toDate time.Time) error {
	if fromDate.IsZero() || toDate.IsZero() {
		return ValidationFailedError("Offer dates are required", nil)
	}
	if !toDate.After(fromDate) {
		return ValidationFailedError("Offer end date must be after start date", nil)
	}
	return nil
}
