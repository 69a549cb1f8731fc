// Package validation holds the input checks shared by every frontend.
package validation

import (
	"errors"
	"regexp"
	"strconv"
)

// ErrInvalidInput marks a count or bound that is outside its allowed range.
var ErrInvalidInput = errors.New("invalid input")

var digitsOnly = regexp.MustCompile(`^[0-9]*$`)

// IsValid reports whether value is a non-empty string of digits whose numeric
// value lies within [min, max].
func IsValid(value string, min, max int) bool {
	if value == "" || !digitsOnly.MatchString(value) {
		return false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return false
	}
	return n >= min && n <= max
}

// ParseBounded parses value and returns ErrInvalidInput if IsValid rejects it.
func ParseBounded(value string, min, max int) (int, error) {
	if !IsValid(value, min, max) {
		return 0, ErrInvalidInput
	}
	n, _ := strconv.Atoi(value)
	return n, nil
}
