package errors

import (
	"errors"
	"fmt"
)

// Common error types for the CampusMate server
var (
	// Input errors
	ErrInvalidInput = errors.New("invalid input")

	// Verification provider errors
	ErrVerificationUnavailable = errors.New("verification provider unavailable")
	ErrProfileNotFound         = errors.New("profile not found")

	// Session errors
	ErrSessionCorrupt = errors.New("session corrupt")

	// Access errors
	ErrAccessDenied = errors.New("access denied")

	// Rate limiting
	ErrTooManyRequests = errors.New("too many requests")

	// General errors
	ErrNotFound = errors.New("not found")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Invalidf builds an ErrInvalidInput carrying a user-facing reason
func Invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidInput}, args...)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
