package custody

import "github.com/payinbox/payinbox/errors"

var (
	// ErrInvalidClaimCode is returned when the presented claim code does
	// not hash to the stored commitment.
	ErrInvalidClaimCode = errors.Register(1200, "invalid claim code")

	// ErrCodeTooLong is returned when a claim code exceeds the maximum
	// accepted length.
	ErrCodeTooLong = errors.Register(1201, "claim code too long")

	// ErrDuration is returned when a custody duration is outside the
	// configured bounds.
	ErrDuration = errors.Register(1202, "invalid custody duration")

	// ErrNotExpired is returned when a reclaim is attempted before the
	// custody record expired.
	ErrNotExpired = errors.Register(1203, "custody record not expired")
)
