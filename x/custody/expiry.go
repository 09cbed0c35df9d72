package custody

import (
	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/errors"
)

const (
	// MinDurationHours is the default lower bound of a custody duration.
	MinDurationHours uint32 = 1
	// MaxDurationHours is the default upper bound of a custody duration,
	// one week.
	MaxDurationHours uint32 = 168

	secondsPerHour = 3600
)

// expireAt computes the expiry timestamp for a record created now with
// the given duration. The duration is range checked before any
// arithmetic result is used and the timestamp arithmetic is overflow
// checked, an out of range sum is an error, never a wrapped value.
func expireAt(now payinbox.UnixTime, hours, minHours, maxHours uint32) (payinbox.UnixTime, error) {
	if hours < minHours || hours > maxHours {
		return 0, errors.Wrapf(ErrDuration, "%d hours outside [%d, %d]", hours, minHours, maxHours)
	}
	return now.AddChecked(int64(hours) * secondsPerHour)
}
