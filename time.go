package payinbox

import (
	"encoding/json"
	"time"

	"github.com/payinbox/payinbox/errors"
)

// UnixTime represents a point in time as POSIX time. Instead of using
// Go's time.Time that includes nanoseconds this is a primitive int64
// with seconds precision, which is what gets persisted. Some languages
// do not support nanoseconds precision anyway.
type UnixTime int64

// Time returns a time.Time structure that represents the same moment in time.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0)
}

// IsZero returns true if this time represents a zero value.
func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add modifies this UNIX time by given duration. This is compatible with
// time.Time.Add method. The result saturates nowhere; use AddChecked when
// overflow must be detected.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

// AddChecked modifies this UNIX time by the given amount of seconds and
// fails with ErrOverflow instead of wrapping around. A wrapped deadline
// would silently produce an already expired or a far future value.
func (t UnixTime) AddChecked(seconds int64) (UnixTime, error) {
	sum := int64(t) + seconds
	if seconds > 0 && sum < int64(t) {
		return 0, errors.Wrap(errors.ErrOverflow, "deadline")
	}
	if seconds < 0 && sum > int64(t) {
		return 0, errors.Wrap(errors.ErrOverflow, "deadline")
	}
	return UnixTime(sum), nil
}

// AsUnixTime converts given Time structure into its UNIX time representation.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// UnmarshalJSON supports unmarshaling both as time.Time and from a number.
// Usually a number is used as a representation of this time in JSON but it
// is convenient to use a string format in configurations (ie genesis file).
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var unix int64
	if err := json.Unmarshal(raw, &unix); err == nil {
		if unix < 0 {
			return errors.Wrap(errors.ErrInput, "time before epoch")
		}
		*t = UnixTime(unix)
		return nil
	}

	var stdtime time.Time
	if err := json.Unmarshal(raw, &stdtime); err == nil {
		unix := UnixTime(stdtime.Unix())
		if unix < 0 {
			return errors.Wrap(errors.ErrInput, "time before epoch")
		}
		*t = unix
		return nil
	}

	return errors.Wrap(errors.ErrInput, "invalid time format")
}

// Validate returns an error if this time value is invalid.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative value")
	}
	return nil
}

// String returns the usual string representation of this time as the
// time.Time structure would.
func (t UnixTime) String() string {
	return t.Time().String()
}
