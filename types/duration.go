package types

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Duration wraps time.Duration with support for JSON encoding.
//
// Durations decode from either a time.Duration string ("720h") or a whole number of seconds
// (2592000), which is how schedule lengths arrive from form inputs.
type Duration struct {
	time.Duration
}

// NewDuration wraps a time.Duration with a Duration.
func NewDuration(d time.Duration) Duration {
	return Duration{Duration: d}
}

// SecondsDuration returns a Duration of n whole seconds.
func SecondsDuration(n int64) Duration {
	return NewDuration(time.Duration(n) * time.Second)
}

// ParseDuration parses a duration string in the time.Duration format.
func ParseDuration(s string) (Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return Duration{}, err
	}

	return NewDuration(d), nil
}

// MustParseDuration parses a duration string in the time.Duration format.
// Panics if the string is invalid.
//
// Useful for tests, but should be avoided in production code.
func MustParseDuration(s string) Duration {
	d, err := ParseDuration(s)
	if err != nil {
		panic(err)
	}

	return d
}

// WholeSeconds returns the duration truncated to whole seconds.
func (d Duration) WholeSeconds() int64 {
	return int64(d.Duration / time.Second)
}

// String returns a string representing the duration in the form "72h3m0.5s".
func (d Duration) String() string {
	return d.Duration.String()
}

// MarshalJSON marshals the duration into JSON bytes and implements the json.Marshaler interface.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON unmarshals the duration from JSON bytes and implements the json.Unmarshaler
// interface.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case string:
		var err error
		if d.Duration, err = time.ParseDuration(value); err != nil {
			return err
		}

		return nil
	case float64:
		if value != math.Trunc(value) || math.Abs(value) > math.MaxInt64/float64(time.Second) {
			return fmt.Errorf("invalid duration seconds: %v", value)
		}
		d.Duration = time.Duration(value) * time.Second

		return nil
	default:
		return fmt.Errorf("invalid duration type: %T", v)
	}
}
