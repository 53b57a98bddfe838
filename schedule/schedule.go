// Package schedule resolves stream and milestone time windows and estimates unlock curves.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/smartcontractkit/txbundle/types"
)

var (
	ErrMissingField         = errors.New("missing required field")
	ErrEndBeforeStart       = errors.New("end date must be after start date")
	ErrStartInPast          = errors.New("start date must be in the future")
	ErrNonPositiveDuration  = errors.New("duration must be greater than zero")
	ErrNegativeCliff        = errors.New("cliff must not be negative")
	ErrCliffExceedsDuration = errors.New("cliff must not exceed the schedule length")
	ErrTimestampOutOfRange  = errors.New("timestamp exceeds the supported range")
)

// MaxTimestamp is the largest Unix timestamp stream contracts store (uint40).
const MaxTimestamp int64 = 1<<40 - 1

// Resolve turns a ScheduleSpec into absolute timestamps relative to now.
//
// In duration mode the schedule starts at now. In dates mode the start must lie strictly after
// now; the comparison keeps sub-second precision while the resolved timestamps are truncated to
// whole seconds. In both modes the cliff is measured from the start and may not pass the end.
func Resolve(spec types.ScheduleSpec, now time.Time) (types.ResolvedSchedule, error) {
	cliff := spec.Cliff.WholeSeconds()
	if cliff < 0 {
		return types.ResolvedSchedule{}, ErrNegativeCliff
	}

	var start, end int64
	switch spec.Mode {
	case types.ScheduleModeDuration:
		length := spec.Duration.WholeSeconds()
		if length <= 0 {
			return types.ResolvedSchedule{}, ErrNonPositiveDuration
		}
		start = now.Unix()
		end = start + length

	case types.ScheduleModeDates:
		if spec.StartDate == nil {
			return types.ResolvedSchedule{}, fmt.Errorf("%w: startDate", ErrMissingField)
		}
		if spec.EndDate == nil {
			return types.ResolvedSchedule{}, fmt.Errorf("%w: endDate", ErrMissingField)
		}
		if !spec.StartDate.After(now) {
			return types.ResolvedSchedule{}, ErrStartInPast
		}
		start = spec.StartDate.Unix()
		end = spec.EndDate.Unix()
		if end <= start {
			return types.ResolvedSchedule{}, ErrEndBeforeStart
		}

	default:
		return types.ResolvedSchedule{}, fmt.Errorf("%w: mode", ErrMissingField)
	}

	if end > MaxTimestamp {
		return types.ResolvedSchedule{}, fmt.Errorf("%w: end %d", ErrTimestampOutOfRange, end)
	}

	if cliff > end-start {
		return types.ResolvedSchedule{}, ErrCliffExceedsDuration
	}

	resolved := types.ResolvedSchedule{StartTime: start, EndTime: end}
	if cliff > 0 {
		resolved.CliffTime = start + cliff
	}

	return resolved, nil
}
