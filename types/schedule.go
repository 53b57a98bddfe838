package types

import "time"

// ScheduleMode selects how a ScheduleSpec expresses its time window.
type ScheduleMode string

const (
	// ScheduleModeDuration starts the schedule now and runs for Duration.
	ScheduleModeDuration ScheduleMode = "duration"
	// ScheduleModeDates uses explicit StartDate and EndDate.
	ScheduleModeDates ScheduleMode = "dates"
)

// ScheduleSpec is the user supplied description of a stream or milestone time window.
type ScheduleSpec struct {
	Mode      ScheduleMode `json:"mode"`
	Duration  Duration     `json:"duration,omitempty"`
	Cliff     Duration     `json:"cliff,omitempty"`
	StartDate *time.Time   `json:"startDate,omitempty"`
	EndDate   *time.Time   `json:"endDate,omitempty"`
}

// ResolvedSchedule holds absolute Unix second timestamps. CliffTime is 0 when there is no cliff.
type ResolvedSchedule struct {
	StartTime int64 `json:"startTime"`
	EndTime   int64 `json:"endTime"`
	CliffTime int64 `json:"cliffTime"`
}

// HasCliff reports whether the schedule has a cliff.
func (s ResolvedSchedule) HasCliff() bool {
	return s.CliffTime != 0
}

// Length is the number of seconds between start and end.
func (s ResolvedSchedule) Length() int64 {
	return s.EndTime - s.StartTime
}
