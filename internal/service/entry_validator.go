package service

import (
	"painterlog/internal/errors"
	"painterlog/internal/timecalc"
)

// ShiftTimes holds a validated shift parsed into minutes since midnight.
// BreakStart and BreakEnd are both nil or both set.
type ShiftTimes struct {
	Start      int
	End        int
	BreakStart *int
	BreakEnd   *int
}

// EntryValidator checks the time fields of a daily entry submission. Every
// rule violation aborts the save with a field-level message before anything
// is written.
type EntryValidator struct{}

// NewEntryValidator creates a new entry validator.
func NewEntryValidator() *EntryValidator {
	return &EntryValidator{}
}

// ValidateTimes parses and validates the shift and optional break window.
func (v *EntryValidator) ValidateTimes(startTime, endTime string, breakStart, breakEnd *string) (*ShiftTimes, error) {
	start, err := timecalc.ParseClock(startTime)
	if err != nil {
		return nil, errors.NewValidationError("start_time", err.Error())
	}
	end, err := timecalc.ParseClock(endTime)
	if err != nil {
		return nil, errors.NewValidationError("end_time", err.Error())
	}

	if start >= end {
		return nil, errors.NewValidationError("start_time", "work start time must be before work end time")
	}

	// If one break bound is set, both must be.
	if (breakStart == nil) != (breakEnd == nil) {
		field := "break_start"
		if breakStart != nil {
			field = "break_end"
		}
		return nil, errors.NewValidationError(field, "both break start and end times must be set")
	}

	if breakStart == nil {
		return &ShiftTimes{Start: start, End: end}, nil
	}

	bs, err := timecalc.ParseClock(*breakStart)
	if err != nil {
		return nil, errors.NewValidationError("break_start", err.Error())
	}
	be, err := timecalc.ParseClock(*breakEnd)
	if err != nil {
		return nil, errors.NewValidationError("break_end", err.Error())
	}

	if bs >= be {
		return nil, errors.NewValidationError("break_start", "break start time must be before break end time")
	}
	if bs <= start {
		return nil, errors.NewValidationError("break_start", "break cannot start before work starts")
	}
	if be >= end {
		return nil, errors.NewValidationError("break_end", "break cannot end after work ends")
	}

	return &ShiftTimes{Start: start, End: end, BreakStart: &bs, BreakEnd: &be}, nil
}
