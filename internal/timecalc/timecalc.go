// Package timecalc holds the pure clock arithmetic behind daily entries:
// parsing wall clock strings, the break deduction rule, and worked-duration
// totals. Everything operates on minutes since midnight; next-day wrap is
// not supported.
package timecalc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// FreeBreakMinutes is the longest break that costs nothing.
	FreeBreakMinutes = 30
	// DeductionMinutes is the fixed deduction applied once a break exceeds
	// FreeBreakMinutes, regardless of how long the break actually ran.
	DeductionMinutes = 30

	minutesPerDay = 24 * 60
)

// ParseClock parses a zero-padded "HH:MM" string into minutes since
// midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid time %q: hour out of range", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q: minute out of range", s)
	}
	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// BreakDeduction returns the deduction in minutes for a break of the given
// length. Breaks of FreeBreakMinutes or less cost nothing; anything longer
// costs exactly DeductionMinutes.
func BreakDeduction(breakMinutes int) int {
	if breakMinutes <= FreeBreakMinutes {
		return 0
	}
	return DeductionMinutes
}

// WorkedMinutes returns the raw shift length, end minus start.
func WorkedMinutes(start, end int) int {
	return end - start
}

// NetMinutes returns the creditable minutes for a shift along with the
// deduction applied. Break bounds are both nil or both set; callers
// validate the window before computing.
func NetMinutes(start, end int, breakStart, breakEnd *int) (net, deduction int) {
	worked := WorkedMinutes(start, end)
	if breakStart != nil && breakEnd != nil {
		deduction = BreakDeduction(*breakEnd - *breakStart)
	}
	return worked - deduction, deduction
}

// Hours converts minutes to decimal hours rounded to two places.
func Hours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(2)
}
