package domain

import (
	"time"

	"github.com/auracontrol/AC-BookingService/pkg/types"
)

// BusinessSchedule describes the salon's daily working calendar:
// opening window, a closed break sub-window and the slot scan step
type BusinessSchedule struct {
	OpenTime        types.TimeString
	CloseTime       types.TimeString
	BreakStart      types.TimeString
	BreakEnd        types.TimeString
	SlotStepMinutes int
}

// WindowOnDate returns the concrete opening and closing instants for a date
func (s BusinessSchedule) WindowOnDate(date time.Time) (time.Time, time.Time) {
	return s.OpenTime.At(date), s.CloseTime.At(date)
}

// BreakOnDate returns the concrete break window for a date
func (s BusinessSchedule) BreakOnDate(date time.Time) (time.Time, time.Time) {
	return s.BreakStart.At(date), s.BreakEnd.At(date)
}

// HasBreak returns true if a break window is configured
func (s BusinessSchedule) HasBreak() bool {
	return !s.BreakStart.IsZero() && !s.BreakEnd.IsZero() && s.BreakStart.IsBefore(s.BreakEnd)
}
