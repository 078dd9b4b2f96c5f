package scheduling

import (
	"time"

	"github.com/auracontrol/AC-BookingService/internal/domain"
)

// Package scheduling contains the pure availability and allocation logic
// shared by the slot calculator and the booking write paths. All functions
// operate on prefetched snapshots (appointments, absences, resources) and
// perform in-memory filtering only, so one computation issues a constant
// number of queries regardless of how many candidate windows it examines.

// AvailableTechnicians returns the technicians able to take a service in
// the given window: skill-qualified, enabled, without an overlapping
// active appointment and without a blocking absence
func AvailableTechnicians(
	technicians []domain.Technician,
	serviceID int64,
	appointments []*domain.Appointment,
	absences []*domain.AbsenceRequest,
	windowStart, windowEnd time.Time,
) []domain.Technician {
	available := make([]domain.Technician, 0, len(technicians))

	for _, tech := range technicians {
		if !tech.Enabled || !tech.CanPerform(serviceID) {
			continue
		}
		if TechnicianBusy(appointments, tech.ID, windowStart, windowEnd) {
			continue
		}
		if TechnicianOnLeave(absences, tech.ID, windowStart, windowEnd) {
			continue
		}
		available = append(available, tech)
	}

	return available
}

// TechnicianBusy reports whether the technician has an active appointment
// overlapping the window
func TechnicianBusy(appointments []*domain.Appointment, technicianID int64, windowStart, windowEnd time.Time) bool {
	for _, appt := range appointments {
		if !appt.IsActive() || appt.TechnicianID != technicianID {
			continue
		}
		if domain.Overlaps(appt.StartTime, appt.EndTime, windowStart, windowEnd) {
			return true
		}
	}
	return false
}

// TechnicianOnLeave reports whether the technician has a blocking
// (pending or approved) absence overlapping the window
func TechnicianOnLeave(absences []*domain.AbsenceRequest, technicianID int64, windowStart, windowEnd time.Time) bool {
	for _, absence := range absences {
		if !absence.BlocksScheduling() || absence.TechnicianID != technicianID {
			continue
		}
		if domain.Overlaps(absence.StartDate, absence.EndDate, windowStart, windowEnd) {
			return true
		}
	}
	return false
}
