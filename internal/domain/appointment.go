package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// Appointment represents a booked service appointment
type Appointment struct {
	ID           int64
	CustomerID   int64
	TechnicianID int64
	ServiceID    int64
	StartTime    time.Time
	EndTime      time.Time // always StartTime + service duration, computed server-side
	Status       AppointmentStatus

	// Snapshot data taken at booking time
	ServiceName string
	FinalPrice  *float64
	Note        *string

	// ResourceIDs are the concrete units reserved for this appointment.
	// Reservations carry no lifecycle of their own: a unit is busy while
	// a non-cancelled appointment holding it overlaps the queried window
	ResourceIDs []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its technician and resources
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the appointment can be moved to a new window
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsValidStatus reports whether s is one of the known appointment statuses
func IsValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
