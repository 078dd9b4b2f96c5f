package domain

// Time format constants
const (
	TimeFormat     = "15:04"               // HH:MM
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04:05" // ISO-8601 local date-time
)

// Default business policy values
const (
	DefaultCancelNoticeMinutes = 30
	DefaultSlotStepMinutes     = 15
)

// Validation constants
const (
	MaxNoteLength   = 500
	MaxReasonLength = 500
)

// ActiveStatuses appointment statuses that occupy technician and resources
// Используется при подсчёте занятости в календаре
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// InactiveStatuses appointment statuses excluded from busy calculations
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}
