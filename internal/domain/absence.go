package domain

import "time"

// AbsenceStatus represents the status of an absence request
type AbsenceStatus string

const (
	AbsencePending  AbsenceStatus = "PENDING"
	AbsenceApproved AbsenceStatus = "APPROVED"
	AbsenceRejected AbsenceStatus = "REJECTED"
)

// AbsenceRequest represents a technician's leave-of-absence request
type AbsenceRequest struct {
	ID           int64
	TechnicianID int64
	StartDate    time.Time
	EndDate      time.Time
	Reason       string
	Status       AbsenceStatus
	CreatedAt    time.Time
}

// BlocksScheduling returns true if the request removes the technician's
// capacity from the calendar. A pending request already blocks, so the
// technician cannot be double-booked against a leave that may be approved
func (r *AbsenceRequest) BlocksScheduling() bool {
	return r.Status == AbsencePending || r.Status == AbsenceApproved
}

// IsValidAbsenceDecision reports whether s is a terminal review decision
func IsValidAbsenceDecision(s AbsenceStatus) bool {
	return s == AbsenceApproved || s == AbsenceRejected
}

// BlockingAbsenceStatuses statuses that remove capacity from scheduling
var BlockingAbsenceStatuses = []AbsenceStatus{
	AbsencePending,
	AbsenceApproved,
}
