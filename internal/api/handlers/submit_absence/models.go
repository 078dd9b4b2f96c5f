package submit_absence

import (
	"time"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	"github.com/auracontrol/AC-BookingService/internal/service/absences/models"
)

// SubmitAbsenceRequest HTTP request model
type SubmitAbsenceRequest struct {
	StartDate string `json:"startDate"` // "2026-09-15T00:00:00"
	EndDate   string `json:"endDate"`   // "2026-09-20T00:00:00"
	Reason    string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SubmitAbsenceRequest) ToServiceRequest(technicianID int64) (*models.SubmitAbsenceRequest, error) {
	startDate, err := time.ParseInLocation(domain.DateTimeFormat, r.StartDate, time.Local)
	if err != nil {
		return nil, err
	}

	endDate, err := time.ParseInLocation(domain.DateTimeFormat, r.EndDate, time.Local)
	if err != nil {
		return nil, err
	}

	return &models.SubmitAbsenceRequest{
		TechnicianID: technicianID,
		StartDate:    startDate,
		EndDate:      endDate,
		Reason:       r.Reason,
	}, nil
}
