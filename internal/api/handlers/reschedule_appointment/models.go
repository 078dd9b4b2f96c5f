package reschedule_appointment

import (
	"time"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	rescheduleAppointment "github.com/auracontrol/AC-BookingService/internal/usecase/reschedule_appointment"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	NewStartTime string `json:"newStartTime"` // "2026-09-15T10:00:00"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID           int64    `json:"id"`
	CustomerID   int64    `json:"customerId"`
	TechnicianID int64    `json:"technicianId"`
	ServiceID    int64    `json:"serviceId"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	Status       string   `json:"status"`
	ServiceName  string   `json:"serviceName"`
	FinalPrice   *float64 `json:"finalPrice,omitempty"`
	Note         *string  `json:"note,omitempty"`
	ResourceIDs  []int64  `json:"resourceIds,omitempty"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID, customerID int64) (*rescheduleAppointment.Request, error) {
	newStartTime, err := time.ParseInLocation(domain.DateTimeFormat, r.NewStartTime, time.Local)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		CustomerID:    customerID,
		NewStartTime:  newStartTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:           resp.ID,
		CustomerID:   resp.CustomerID,
		TechnicianID: resp.TechnicianID,
		ServiceID:    resp.ServiceID,
		StartTime:    resp.StartTime.Format(time.RFC3339),
		EndTime:      resp.EndTime.Format(time.RFC3339),
		Status:       resp.Status,
		ServiceName:  resp.ServiceName,
		FinalPrice:   resp.FinalPrice,
		Note:         resp.Note,
		ResourceIDs:  resp.ResourceIDs,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
