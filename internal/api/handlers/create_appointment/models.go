package create_appointment

import (
	"time"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	createAppointment "github.com/auracontrol/AC-BookingService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID    int64   `json:"serviceId"`
	TechnicianID *int64  `json:"technicianId,omitempty"` // nil - автоназначение
	StartTime    string  `json:"startTime"`              // "2026-09-15T10:00:00"
	Note         *string `json:"note,omitempty"`
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
func (r *CreateAppointmentRequest) ToUseCaseRequest(customerID int64) (*createAppointment.Request, error) {
	startTime, err := time.ParseInLocation(domain.DateTimeFormat, r.StartTime, time.Local)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		CustomerID:   customerID,
		ServiceID:    r.ServiceID,
		TechnicianID: r.TechnicianID,
		StartTime:    startTime,
		Note:         r.Note,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
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
