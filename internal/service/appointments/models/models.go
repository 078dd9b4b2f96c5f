package models

import (
	"errors"
	"time"

	"github.com/auracontrol/AC-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	ActorID int64 // ID инициатора (из заголовков авторизации)
}

// GetAdminAppointmentsRequest запрос админского списка записей
type GetAdminAppointmentsRequest struct {
	Status *string // Фильтр по статусу (опционально)
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID           int64  `json:"id"`
	CustomerID   int64  `json:"customerId"`
	TechnicianID int64  `json:"technicianId"`
	ServiceID    int64  `json:"serviceId"`
	StartTime    string `json:"startTime"` // ISO 8601
	EndTime      string `json:"endTime"`   // ISO 8601
	Status       string `json:"status"`

	// Снапшот данных услуги на момент записи
	ServiceName string   `json:"serviceName"`
	FinalPrice  *float64 `json:"finalPrice,omitempty"`
	Note        *string  `json:"note,omitempty"`

	ResourceIDs []int64 `json:"resourceIds,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:           a.ID,
		CustomerID:   a.CustomerID,
		TechnicianID: a.TechnicianID,
		ServiceID:    a.ServiceID,
		StartTime:    a.StartTime.Format(time.RFC3339),
		EndTime:      a.EndTime.Format(time.RFC3339),
		Status:       string(a.Status),
		ServiceName:  a.ServiceName,
		FinalPrice:   a.FinalPrice,
		Note:         a.Note,
		ResourceIDs:  a.ResourceIDs,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
