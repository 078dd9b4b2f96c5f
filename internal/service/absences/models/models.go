package models

import (
	"errors"
	"time"

	"github.com/auracontrol/AC-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid absence status")
)

// Request модели

// SubmitAbsenceRequest запрос на подачу заявки на отсутствие
type SubmitAbsenceRequest struct {
	TechnicianID int64     // ID мастера (из заголовков авторизации)
	StartDate    time.Time // Начало периода отсутствия
	EndDate      time.Time // Конец периода отсутствия
	Reason       string    // Причина
}

// ReviewAbsenceRequest запрос на рассмотрение заявки администратором
type ReviewAbsenceRequest struct {
	AdminID  int64  // ID администратора (для логирования)
	Decision string // APPROVED или REJECTED
}

// GetAdminAbsencesRequest запрос админского списка заявок
type GetAdminAbsencesRequest struct {
	Status *string // Фильтр по статусу (опционально)
}

// Response модели

// AbsenceResponse ответ с данными заявки
type AbsenceResponse struct {
	ID           int64     `json:"id"`
	TechnicianID int64     `json:"technicianId"`
	StartDate    string    `json:"startDate"` // ISO 8601
	EndDate      string    `json:"endDate"`   // ISO 8601
	Reason       string    `json:"reason"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AbsenceListResponse ответ со списком заявок
type AbsenceListResponse struct {
	Requests []AbsenceResponse `json:"requests"`
}

// Методы конвертации

// FromDomainAbsence конвертирует domain модель в DTO
func FromDomainAbsence(r *domain.AbsenceRequest) *AbsenceResponse {
	if r == nil {
		return nil
	}

	return &AbsenceResponse{
		ID:           r.ID,
		TechnicianID: r.TechnicianID,
		StartDate:    r.StartDate.Format(time.RFC3339),
		EndDate:      r.EndDate.Format(time.RFC3339),
		Reason:       r.Reason,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
	}
}

// FromDomainAbsenceList конвертирует список domain моделей в DTO
func FromDomainAbsenceList(requests []*domain.AbsenceRequest) *AbsenceListResponse {
	if requests == nil {
		return &AbsenceListResponse{
			Requests: []AbsenceResponse{},
		}
	}

	resp := &AbsenceListResponse{
		Requests: make([]AbsenceResponse, len(requests)),
	}

	for i, req := range requests {
		if absResp := FromDomainAbsence(req); absResp != nil {
			resp.Requests[i] = *absResp
		}
	}

	return resp
}

// ToDomainAbsenceStatus конвертирует строку в domain.AbsenceStatus с валидацией
func ToDomainAbsenceStatus(status string) (domain.AbsenceStatus, error) {
	s := domain.AbsenceStatus(status)
	switch s {
	case domain.AbsencePending, domain.AbsenceApproved, domain.AbsenceRejected:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}
