package create_appointment

import (
	"errors"
	"net/http"

	"github.com/auracontrol/AC-BookingService/internal/api/handlers"
	"github.com/auracontrol/AC-BookingService/internal/api/middleware"
	createAppointment "github.com/auracontrol/AC-BookingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidStartTime       = "некорректный формат времени начала, ожидается YYYY-MM-DDTHH:MM:SS"
	msgServiceNotFound        = "услуга не найдена"
	msgServiceUnavailable     = "услуга недоступна"
	msgTechnicianNotFound     = "мастер не найден"
	msgTechnicianNotQualified = "мастер не выполняет эту услугу"
	msgTechnicianBusy         = "мастер занят в выбранное время"
	msgTechnicianOnLeave      = "мастер отсутствует в выбранное время"
	msgNoTechnicians          = "нет свободных мастеров на выбранное время"
	msgInsufficientResources  = "нет свободных ресурсов на выбранное время"
	msgSlotTaken              = "выбранное время только что заняли, попробуйте другое"
	msgTimeInPast             = "время начала уже прошло"
	msgOutsideBusinessHours   = "выбранное время вне рабочих часов салона"
	msgInvalidTimeSlot        = "время начала не выровнено по сетке слотов"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.UserID(r.Context())

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceUnavailable):
			h.logger.Warn("POST /appointments - Service unavailable: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceUnavailable)

		case errors.Is(err, createAppointment.ErrTechnicianNotFound):
			h.logger.Warn("POST /appointments - Technician not found: customer_id=%d", customerID)
			handlers.RespondNotFound(w, msgTechnicianNotFound)

		case errors.Is(err, createAppointment.ErrTechnicianNotQualified):
			h.logger.Warn("POST /appointments - Technician not qualified: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgTechnicianNotQualified)

		case errors.Is(err, createAppointment.ErrTechnicianBusy):
			h.logger.Warn("POST /appointments - Technician busy: customer_id=%d", customerID)
			handlers.RespondConflict(w, msgTechnicianBusy)

		case errors.Is(err, createAppointment.ErrTechnicianOnLeave):
			h.logger.Warn("POST /appointments - Technician on leave: customer_id=%d", customerID)
			handlers.RespondConflict(w, msgTechnicianOnLeave)

		case errors.Is(err, createAppointment.ErrNoTechniciansAvailable):
			h.logger.Warn("POST /appointments - No technicians available: customer_id=%d", customerID)
			handlers.RespondConflict(w, msgNoTechnicians)

		case errors.Is(err, createAppointment.ErrInsufficientResources):
			h.logger.Warn("POST /appointments - Insufficient resources: customer_id=%d", customerID)
			handlers.RespondConflict(w, msgInsufficientResources)

		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken concurrently: customer_id=%d", customerID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createAppointment.ErrTimeInPast):
			h.logger.Warn("POST /appointments - Time in past: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgTimeInPast)

		case errors.Is(err, createAppointment.ErrOutsideBusinessHours):
			h.logger.Warn("POST /appointments - Outside business hours: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgOutsideBusinessHours)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: customer_id=%d, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, customer_id=%d",
		result.ID, customerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
