package reschedule_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/auracontrol/AC-BookingService/internal/api/handlers"
	"github.com/auracontrol/AC-BookingService/internal/api/middleware"
	rescheduleAppointment "github.com/auracontrol/AC-BookingService/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidAppointmentID  = "некорректный ID записи"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidStartTime      = "некорректный формат времени начала, ожидается YYYY-MM-DDTHH:MM:SS"
	msgAppointmentNotFound   = "запись не найдена"
	msgAccessDenied          = "нет прав на перенос этой записи"
	msgInvalidStatus         = "запись нельзя перенести в текущем статусе"
	msgTooLateToChange       = "слишком поздно для переноса записи"
	msgTimeInPast            = "новое время начала уже прошло"
	msgOutsideBusinessHours  = "выбранное время вне рабочих часов салона"
	msgInvalidTimeSlot       = "время начала не выровнено по сетке слотов"
	msgTechnicianBusy        = "мастер занят в выбранное время"
	msgTechnicianOnLeave     = "мастер отсутствует в выбранное время"
	msgInsufficientResources = "нет свободных ресурсов на выбранное время"
	msgSlotTaken             = "выбранное время только что заняли, попробуйте другое"
	msgServiceNotFound       = "услуга не найдена"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	customerID := middleware.UserID(r.Context())

	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID, customerID)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id}/reschedule - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, rescheduleAppointment.ErrAccessDenied):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Access denied: appointment_id=%d, customer_id=%d",
				appointmentID, customerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, rescheduleAppointment.ErrInvalidStatus):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Invalid status: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgInvalidStatus)

		case errors.Is(err, rescheduleAppointment.ErrTooLateToChange):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Too late to change: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgTooLateToChange)

		case errors.Is(err, rescheduleAppointment.ErrTimeInPast):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Time in past: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgTimeInPast)

		case errors.Is(err, rescheduleAppointment.ErrOutsideBusinessHours):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Outside business hours: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgOutsideBusinessHours)

		case errors.Is(err, rescheduleAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Invalid time slot: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, rescheduleAppointment.ErrTechnicianBusy):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Technician busy: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgTechnicianBusy)

		case errors.Is(err, rescheduleAppointment.ErrTechnicianOnLeave):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Technician on leave: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgTechnicianOnLeave)

		case errors.Is(err, rescheduleAppointment.ErrInsufficientResources):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Insufficient resources: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgInsufficientResources)

		case errors.Is(err, rescheduleAppointment.ErrSlotTaken):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Slot taken concurrently: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, rescheduleAppointment.ErrServiceNotFound):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Service not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/{id}/reschedule - Invalid input: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /appointments/{id}/reschedule - Failed to reschedule: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id}/reschedule - Appointment rescheduled: appointment_id=%d, customer_id=%d",
		appointmentID, customerID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
