package submit_absence

import (
	"errors"
	"net/http"

	"github.com/auracontrol/AC-BookingService/internal/api/handlers"
	"github.com/auracontrol/AC-BookingService/internal/api/middleware"
	absencesService "github.com/auracontrol/AC-BookingService/internal/service/absences"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDates       = "некорректный формат дат, ожидается YYYY-MM-DDTHH:MM:SS"
	msgOverlappingRequest = "на этот период уже есть заявка"
)

type Handler struct {
	service AbsencesService
	logger  Logger
}

func NewHandler(service AbsencesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/absence-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	technicianID := middleware.UserID(r.Context())

	var req SubmitAbsenceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /absence-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(technicianID)
	if err != nil {
		h.logger.Warn("POST /absence-requests - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.service.Submit(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, absencesService.ErrOverlappingRequest):
			h.logger.Warn("POST /absence-requests - Overlapping request: technician_id=%d", technicianID)
			handlers.RespondConflict(w, msgOverlappingRequest)

		case errors.Is(err, absencesService.ErrInvalidInput):
			h.logger.Warn("POST /absence-requests - Invalid input: technician_id=%d, error=%v", technicianID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /absence-requests - Failed to submit: technician_id=%d, error=%v",
				technicianID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /absence-requests - Request submitted: request_id=%d, technician_id=%d",
		result.ID, technicianID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
