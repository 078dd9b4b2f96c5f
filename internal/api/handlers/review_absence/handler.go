package review_absence

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/auracontrol/AC-BookingService/internal/api/handlers"
	"github.com/auracontrol/AC-BookingService/internal/api/middleware"
	absencesService "github.com/auracontrol/AC-BookingService/internal/service/absences"
	"github.com/auracontrol/AC-BookingService/internal/service/absences/models"
)

const (
	msgInvalidAbsenceID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDecision    = "некорректное решение, ожидается APPROVED или REJECTED"
	msgAbsenceNotFound    = "заявка не найдена"
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

// Handle PUT /api/v1/admin/absence-requests/{absenceId}/review
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	absenceID, err := strconv.ParseInt(vars["absenceId"], 10, 64)
	if err != nil || absenceID <= 0 {
		h.logger.Warn("PUT /admin/absence-requests/{id}/review - Invalid absence ID: %s", vars["absenceId"])
		handlers.RespondBadRequest(w, msgInvalidAbsenceID)
		return
	}

	var req ReviewAbsenceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/absence-requests/{id}/review - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	adminID := middleware.UserID(r.Context())

	result, err := h.service.Review(r.Context(), absenceID, &models.ReviewAbsenceRequest{
		AdminID:  adminID,
		Decision: req.Decision,
	})
	if err != nil {
		switch {
		case errors.Is(err, absencesService.ErrInvalidDecision):
			h.logger.Warn("PUT /admin/absence-requests/{id}/review - Invalid decision: absence_id=%d, decision=%s",
				absenceID, req.Decision)
			handlers.RespondBadRequest(w, msgInvalidDecision)

		case errors.Is(err, absencesService.ErrAbsenceNotFound):
			h.logger.Warn("PUT /admin/absence-requests/{id}/review - Absence not found: absence_id=%d", absenceID)
			handlers.RespondNotFound(w, msgAbsenceNotFound)

		default:
			h.logger.Error("PUT /admin/absence-requests/{id}/review - Failed to review: absence_id=%d, error=%v",
				absenceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/absence-requests/{id}/review - Reviewed: absence_id=%d, decision=%s, admin_id=%d",
		absenceID, result.Status, adminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
