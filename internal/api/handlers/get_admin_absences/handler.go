package get_admin_absences

import (
	"errors"
	"net/http"

	"github.com/auracontrol/AC-BookingService/internal/api/handlers"
	absencesService "github.com/auracontrol/AC-BookingService/internal/service/absences"
	"github.com/auracontrol/AC-BookingService/internal/service/absences/models"
	"github.com/auracontrol/AC-BookingService/pkg/ptr"
)

const (
	msgInvalidStatus = "некорректный статус заявки"
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

// Handle GET /api/v1/admin/absence-requests
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.GetAdminAbsencesRequest{}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = ptr.Ptr(statusStr)
	}

	result, err := h.service.GetForAdmin(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, absencesService.ErrInvalidInput):
			h.logger.Warn("GET /admin/absence-requests - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /admin/absence-requests - Failed to get requests: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/absence-requests - Retrieved %d requests", len(result.Requests))
	handlers.RespondJSON(w, http.StatusOK, result)
}
