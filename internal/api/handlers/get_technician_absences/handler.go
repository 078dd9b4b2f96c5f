package get_technician_absences

import (
	"net/http"

	"github.com/auracontrol/AC-BookingService/internal/api/handlers"
	"github.com/auracontrol/AC-BookingService/internal/api/middleware"
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

// Handle GET /api/v1/technicians/me/absence-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	technicianID := middleware.UserID(r.Context())

	result, err := h.service.GetMyRequests(r.Context(), technicianID)
	if err != nil {
		h.logger.Error("GET /technicians/me/absence-requests - Failed to get requests: technician_id=%d, error=%v",
			technicianID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /technicians/me/absence-requests - Retrieved %d requests for technician_id=%d",
		len(result.Requests), technicianID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
