package get_customer_appointments

import (
	"net/http"

	"github.com/auracontrol/AC-BookingService/internal/api/handlers"
	"github.com/auracontrol/AC-BookingService/internal/api/middleware"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleUpcoming GET /api/v1/appointments/upcoming
func (h *Handler) HandleUpcoming(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.UserID(r.Context())

	result, err := h.service.GetUpcoming(r.Context(), customerID)
	if err != nil {
		h.logger.Error("GET /appointments/upcoming - Failed to get appointments: customer_id=%d, error=%v",
			customerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments/upcoming - Retrieved %d appointments: customer_id=%d",
		len(result.Appointments), customerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleHistory GET /api/v1/appointments/history
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.UserID(r.Context())

	result, err := h.service.GetHistory(r.Context(), customerID)
	if err != nil {
		h.logger.Error("GET /appointments/history - Failed to get appointments: customer_id=%d, error=%v",
			customerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments/history - Retrieved %d appointments: customer_id=%d",
		len(result.Appointments), customerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
