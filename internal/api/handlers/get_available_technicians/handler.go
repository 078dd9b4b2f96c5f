package get_available_technicians

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/auracontrol/AC-BookingService/internal/api/handlers"
	getAvailableTechnicians "github.com/auracontrol/AC-BookingService/internal/usecase/get_available_technicians"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgMissingStartTime   = "время начала обязательно"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается YYYY-MM-DDTHH:MM:SS"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceUnavailable = "услуга недоступна"
)

type Handler struct {
	useCase GetAvailableTechniciansUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableTechniciansUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/available-technicians
// Query params: startTime (required, YYYY-MM-DDTHH:MM:SS)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-technicians - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	startTimeStr := r.URL.Query().Get("startTime")
	if startTimeStr == "" {
		h.logger.Warn("GET /services/{id}/available-technicians - Missing start time")
		handlers.RespondBadRequest(w, msgMissingStartTime)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceID, startTimeStr)
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-technicians - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableTechnicians.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/available-technicians - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableTechnicians.ErrServiceUnavailable):
			h.logger.Warn("GET /services/{id}/available-technicians - Service unavailable: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgServiceUnavailable)

		case errors.Is(err, getAvailableTechnicians.ErrInvalidInput):
			h.logger.Warn("GET /services/{id}/available-technicians - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)

		default:
			h.logger.Error("GET /services/{id}/available-technicians - Failed to get technicians: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{id}/available-technicians - Technicians retrieved: service_id=%d, count=%d",
		serviceID, len(result.Technicians))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
