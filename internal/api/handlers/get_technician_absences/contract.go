package get_technician_absences

import (
	"context"

	"github.com/auracontrol/AC-BookingService/internal/service/absences/models"
)

type AbsencesService interface {
	GetMyRequests(ctx context.Context, technicianID int64) (*models.AbsenceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
