package review_absence

import (
	"context"

	"github.com/auracontrol/AC-BookingService/internal/service/absences/models"
)

type AbsencesService interface {
	Review(ctx context.Context, id int64, req *models.ReviewAbsenceRequest) (*models.AbsenceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
