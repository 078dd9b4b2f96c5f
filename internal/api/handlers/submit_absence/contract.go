package submit_absence

import (
	"context"

	"github.com/auracontrol/AC-BookingService/internal/service/absences/models"
)

type AbsencesService interface {
	Submit(ctx context.Context, req *models.SubmitAbsenceRequest) (*models.AbsenceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
