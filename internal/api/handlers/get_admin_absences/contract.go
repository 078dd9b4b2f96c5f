package get_admin_absences

import (
	"context"

	"github.com/auracontrol/AC-BookingService/internal/service/absences/models"
)

type AbsencesService interface {
	GetForAdmin(ctx context.Context, req *models.GetAdminAbsencesRequest) (*models.AbsenceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
