package get_admin_appointments

import (
	"context"

	"github.com/auracontrol/AC-BookingService/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetForAdmin(ctx context.Context, req *models.GetAdminAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
