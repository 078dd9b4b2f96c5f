package get_customer_appointments

import (
	"context"

	"github.com/auracontrol/AC-BookingService/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetUpcoming(ctx context.Context, customerID int64) (*models.AppointmentListResponse, error)
	GetHistory(ctx context.Context, customerID int64) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
