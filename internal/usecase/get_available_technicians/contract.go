package get_available_technicians

import (
	"context"
	"time"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	"github.com/auracontrol/AC-BookingService/internal/integrations/catalogservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
}

// AbsenceRepository интерфейс репозитория заявок на отсутствие
type AbsenceRepository interface {
	GetBlockingOverlapping(ctx context.Context, from, to time.Time) ([]*domain.AbsenceRequest, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
	GetTechniciansByService(ctx context.Context, serviceID int64) ([]catalogservice.Technician, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
