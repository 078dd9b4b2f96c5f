package appointments

import (
	"context"
	"time"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	"github.com/auracontrol/AC-BookingService/internal/integrations/notifyservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetUpcomingByCustomer(ctx context.Context, customerID int64, now time.Time) ([]*domain.Appointment, error)
	GetHistoryByCustomer(ctx context.Context, customerID int64, now time.Time) ([]*domain.Appointment, error)
	ListByStatus(ctx context.Context, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// Notifier интерфейс для асинхронной доставки уведомлений
type Notifier interface {
	SendAsync(event notifyservice.Event)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
