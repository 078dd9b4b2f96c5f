package absences

import (
	"context"
	"time"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	"github.com/auracontrol/AC-BookingService/internal/integrations/notifyservice"
)

// AbsenceRepository интерфейс репозитория заявок на отсутствие
type AbsenceRepository interface {
	Create(ctx context.Context, req *domain.AbsenceRequest) (*domain.AbsenceRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.AbsenceRequest, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AbsenceStatus) error
	GetBlockingForTechnician(ctx context.Context, technicianID int64, from, to time.Time) ([]*domain.AbsenceRequest, error)
	GetByTechnician(ctx context.Context, technicianID int64) ([]*domain.AbsenceRequest, error)
	ListByStatus(ctx context.Context, status *domain.AbsenceStatus) ([]*domain.AbsenceRequest, error)
}

// Notifier интерфейс для асинхронной доставки уведомлений
type Notifier interface {
	SendAsync(event notifyservice.Event)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
