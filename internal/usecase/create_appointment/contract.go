package create_appointment

import (
	"context"
	"math/rand"
	"time"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	"github.com/auracontrol/AC-BookingService/internal/integrations/catalogservice"
	"github.com/auracontrol/AC-BookingService/internal/integrations/notifyservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
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
	GetResourcesByTypes(ctx context.Context, resourceTypes []string) ([]catalogservice.Resource, error)
}

// Notifier интерфейс для асинхронной доставки уведомлений
type Notifier interface {
	SendAsync(event notifyservice.Event)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// TechnicianSelector выбирает мастера из списка доступных при автоназначении
type TechnicianSelector interface {
	Pick(available []domain.Technician) domain.Technician
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

// RandomSelector равновероятно выбирает одного из доступных мастеров,
// чтобы записи с автоназначением распределялись по персоналу
type RandomSelector struct{}

// Pick возвращает случайного мастера из списка
func (s *RandomSelector) Pick(available []domain.Technician) domain.Technician {
	return available[rand.Intn(len(available))]
}
