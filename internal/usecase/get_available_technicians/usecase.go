package get_available_technicians

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	catalogClient "github.com/auracontrol/AC-BookingService/internal/integrations/catalogservice"
	"github.com/auracontrol/AC-BookingService/internal/scheduling"
)

// UseCase use case для получения мастеров, свободных на окно
type UseCase struct {
	appointmentRepo AppointmentRepository
	absenceRepo     AbsenceRepository
	catalogClient   CatalogServiceClient
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	absenceRepo AbsenceRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		absenceRepo:     absenceRepo,
		catalogClient:   catalogClient,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных мастеров
// Окно вычисляется сервером из длительности услуги
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableTechnicians: service=%d, start=%s",
		req.ServiceID, req.StartTime.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableTechnicians: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу: длительность определяет окно
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableTechnicians: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableTechnicians: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("GetAvailableTechnicians: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceUnavailable
	}

	start := req.StartTime
	end := start.Add(time.Duration(service.DurationMinutes) * time.Minute)

	// 3. Мастера, владеющие услугой
	rawTechnicians, err := uc.catalogClient.GetTechniciansByService(ctx, req.ServiceID)
	if err != nil {
		uc.logger.Error("GetAvailableTechnicians: failed to get technicians: %v", err)
		return nil, fmt.Errorf("%w: failed to get technicians: %v", ErrInternal, err)
	}
	technicians := catalogClient.ToDomainTechnicians(rawTechnicians)

	// 4. Снимок занятости на окно
	appointments, err := uc.appointmentRepo.GetOverlapping(ctx, start, end)
	if err != nil {
		uc.logger.Error("GetAvailableTechnicians: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	absences, err := uc.absenceRepo.GetBlockingOverlapping(ctx, start, end)
	if err != nil {
		uc.logger.Error("GetAvailableTechnicians: failed to get absences: %v", err)
		return nil, fmt.Errorf("%w: failed to get absences: %v", ErrInternal, err)
	}

	// 5. Фильтруем по квалификации, занятости и отсутствиям
	available := scheduling.AvailableTechnicians(technicians, req.ServiceID, appointments, absences, start, end)

	result := make([]Technician, len(available))
	for i, tech := range available {
		result[i] = Technician{ID: tech.ID, Name: tech.Name}
	}

	uc.logger.Info("GetAvailableTechnicians: %d of %d technicians available for service=%d",
		len(result), len(technicians), req.ServiceID)

	return &Response{
		ServiceID:   req.ServiceID,
		StartTime:   start,
		EndTime:     end,
		Technicians: result,
	}, nil
}
