package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	catalogClient "github.com/auracontrol/AC-BookingService/internal/integrations/catalogservice"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	absenceRepo     AbsenceRepository
	catalogClient   CatalogServiceClient
	timeProvider    TimeProvider
	schedule        domain.BusinessSchedule
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	absenceRepo AbsenceRepository,
	catalogClient CatalogServiceClient,
	schedule domain.BusinessSchedule,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		absenceRepo:     absenceRepo,
		catalogClient:   catalogClient,
		timeProvider:    &RealTimeProvider{},
		schedule:        schedule,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Читает снимок занятости одним запросом на весь день и дальше проверяет
// окна-кандидаты в памяти, поэтому количество запросов к БД не зависит
// от числа слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем услугу с требованиями к ресурсам
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceUnavailable
	}

	domainService := service.ToDomain()

	// 3. Генерируем окна-кандидаты по рабочему календарю
	windows := generateCandidateWindows(uc.schedule, domainService.DurationMinutes, req.Date, now)
	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: no candidate windows for service=%d, date=%s",
			req.ServiceID, req.Date.Format(domain.DateFormat))
		return &Response{
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			DurationMinutes: domainService.DurationMinutes,
			Slots:           []Slot{},
		}, nil
	}

	// 4. Снапшот справочных данных: мастера и инвентарь ресурсов
	rawTechnicians, err := uc.catalogClient.GetTechniciansByService(ctx, req.ServiceID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get technicians: %v", err)
		return nil, fmt.Errorf("%w: failed to get technicians: %v", ErrInternal, err)
	}
	technicians := catalogClient.ToDomainTechnicians(rawTechnicians)

	var resources []domain.Resource
	if requiredTypes := domainService.RequiredTypes(); len(requiredTypes) > 0 {
		rawResources, err := uc.catalogClient.GetResourcesByTypes(ctx, requiredTypes)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get resources: %v", err)
			return nil, fmt.Errorf("%w: failed to get resources: %v", ErrInternal, err)
		}
		resources = catalogClient.ToDomainResources(rawResources)
	}

	// 5. Снимок занятости на весь рабочий день одним запросом
	dayStart, dayEnd := uc.schedule.WindowOnDate(req.Date)

	appointments, err := uc.appointmentRepo.GetOverlapping(ctx, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	absences, err := uc.absenceRepo.GetBlockingOverlapping(ctx, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get absences: %v", err)
		return nil, fmt.Errorf("%w: failed to get absences: %v", ErrInternal, err)
	}

	// 6. Фильтруем окна по доступности мастеров и ресурсов
	slots := calculateAvailability(
		windows,
		req.ServiceID,
		req.TechnicianID,
		technicians,
		domainService.Requirements,
		resources,
		appointments,
		absences,
	)

	uc.logger.Info("GetAvailableSlots: %d of %d windows available for service=%d, date=%s",
		len(slots), len(windows), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		DurationMinutes: domainService.DurationMinutes,
		Slots:           slots,
	}, nil
}
