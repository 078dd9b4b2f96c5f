package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	apptRepo "github.com/auracontrol/AC-BookingService/internal/infra/storage/appointment"
	catalogClient "github.com/auracontrol/AC-BookingService/internal/integrations/catalogservice"
	"github.com/auracontrol/AC-BookingService/internal/integrations/notifyservice"
	"github.com/auracontrol/AC-BookingService/internal/scheduling"
	"github.com/auracontrol/AC-BookingService/pkg/txmanager"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	absenceRepo     AbsenceRepository
	catalogClient   CatalogServiceClient
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	selector        TechnicianSelector
	schedule        domain.BusinessSchedule
	autoConfirm     bool
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	absenceRepo AbsenceRepository,
	catalogClient CatalogServiceClient,
	notifier Notifier,
	txManager TransactionManager,
	schedule domain.BusinessSchedule,
	autoConfirm bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		absenceRepo:     absenceRepo,
		catalogClient:   catalogClient,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		selector:        &RandomSelector{},
		schedule:        schedule,
		autoConfirm:     autoConfirm,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// выбор мастера, резервирование ресурсов и вставка записи атомарны
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: customer=%d, service=%d, start=%s",
		req.CustomerID, req.ServiceID, req.StartTime.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Время начала должно быть в будущем
	now := uc.timeProvider.Now()
	if !req.StartTime.After(now) {
		uc.logger.Warn("CreateAppointment: start time %s is in the past",
			req.StartTime.Format(domain.DateTimeFormat))
		return nil, ErrTimeInPast
	}

	// 3. Получаем услугу с требованиями к ресурсам
	service, err := uc.getService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	// 4. Окно записи: конец вычисляется сервером из длительности услуги
	start := req.StartTime
	end := start.Add(time.Duration(service.DurationMinutes) * time.Minute)

	// 5. Валидация окна по рабочему календарю
	if err := validateWindow(start, end, uc.schedule); err != nil {
		uc.logger.Warn("CreateAppointment: window validation failed: %v", err)
		return nil, err
	}

	// 6. Снапшот справочных данных: мастера и инвентарь ресурсов
	technicians, err := uc.getTechnicians(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	resources, err := uc.getResources(ctx, service)
	if err != nil {
		return nil, err
	}

	status := domain.StatusPending
	if uc.autoConfirm {
		status = domain.StatusConfirmed
	}

	var result *domain.Appointment

	// 7. Выбор мастера, резервирование ресурсов и вставка - в сериализуемой
	// транзакции, чтобы конкурирующие записи не увидели один и тот же
	// свободный слот
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Снимок занятости на окно
		appointments, err := uc.appointmentRepo.GetOverlapping(txCtx, start, end)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get overlapping appointments: %v", err)
			return fmt.Errorf("%w: failed to get overlapping appointments: %v", ErrInternal, err)
		}

		absences, err := uc.absenceRepo.GetBlockingOverlapping(txCtx, start, end)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get blocking absences: %v", err)
			return fmt.Errorf("%w: failed to get blocking absences: %v", ErrInternal, err)
		}

		// 7.2. Мастер: либо проверяем выбранного, либо назначаем из доступных
		technicianID, err := uc.resolveTechnician(req, technicians, appointments, absences, start, end)
		if err != nil {
			return err
		}

		// 7.3. Резервируем конкретные единицы ресурсов
		resourceIDs, err := scheduling.Allocate(service.Requirements, resources, appointments, start, end)
		if err != nil {
			if errors.Is(err, scheduling.ErrInsufficientResources) {
				uc.logger.Warn("CreateAppointment: %v", err)
				return fmt.Errorf("%w: %v", ErrInsufficientResources, err)
			}
			uc.logger.Error("CreateAppointment: failed to allocate resources: %v", err)
			return fmt.Errorf("%w: failed to allocate resources: %v", ErrInternal, err)
		}

		// 7.4. Создаем запись со снапшотом данных услуги
		appt := &domain.Appointment{
			CustomerID:   req.CustomerID,
			TechnicianID: technicianID,
			ServiceID:    req.ServiceID,
			StartTime:    start,
			EndTime:      end,
			Status:       status,
			ServiceName:  service.Name,
			FinalPrice:   &service.Price,
			Note:         req.Note,
			ResourceIDs:  resourceIDs,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			// Exclusion constraint - последняя линия защиты: конкурирующая
			// транзакция успела занять мастера
			if errors.Is(err, apptRepo.ErrTechnicianConflict) {
				uc.logger.Warn("CreateAppointment: technician %d window conflict on insert", technicianID)
				return ErrTechnicianBusy
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Исчерпанные ретраи сериализации - тоже конфликт бронирования,
		// а не внутренняя ошибка
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateAppointment: serialization retries exhausted: %v", err)
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, technician=%d, status=%s",
		result.ID, result.TechnicianID, result.Status)

	// 8. Уведомление после фиксации транзакции, fire-and-forget
	uc.notifier.SendAsync(notifyservice.Event{
		Type:          notifyservice.EventAppointmentCreated,
		AppointmentID: result.ID,
		CustomerID:    result.CustomerID,
		TechnicianID:  result.TechnicianID,
		StartTime:     result.StartTime,
	})

	return toResponse(result), nil
}

// getService получает услугу из каталога и проверяет её доступность
func (uc *UseCase) getService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	service, err := uc.catalogClient.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("CreateAppointment: service id=%d is not active", serviceID)
		return nil, ErrServiceUnavailable
	}

	return service.ToDomain(), nil
}

// getTechnicians получает мастеров, владеющих услугой
func (uc *UseCase) getTechnicians(ctx context.Context, serviceID int64) ([]domain.Technician, error) {
	technicians, err := uc.catalogClient.GetTechniciansByService(ctx, serviceID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get technicians for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get technicians: %v", ErrInternal, err)
	}

	return catalogClient.ToDomainTechnicians(technicians), nil
}

// getResources получает инвентарь требуемых типов ресурсов
func (uc *UseCase) getResources(ctx context.Context, service *domain.Service) ([]domain.Resource, error) {
	requiredTypes := service.RequiredTypes()
	if len(requiredTypes) == 0 {
		return nil, nil
	}

	resources, err := uc.catalogClient.GetResourcesByTypes(ctx, requiredTypes)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get resources: %v", err)
		return nil, fmt.Errorf("%w: failed to get resources: %v", ErrInternal, err)
	}

	return catalogClient.ToDomainResources(resources), nil
}

// resolveTechnician проверяет выбранного мастера либо назначает свободного
func (uc *UseCase) resolveTechnician(
	req *Request,
	technicians []domain.Technician,
	appointments []*domain.Appointment,
	absences []*domain.AbsenceRequest,
	start, end time.Time,
) (int64, error) {
	if req.TechnicianID != nil {
		return uc.checkRequestedTechnician(*req.TechnicianID, req.ServiceID, technicians, appointments, absences, start, end)
	}

	available := scheduling.AvailableTechnicians(technicians, req.ServiceID, appointments, absences, start, end)
	if len(available) == 0 {
		uc.logger.Warn("CreateAppointment: no technicians available for service=%d in window", req.ServiceID)
		return 0, ErrNoTechniciansAvailable
	}

	picked := uc.selector.Pick(available)
	uc.logger.Info("CreateAppointment: auto-assigned technician id=%d (%d available)", picked.ID, len(available))
	return picked.ID, nil
}

// checkRequestedTechnician проверяет, что выбранный клиентом мастер
// квалифицирован и свободен в окне
func (uc *UseCase) checkRequestedTechnician(
	technicianID int64,
	serviceID int64,
	technicians []domain.Technician,
	appointments []*domain.Appointment,
	absences []*domain.AbsenceRequest,
	start, end time.Time,
) (int64, error) {
	var technician *domain.Technician
	for i := range technicians {
		if technicians[i].ID == technicianID {
			technician = &technicians[i]
			break
		}
	}

	if technician == nil {
		uc.logger.Warn("CreateAppointment: technician id=%d not found among service performers", technicianID)
		return 0, ErrTechnicianNotFound
	}

	if !technician.Enabled || !technician.CanPerform(serviceID) {
		uc.logger.Warn("CreateAppointment: technician id=%d is not qualified for service=%d", technicianID, serviceID)
		return 0, ErrTechnicianNotQualified
	}

	if scheduling.TechnicianBusy(appointments, technicianID, start, end) {
		uc.logger.Warn("CreateAppointment: technician id=%d is busy in window", technicianID)
		return 0, ErrTechnicianBusy
	}

	if scheduling.TechnicianOnLeave(absences, technicianID, start, end) {
		uc.logger.Warn("CreateAppointment: technician id=%d is on leave in window", technicianID)
		return 0, ErrTechnicianOnLeave
	}

	return technicianID, nil
}

func toResponse(appt *domain.Appointment) *Response {
	return &Response{
		ID:           appt.ID,
		CustomerID:   appt.CustomerID,
		TechnicianID: appt.TechnicianID,
		ServiceID:    appt.ServiceID,
		StartTime:    appt.StartTime,
		EndTime:      appt.EndTime,
		Status:       string(appt.Status),
		ServiceName:  appt.ServiceName,
		FinalPrice:   appt.FinalPrice,
		Note:         appt.Note,
		ResourceIDs:  appt.ResourceIDs,
		CreatedAt:    appt.CreatedAt,
		UpdatedAt:    appt.UpdatedAt,
	}
}
