package reschedule_appointment

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

// UseCase use case для переноса записи
type UseCase struct {
	appointmentRepo     AppointmentRepository
	absenceRepo         AbsenceRepository
	catalogClient       CatalogServiceClient
	notifier            Notifier
	txManager           TransactionManager
	timeProvider        TimeProvider
	schedule            domain.BusinessSchedule
	cancelNoticeMinutes int
	logger              Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	absenceRepo AbsenceRepository,
	catalogClient CatalogServiceClient,
	notifier Notifier,
	txManager TransactionManager,
	schedule domain.BusinessSchedule,
	cancelNoticeMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:     appointmentRepo,
		absenceRepo:         absenceRepo,
		catalogClient:       catalogClient,
		notifier:            notifier,
		txManager:           txManager,
		timeProvider:        &RealTimeProvider{},
		schedule:            schedule,
		cancelNoticeMinutes: cancelNoticeMinutes,
		logger:              logger,
	}
}

// Execute выполняет use case переноса записи
// Мастер при переносе сохраняется, ресурсы перераспределяются под новое окно.
// Проверки занятости и обновление выполняются в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: id=%d, customer=%d, newStart=%s",
		req.AppointmentID, req.CustomerID, req.NewStartTime.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Новое время начала должно быть в будущем
	now := uc.timeProvider.Now()
	if !req.NewStartTime.After(now) {
		uc.logger.Warn("RescheduleAppointment: new start time %s is in the past",
			req.NewStartTime.Format(domain.DateTimeFormat))
		return nil, ErrTimeInPast
	}

	// 3. Читаем запись для предварительных проверок и получения услуги.
	// Статус и владение перепроверяются внутри транзакции
	current, err := uc.getAppointment(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Получаем услугу: длительность и требования к ресурсам
	service, err := uc.getService(ctx, current.ServiceID)
	if err != nil {
		return nil, err
	}

	newStart := req.NewStartTime
	newEnd := newStart.Add(time.Duration(service.DurationMinutes) * time.Minute)

	// 5. Валидация нового окна по рабочему календарю
	if err := validateWindow(newStart, newEnd, uc.schedule); err != nil {
		uc.logger.Warn("RescheduleAppointment: window validation failed: %v", err)
		return nil, err
	}

	// 6. Инвентарь требуемых типов ресурсов
	resources, err := uc.getResources(ctx, service)
	if err != nil {
		return nil, err
	}

	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Перечитываем запись: статус мог измениться
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		if err := uc.checkChangeable(appt, now); err != nil {
			return err
		}

		// 6.2. Снимок занятости на новое окно, собственная запись
		// исключается - её мастер и ресурсы освобождаются переносом
		appointments, err := uc.appointmentRepo.GetOverlapping(txCtx, newStart, newEnd)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get overlapping appointments: %v", err)
			return fmt.Errorf("%w: failed to get overlapping appointments: %v", ErrInternal, err)
		}
		appointments = excludeAppointment(appointments, appt.ID)

		absences, err := uc.absenceRepo.GetBlockingOverlapping(txCtx, newStart, newEnd)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get blocking absences: %v", err)
			return fmt.Errorf("%w: failed to get blocking absences: %v", ErrInternal, err)
		}

		// 6.3. Назначенный мастер должен быть свободен в новом окне
		if scheduling.TechnicianBusy(appointments, appt.TechnicianID, newStart, newEnd) {
			uc.logger.Warn("RescheduleAppointment: technician id=%d is busy in new window", appt.TechnicianID)
			return ErrTechnicianBusy
		}
		if scheduling.TechnicianOnLeave(absences, appt.TechnicianID, newStart, newEnd) {
			uc.logger.Warn("RescheduleAppointment: technician id=%d is on leave in new window", appt.TechnicianID)
			return ErrTechnicianOnLeave
		}

		// 6.4. Перераспределяем единицы ресурсов под новое окно
		resourceIDs, err := scheduling.Allocate(service.Requirements, resources, appointments, newStart, newEnd)
		if err != nil {
			if errors.Is(err, scheduling.ErrInsufficientResources) {
				uc.logger.Warn("RescheduleAppointment: %v", err)
				return fmt.Errorf("%w: %v", ErrInsufficientResources, err)
			}
			uc.logger.Error("RescheduleAppointment: failed to allocate resources: %v", err)
			return fmt.Errorf("%w: failed to allocate resources: %v", ErrInternal, err)
		}

		// 6.5. Атомарно переносим запись и заменяем резервы
		if err := uc.appointmentRepo.UpdateSchedule(txCtx, appt.ID, newStart, newEnd, resourceIDs); err != nil {
			if errors.Is(err, apptRepo.ErrTechnicianConflict) {
				uc.logger.Warn("RescheduleAppointment: technician %d window conflict on update", appt.TechnicianID)
				return ErrTechnicianBusy
			}
			uc.logger.Error("RescheduleAppointment: failed to update schedule: %v", err)
			return fmt.Errorf("%w: failed to update schedule: %v", ErrInternal, err)
		}

		appt.StartTime = newStart
		appt.EndTime = newEnd
		appt.ResourceIDs = resourceIDs
		result = appt
		return nil
	})

	if err != nil {
		// Исчерпанные ретраи сериализации - тоже конфликт бронирования,
		// а не внутренняя ошибка
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("RescheduleAppointment: serialization retries exhausted: %v", err)
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: successfully rescheduled appointment id=%d to %s",
		result.ID, newStart.Format(domain.DateTimeFormat))

	uc.notifier.SendAsync(notifyservice.Event{
		Type:          notifyservice.EventAppointmentRescheduled,
		AppointmentID: result.ID,
		CustomerID:    result.CustomerID,
		TechnicianID:  result.TechnicianID,
		StartTime:     result.StartTime,
	})

	return toResponse(result), nil
}

// getAppointment читает запись и проверяет владение
func (uc *UseCase) getAppointment(ctx context.Context, req *Request) (*domain.Appointment, error) {
	appt, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if appt.CustomerID != req.CustomerID {
		uc.logger.Warn("RescheduleAppointment: customer=%d tried to reschedule appointment id=%d of customer=%d",
			req.CustomerID, appt.ID, appt.CustomerID)
		return nil, ErrAccessDenied
	}

	return appt, nil
}

// checkChangeable проверяет статус записи и минимальный интервал до начала
func (uc *UseCase) checkChangeable(appt *domain.Appointment, now time.Time) error {
	if !appt.CanBeRescheduled() {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d has status %s", appt.ID, appt.Status)
		return ErrInvalidStatus
	}

	deadline := appt.StartTime.Add(-time.Duration(uc.cancelNoticeMinutes) * time.Minute)
	if now.After(deadline) {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d starts at %s, change deadline passed",
			appt.ID, appt.StartTime.Format(domain.DateTimeFormat))
		return ErrTooLateToChange
	}

	return nil
}

// getService получает услугу из каталога
func (uc *UseCase) getService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	service, err := uc.catalogClient.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("RescheduleAppointment: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	return service.ToDomain(), nil
}

// getResources получает инвентарь требуемых типов ресурсов
func (uc *UseCase) getResources(ctx context.Context, service *domain.Service) ([]domain.Resource, error) {
	requiredTypes := service.RequiredTypes()
	if len(requiredTypes) == 0 {
		return nil, nil
	}

	resources, err := uc.catalogClient.GetResourcesByTypes(ctx, requiredTypes)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to get resources: %v", err)
		return nil, fmt.Errorf("%w: failed to get resources: %v", ErrInternal, err)
	}

	return catalogClient.ToDomainResources(resources), nil
}

// excludeAppointment убирает запись из снимка занятости
func excludeAppointment(appointments []*domain.Appointment, id int64) []*domain.Appointment {
	filtered := make([]*domain.Appointment, 0, len(appointments))
	for _, appt := range appointments {
		if appt.ID != id {
			filtered = append(filtered, appt)
		}
	}
	return filtered
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
