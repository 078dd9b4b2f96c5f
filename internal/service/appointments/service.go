package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	apptRepo "github.com/auracontrol/AC-BookingService/internal/infra/storage/appointment"
	"github.com/auracontrol/AC-BookingService/internal/integrations/notifyservice"
	"github.com/auracontrol/AC-BookingService/internal/service/appointments/models"
)

// Service сервис жизненного цикла записей: чтение, подтверждение,
// завершение и отмена. Создание и перенос выполняются отдельными
// usecase - там требуется пересчёт доступности
type Service struct {
	appointmentRepo     AppointmentRepository
	notifier            Notifier
	txManager           TransactionManager
	timeProvider        TimeProvider
	cancelNoticeMinutes int
	logger              Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	notifier Notifier,
	txManager TransactionManager,
	cancelNoticeMinutes int,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo:     appointmentRepo,
		notifier:            notifier,
		txManager:           txManager,
		timeProvider:        &RealTimeProvider{},
		cancelNoticeMinutes: cancelNoticeMinutes,
		logger:              logger,
	}
}

// GetByID получает запись по ID
// Клиент видит только свои записи, администратор - любые
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64, isAdmin bool) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for actor=%d", id, actorID)

	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && appt.CustomerID != actorID && appt.TechnicianID != actorID {
		s.logger.Warn("GetByID: access denied for actor=%d to appointment id=%d", actorID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt), nil
}

// GetUpcoming получает будущие неотменённые записи клиента
func (s *Service) GetUpcoming(ctx context.Context, customerID int64) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUpcoming: fetching upcoming appointments for customer=%d", customerID)

	now := s.timeProvider.Now()
	appointments, err := s.appointmentRepo.GetUpcomingByCustomer(ctx, customerID, now)
	if err != nil {
		s.logger.Error("GetUpcoming: repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetUpcoming - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUpcoming: fetched %d appointments for customer=%d", len(appointments), customerID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetHistory получает прошедшие записи клиента, включая отменённые
func (s *Service) GetHistory(ctx context.Context, customerID int64) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetHistory: fetching appointment history for customer=%d", customerID)

	now := s.timeProvider.Now()
	appointments, err := s.appointmentRepo.GetHistoryByCustomer(ctx, customerID, now)
	if err != nil {
		s.logger.Error("GetHistory: repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetHistory - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetHistory: fetched %d appointments for customer=%d", len(appointments), customerID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetForAdmin получает записи с опциональным фильтром по статусу
// Доступно только администраторам
func (s *Service) GetForAdmin(ctx context.Context, req *models.GetAdminAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetForAdmin: fetching appointments, status=%v", req.Status)

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetForAdmin: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.ListByStatus(ctx, domainStatus)
	if err != nil {
		s.logger.Error("GetForAdmin: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetForAdmin - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetForAdmin: fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// Confirm подтверждает запись: PENDING -> CONFIRMED
// Доступно только назначенному мастеру
func (s *Service) Confirm(ctx context.Context, id int64, technicianID int64) error {
	s.logger.Info("Confirm: confirming appointment id=%d by technician=%d", id, technicianID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := s.getAppointment(txCtx, id)
		if err != nil {
			return err
		}

		if appt.TechnicianID != technicianID {
			s.logger.Warn("Confirm: technician=%d is not assigned to appointment id=%d", technicianID, id)
			return ErrAccessDenied
		}

		if appt.Status != domain.StatusPending {
			s.logger.Warn("Confirm: appointment id=%d has status %s, cannot confirm", id, appt.Status)
			return ErrInvalidTransition
		}

		return s.updateStatus(txCtx, id, domain.StatusConfirmed)
	})

	if err != nil {
		return err
	}

	s.logger.Info("Confirm: successfully confirmed appointment id=%d", id)
	return nil
}

// Complete завершает запись: CONFIRMED -> COMPLETED
// Доступно только назначенному мастеру
func (s *Service) Complete(ctx context.Context, id int64, technicianID int64) error {
	s.logger.Info("Complete: completing appointment id=%d by technician=%d", id, technicianID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := s.getAppointment(txCtx, id)
		if err != nil {
			return err
		}

		if appt.TechnicianID != technicianID {
			s.logger.Warn("Complete: technician=%d is not assigned to appointment id=%d", technicianID, id)
			return ErrAccessDenied
		}

		if appt.Status != domain.StatusConfirmed {
			s.logger.Warn("Complete: appointment id=%d has status %s, cannot complete", id, appt.Status)
			return ErrInvalidTransition
		}

		return s.updateStatus(txCtx, id, domain.StatusCompleted)
	})

	if err != nil {
		return err
	}

	s.logger.Info("Complete: successfully completed appointment id=%d", id)
	return nil
}

// Cancel отменяет запись
// Отменить запись может только клиент-владелец и не позднее чем за
// cancelNoticeMinutes до начала. Повторная отмена отклоняется
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by actor=%d", id, req.ActorID)

	var cancelled *domain.Appointment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := s.getAppointment(txCtx, id)
		if err != nil {
			return err
		}

		if appt.CustomerID != req.ActorID {
			s.logger.Warn("Cancel: access denied for actor=%d to appointment id=%d", req.ActorID, id)
			return ErrAccessDenied
		}

		if !appt.CanBeCancelled() {
			s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, appt.Status)
			return ErrCannotCancel
		}

		now := s.timeProvider.Now()
		deadline := appt.StartTime.Add(-time.Duration(s.cancelNoticeMinutes) * time.Minute)
		if now.After(deadline) {
			s.logger.Warn("Cancel: appointment id=%d starts at %s, cancel deadline passed",
				id, appt.StartTime.Format(domain.DateTimeFormat))
			return ErrTooLateToCancel
		}

		if err := s.updateStatus(txCtx, id, domain.StatusCancelled); err != nil {
			return err
		}

		cancelled = appt
		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)

	s.notifier.SendAsync(notifyservice.Event{
		Type:          notifyservice.EventAppointmentCancelled,
		AppointmentID: cancelled.ID,
		CustomerID:    cancelled.CustomerID,
		TechnicianID:  cancelled.TechnicianID,
		StartTime:     cancelled.StartTime,
	})

	return nil
}

// Вспомогательные методы

func (s *Service) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("getAppointment: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("getAppointment: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return appt, nil
}

func (s *Service) updateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	if err := s.appointmentRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("updateStatus: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return nil
}
