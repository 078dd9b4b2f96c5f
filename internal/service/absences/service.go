package absences

import (
	"context"
	"errors"
	"fmt"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	absenceRepo "github.com/auracontrol/AC-BookingService/internal/infra/storage/absence"
	"github.com/auracontrol/AC-BookingService/internal/integrations/notifyservice"
	"github.com/auracontrol/AC-BookingService/internal/service/absences/models"
	"github.com/auracontrol/AC-BookingService/pkg/txmanager"
)

// Service сервис заявок мастеров на отсутствие: подача, рассмотрение
// администратором и списки. Ожидающая заявка уже блокирует расписание,
// поэтому одобрение не может задним числом столкнуться с новой записью
type Service struct {
	absenceRepo  AbsenceRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	absenceRepo AbsenceRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		absenceRepo:  absenceRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Submit подает заявку на отсутствие
// Заявка отклоняется, если у мастера уже есть ожидающая или одобренная
// заявка на пересекающийся период. Проверка дубликата и вставка выполняются
// в сериализуемой транзакции
func (s *Service) Submit(ctx context.Context, req *models.SubmitAbsenceRequest) (*models.AbsenceResponse, error) {
	s.logger.Info("Submit: absence request from technician=%d, period=%s to %s",
		req.TechnicianID, req.StartDate.Format(domain.DateTimeFormat), req.EndDate.Format(domain.DateTimeFormat))

	if err := s.validateSubmit(req); err != nil {
		s.logger.Warn("Submit: validation failed: %v", err)
		return nil, err
	}

	var created *domain.AbsenceRequest

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overlapping, err := s.absenceRepo.GetBlockingForTechnician(txCtx, req.TechnicianID, req.StartDate, req.EndDate)
		if err != nil {
			s.logger.Error("Submit: failed to check overlapping requests: %v", err)
			return fmt.Errorf("%w: failed to check overlapping requests: %v", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			s.logger.Warn("Submit: technician=%d already has %d blocking requests in period",
				req.TechnicianID, len(overlapping))
			return ErrOverlappingRequest
		}

		request := &domain.AbsenceRequest{
			TechnicianID: req.TechnicianID,
			StartDate:    req.StartDate,
			EndDate:      req.EndDate,
			Reason:       req.Reason,
			Status:       domain.AbsencePending,
		}

		created, err = s.absenceRepo.Create(txCtx, request)
		if err != nil {
			s.logger.Error("Submit: failed to create absence request: %v", err)
			return fmt.Errorf("%w: failed to create absence request: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		// Конкурентная подача на то же окно, исчерпавшая ретраи
		// сериализации, эквивалентна пересекающейся заявке
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			s.logger.Warn("Submit: serialization retries exhausted: %v", err)
			return nil, ErrOverlappingRequest
		}
		return nil, err
	}

	s.logger.Info("Submit: created absence request id=%d for technician=%d", created.ID, created.TechnicianID)
	return models.FromDomainAbsence(created), nil
}

// Review рассматривает заявку: выставляет APPROVED или REJECTED
// Повторное рассмотрение разрешено - администратор может изменить ранее
// принятое решение. Доступно только администраторам
func (s *Service) Review(ctx context.Context, id int64, req *models.ReviewAbsenceRequest) (*models.AbsenceResponse, error) {
	s.logger.Info("Review: reviewing absence request id=%d by admin=%d, decision=%s", id, req.AdminID, req.Decision)

	decision, err := models.ToDomainAbsenceStatus(req.Decision)
	if err != nil || !domain.IsValidAbsenceDecision(decision) {
		s.logger.Warn("Review: invalid decision=%s for request id=%d", req.Decision, id)
		return nil, ErrInvalidDecision
	}

	var reviewed *domain.AbsenceRequest

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		request, err := s.getRequest(txCtx, id)
		if err != nil {
			return err
		}

		if err := s.absenceRepo.UpdateStatus(txCtx, id, decision); err != nil {
			if errors.Is(err, absenceRepo.ErrAbsenceNotFound) {
				return ErrAbsenceNotFound
			}
			s.logger.Error("Review: failed to update request id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to update request: %v", ErrInternal, err)
		}

		request.Status = decision
		reviewed = request
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Review: request id=%d reviewed with decision=%s", id, decision)

	s.notifier.SendAsync(notifyservice.Event{
		Type:         notifyservice.EventAbsenceReviewed,
		AbsenceID:    reviewed.ID,
		TechnicianID: reviewed.TechnicianID,
	})

	return models.FromDomainAbsence(reviewed), nil
}

// GetMyRequests получает все заявки мастера
func (s *Service) GetMyRequests(ctx context.Context, technicianID int64) (*models.AbsenceListResponse, error) {
	s.logger.Info("GetMyRequests: fetching absence requests for technician=%d", technicianID)

	requests, err := s.absenceRepo.GetByTechnician(ctx, technicianID)
	if err != nil {
		s.logger.Error("GetMyRequests: repository error for technician=%d: %v", technicianID, err)
		return nil, fmt.Errorf("%w: GetMyRequests - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMyRequests: fetched %d requests for technician=%d", len(requests), technicianID)
	return models.FromDomainAbsenceList(requests), nil
}

// GetForAdmin получает заявки с опциональным фильтром по статусу
// Доступно только администраторам
func (s *Service) GetForAdmin(ctx context.Context, req *models.GetAdminAbsencesRequest) (*models.AbsenceListResponse, error) {
	s.logger.Info("GetForAdmin: fetching absence requests, status=%v", req.Status)

	var domainStatus *domain.AbsenceStatus
	if req.Status != nil {
		status, err := models.ToDomainAbsenceStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetForAdmin: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	requests, err := s.absenceRepo.ListByStatus(ctx, domainStatus)
	if err != nil {
		s.logger.Error("GetForAdmin: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetForAdmin - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetForAdmin: fetched %d requests", len(requests))
	return models.FromDomainAbsenceList(requests), nil
}

// Вспомогательные методы

func (s *Service) validateSubmit(req *models.SubmitAbsenceRequest) error {
	if req.TechnicianID <= 0 {
		return fmt.Errorf("%w: technicianID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if !req.StartDate.Before(req.EndDate) {
		return fmt.Errorf("%w: startDate must be before endDate", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	if req.StartDate.Before(now) {
		return fmt.Errorf("%w: startDate must be in the future", ErrInvalidInput)
	}

	if req.Reason == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}

	if len(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return nil
}

func (s *Service) getRequest(ctx context.Context, id int64) (*domain.AbsenceRequest, error) {
	request, err := s.absenceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, absenceRepo.ErrAbsenceNotFound) {
			s.logger.Warn("getRequest: absence request id=%d not found", id)
			return nil, ErrAbsenceNotFound
		}
		s.logger.Error("getRequest: repository error for request id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return request, nil
}
