package absences

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	absenceRepo "github.com/auracontrol/AC-BookingService/internal/infra/storage/absence"
	"github.com/auracontrol/AC-BookingService/internal/integrations/notifyservice"
	"github.com/auracontrol/AC-BookingService/internal/service/absences/models"
	"github.com/auracontrol/AC-BookingService/pkg/txmanager"
)

// Фейки зависимостей

type fakeRepo struct {
	request       *domain.AbsenceRequest
	getErr        error
	blocking      []*domain.AbsenceRequest
	list          []*domain.AbsenceRequest
	created       *domain.AbsenceRequest
	updatedStatus domain.AbsenceStatus
	updateCalled  bool
}

func (r *fakeRepo) Create(_ context.Context, req *domain.AbsenceRequest) (*domain.AbsenceRequest, error) {
	req.ID = 5
	req.CreatedAt = time.Now()
	r.created = req
	return req, nil
}

func (r *fakeRepo) GetByID(_ context.Context, _ int64) (*domain.AbsenceRequest, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	req := *r.request
	return &req, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, _ int64, status domain.AbsenceStatus) error {
	r.updateCalled = true
	r.updatedStatus = status
	return nil
}

func (r *fakeRepo) GetBlockingForTechnician(_ context.Context, _ int64, _, _ time.Time) ([]*domain.AbsenceRequest, error) {
	return r.blocking, nil
}

func (r *fakeRepo) GetByTechnician(_ context.Context, _ int64) ([]*domain.AbsenceRequest, error) {
	return r.list, nil
}

func (r *fakeRepo) ListByStatus(_ context.Context, _ *domain.AbsenceStatus) ([]*domain.AbsenceRequest, error) {
	return r.list, nil
}

type fakeNotifier struct {
	events []notifyservice.Event
}

func (n *fakeNotifier) SendAsync(event notifyservice.Event) {
	n.events = append(n.events, event)
}

type fakeTxManager struct {
	serErr error
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.serErr != nil {
		return m.serErr
	}
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (l *noopLogger) Info(string, ...interface{})  {}
func (l *noopLogger) Warn(string, ...interface{})  {}
func (l *noopLogger) Error(string, ...interface{}) {}

// Фикстуры

var testNow = time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

func newService(repo *fakeRepo, notifier *fakeNotifier) *Service {
	svc := NewService(repo, notifier, &fakeTxManager{}, &noopLogger{})
	svc.timeProvider = &fakeTimeProvider{now: testNow}
	return svc
}

func validSubmitRequest() *models.SubmitAbsenceRequest {
	return &models.SubmitAbsenceRequest{
		TechnicianID: 1,
		StartDate:    testNow.Add(24 * time.Hour),
		EndDate:      testNow.Add(72 * time.Hour),
		Reason:       "отпуск",
	}
}

// Тесты

func TestSubmit(t *testing.T) {
	t.Run("creates pending request", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newService(repo, &fakeNotifier{})

		resp, err := svc.Submit(context.Background(), validSubmitRequest())

		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.ID)
		assert.Equal(t, string(domain.AbsencePending), resp.Status)
		require.NotNil(t, repo.created)
		assert.Equal(t, domain.AbsencePending, repo.created.Status)
	})

	t.Run("overlapping pending request blocks", func(t *testing.T) {
		repo := &fakeRepo{
			blocking: []*domain.AbsenceRequest{
				{ID: 3, TechnicianID: 1, Status: domain.AbsencePending},
			},
		}
		svc := newService(repo, &fakeNotifier{})

		_, err := svc.Submit(context.Background(), validSubmitRequest())

		assert.ErrorIs(t, err, ErrOverlappingRequest)
		assert.Nil(t, repo.created)
	})

	t.Run("concurrent submit maps to overlapping request", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newService(repo, &fakeNotifier{})
		svc.txManager = &fakeTxManager{
			serErr: fmt.Errorf("%w: retries exhausted", txmanager.ErrSerializationFailure),
		}

		_, err := svc.Submit(context.Background(), validSubmitRequest())

		assert.ErrorIs(t, err, ErrOverlappingRequest)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(req *models.SubmitAbsenceRequest)
		}{
			{
				name:   "start after end",
				mutate: func(r *models.SubmitAbsenceRequest) { r.StartDate, r.EndDate = r.EndDate, r.StartDate },
			},
			{
				name:   "start in the past",
				mutate: func(r *models.SubmitAbsenceRequest) { r.StartDate = testNow.Add(-time.Hour) },
			},
			{
				name:   "empty reason",
				mutate: func(r *models.SubmitAbsenceRequest) { r.Reason = "" },
			},
			{
				name:   "reason too long",
				mutate: func(r *models.SubmitAbsenceRequest) { r.Reason = strings.Repeat("x", domain.MaxReasonLength+1) },
			},
			{
				name:   "missing technician",
				mutate: func(r *models.SubmitAbsenceRequest) { r.TechnicianID = 0 },
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := &fakeRepo{}
				svc := newService(repo, &fakeNotifier{})

				req := validSubmitRequest()
				tt.mutate(req)

				_, err := svc.Submit(context.Background(), req)

				assert.ErrorIs(t, err, ErrInvalidInput)
			})
		}
	})
}

func TestReview(t *testing.T) {
	pendingRequest := func() *domain.AbsenceRequest {
		return &domain.AbsenceRequest{
			ID:           5,
			TechnicianID: 1,
			StartDate:    testNow.Add(24 * time.Hour),
			EndDate:      testNow.Add(72 * time.Hour),
			Reason:       "отпуск",
			Status:       domain.AbsencePending,
		}
	}

	t.Run("approve", func(t *testing.T) {
		repo := &fakeRepo{request: pendingRequest()}
		notifier := &fakeNotifier{}
		svc := newService(repo, notifier)

		resp, err := svc.Review(context.Background(), 5, &models.ReviewAbsenceRequest{
			AdminID:  100,
			Decision: "APPROVED",
		})

		require.NoError(t, err)
		assert.Equal(t, string(domain.AbsenceApproved), resp.Status)
		assert.Equal(t, domain.AbsenceApproved, repo.updatedStatus)
		require.Len(t, notifier.events, 1)
		assert.Equal(t, notifyservice.EventAbsenceReviewed, notifier.events[0].Type)
	})

	t.Run("reject", func(t *testing.T) {
		repo := &fakeRepo{request: pendingRequest()}
		svc := newService(repo, &fakeNotifier{})

		resp, err := svc.Review(context.Background(), 5, &models.ReviewAbsenceRequest{
			AdminID:  100,
			Decision: "REJECTED",
		})

		require.NoError(t, err)
		assert.Equal(t, string(domain.AbsenceRejected), resp.Status)
	})

	t.Run("invalid decision", func(t *testing.T) {
		tests := []string{"PENDING", "approved", "YES", ""}

		for _, decision := range tests {
			repo := &fakeRepo{request: pendingRequest()}
			svc := newService(repo, &fakeNotifier{})

			_, err := svc.Review(context.Background(), 5, &models.ReviewAbsenceRequest{
				AdminID:  100,
				Decision: decision,
			})

			assert.ErrorIs(t, err, ErrInvalidDecision, "decision=%q", decision)
			assert.False(t, repo.updateCalled)
		}
	})

	t.Run("overrides earlier decision", func(t *testing.T) {
		// Администратор может пересмотреть уже отклонённую заявку
		repo := &fakeRepo{request: pendingRequest()}
		repo.request.Status = domain.AbsenceRejected
		svc := newService(repo, &fakeNotifier{})

		resp, err := svc.Review(context.Background(), 5, &models.ReviewAbsenceRequest{
			AdminID:  100,
			Decision: "APPROVED",
		})

		require.NoError(t, err)
		assert.Equal(t, string(domain.AbsenceApproved), resp.Status)
		assert.Equal(t, domain.AbsenceApproved, repo.updatedStatus)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeRepo{getErr: absenceRepo.ErrAbsenceNotFound}
		svc := newService(repo, &fakeNotifier{})

		_, err := svc.Review(context.Background(), 5, &models.ReviewAbsenceRequest{
			AdminID:  100,
			Decision: "APPROVED",
		})

		assert.ErrorIs(t, err, ErrAbsenceNotFound)
	})
}

func TestGetForAdmin_InvalidStatus(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakeNotifier{})

	bad := "UNKNOWN"
	_, err := svc.GetForAdmin(context.Background(), &models.GetAdminAbsencesRequest{Status: &bad})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetMyRequests(t *testing.T) {
	repo := &fakeRepo{
		list: []*domain.AbsenceRequest{
			{ID: 1, TechnicianID: 1, Status: domain.AbsenceApproved},
			{ID: 2, TechnicianID: 1, Status: domain.AbsencePending},
		},
	}
	svc := newService(repo, &fakeNotifier{})

	resp, err := svc.GetMyRequests(context.Background(), 1)

	require.NoError(t, err)
	assert.Len(t, resp.Requests, 2)
}
