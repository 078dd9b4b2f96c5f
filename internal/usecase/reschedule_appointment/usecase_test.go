package reschedule_appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	"github.com/auracontrol/AC-BookingService/internal/integrations/catalogservice"
	"github.com/auracontrol/AC-BookingService/internal/integrations/notifyservice"
	"github.com/auracontrol/AC-BookingService/pkg/txmanager"
	"github.com/auracontrol/AC-BookingService/pkg/types"
)

// Фейки зависимостей

type fakeAppointmentRepo struct {
	appointment *domain.Appointment
	getErr      error
	overlapping []*domain.Appointment
	updateErr   error

	updatedStart     time.Time
	updatedEnd       time.Time
	updatedResources []int64
	updateCalled     bool
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	// копия, чтобы тест мог сравнивать с исходным состоянием
	appt := *r.appointment
	return &appt, nil
}

func (r *fakeAppointmentRepo) GetOverlapping(_ context.Context, _, _ time.Time) ([]*domain.Appointment, error) {
	return r.overlapping, nil
}

func (r *fakeAppointmentRepo) UpdateSchedule(_ context.Context, _ int64, start, end time.Time, resourceIDs []int64) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updateCalled = true
	r.updatedStart = start
	r.updatedEnd = end
	r.updatedResources = resourceIDs
	return nil
}

type fakeAbsenceRepo struct {
	blocking []*domain.AbsenceRequest
}

func (r *fakeAbsenceRepo) GetBlockingOverlapping(_ context.Context, _, _ time.Time) ([]*domain.AbsenceRequest, error) {
	return r.blocking, nil
}

type fakeCatalogClient struct {
	service   *catalogservice.Service
	resources []catalogservice.Resource
}

func (c *fakeCatalogClient) GetService(_ context.Context, _ int64) (*catalogservice.Service, error) {
	return c.service, nil
}

func (c *fakeCatalogClient) GetResourcesByTypes(_ context.Context, _ []string) ([]catalogservice.Resource, error) {
	return c.resources, nil
}

type fakeNotifier struct {
	events []notifyservice.Event
}

func (n *fakeNotifier) SendAsync(event notifyservice.Event) {
	n.events = append(n.events, event)
}

type fakeTxManager struct {
	err error
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.err != nil {
		return m.err
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

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 9, day, hour, minute, 0, 0, time.UTC)
}

func testSchedule(t *testing.T) domain.BusinessSchedule {
	t.Helper()

	mk := func(s string) types.TimeString {
		ts, err := types.NewTimeStringFromString(s)
		require.NoError(t, err)
		return ts
	}

	return domain.BusinessSchedule{
		OpenTime:        mk("09:00"),
		CloseTime:       mk("21:00"),
		BreakStart:      mk("12:00"),
		BreakEnd:        mk("14:00"),
		SlotStepMinutes: 15,
	}
}

func currentAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:           7,
		CustomerID:   42,
		TechnicianID: 1,
		ServiceID:    10,
		StartTime:    at(15, 10, 0),
		EndTime:      at(15, 11, 0),
		Status:       domain.StatusConfirmed,
		ResourceIDs:  []int64{100},
	}
}

type testEnv struct {
	uc          *UseCase
	apptRepo    *fakeAppointmentRepo
	absenceRepo *fakeAbsenceRepo
	notifier    *fakeNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		apptRepo: &fakeAppointmentRepo{appointment: currentAppointment()},
		absenceRepo: &fakeAbsenceRepo{},
		notifier:    &fakeNotifier{},
	}

	catalog := &fakeCatalogClient{
		service: &catalogservice.Service{
			ID:              10,
			Name:            "Массаж спины",
			DurationMinutes: 60,
			Price:           3500,
			IsActive:        true,
			Requirements: []catalogservice.ResourceRequirement{
				{ResourceType: "couch", Quantity: 1},
			},
		},
		resources: []catalogservice.Resource{
			{ID: 100, Type: "couch"},
		},
	}

	env.uc = NewUseCase(
		env.apptRepo,
		env.absenceRepo,
		catalog,
		env.notifier,
		&fakeTxManager{},
		testSchedule(t),
		30,
		&noopLogger{},
	)
	env.uc.timeProvider = &fakeTimeProvider{now: testNow}

	return env
}

// Тесты

func TestExecute_Success(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: 7,
		CustomerID:    42,
		NewStartTime:  at(15, 16, 0),
	})

	require.NoError(t, err)
	assert.Equal(t, at(15, 16, 0), resp.StartTime)
	assert.Equal(t, at(15, 17, 0), resp.EndTime)
	assert.Equal(t, int64(1), resp.TechnicianID)
	assert.True(t, env.apptRepo.updateCalled)
	assert.Equal(t, []int64{100}, env.apptRepo.updatedResources)

	require.Len(t, env.notifier.events, 1)
	assert.Equal(t, notifyservice.EventAppointmentRescheduled, env.notifier.events[0].Type)
}

func TestExecute_OwnAppointmentDoesNotBlockNewWindow(t *testing.T) {
	env := newTestEnv(t)

	// Перенос на окно, пересекающееся с текущим: собственная запись в снимке
	// занятости не должна блокировать ни мастера, ни единственную кушетку
	env.apptRepo.overlapping = []*domain.Appointment{env.apptRepo.appointment}

	resp, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: 7,
		CustomerID:    42,
		NewStartTime:  at(15, 10, 30),
	})

	require.NoError(t, err)
	assert.Equal(t, at(15, 10, 30), resp.StartTime)
	assert.Equal(t, []int64{100}, env.apptRepo.updatedResources)
}

func TestExecute_TechnicianBusyInNewWindow(t *testing.T) {
	env := newTestEnv(t)

	env.apptRepo.overlapping = []*domain.Appointment{
		{
			ID:           8,
			TechnicianID: 1,
			StartTime:    at(15, 16, 0), EndTime: at(15, 17, 0),
			Status: domain.StatusPending,
		},
	}

	_, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: 7,
		CustomerID:    42,
		NewStartTime:  at(15, 16, 0),
	})

	assert.ErrorIs(t, err, ErrTechnicianBusy)
	assert.False(t, env.apptRepo.updateCalled)
}

func TestExecute_TechnicianOnLeaveInNewWindow(t *testing.T) {
	env := newTestEnv(t)

	env.absenceRepo.blocking = []*domain.AbsenceRequest{
		{
			TechnicianID: 1,
			StartDate:    at(16, 0, 0),
			EndDate:      at(17, 0, 0),
			Status:       domain.AbsenceApproved,
		},
	}

	_, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: 7,
		CustomerID:    42,
		NewStartTime:  at(16, 10, 0),
	})

	assert.ErrorIs(t, err, ErrTechnicianOnLeave)
}

func TestExecute_InsufficientResourcesInNewWindow(t *testing.T) {
	env := newTestEnv(t)

	// Единственная кушетка занята чужой записью в новом окне
	env.apptRepo.overlapping = []*domain.Appointment{
		{
			ID:           8,
			TechnicianID: 2,
			StartTime:    at(15, 16, 0), EndTime: at(15, 17, 0),
			Status:      domain.StatusConfirmed,
			ResourceIDs: []int64{100},
		},
	}

	_, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: 7,
		CustomerID:    42,
		NewStartTime:  at(15, 16, 0),
	})

	assert.ErrorIs(t, err, ErrInsufficientResources)
}

func TestExecute_AccessDenied(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: 7,
		CustomerID:    99,
		NewStartTime:  at(15, 16, 0),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_CancelledAppointment(t *testing.T) {
	env := newTestEnv(t)
	env.apptRepo.appointment.Status = domain.StatusCancelled

	_, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: 7,
		CustomerID:    42,
		NewStartTime:  at(15, 16, 0),
	})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestExecute_TooLateToChange(t *testing.T) {
	env := newTestEnv(t)

	// Запись начинается через 20 минут, порог - 30
	env.apptRepo.appointment.StartTime = testNow.Add(20 * time.Minute)
	env.apptRepo.appointment.EndTime = testNow.Add(80 * time.Minute)

	_, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: 7,
		CustomerID:    42,
		NewStartTime:  at(15, 16, 0),
	})

	assert.ErrorIs(t, err, ErrTooLateToChange)
}

func TestExecute_SerializationFailureMapsToSlotTaken(t *testing.T) {
	env := newTestEnv(t)
	env.uc.txManager = &fakeTxManager{
		err: fmt.Errorf("%w: retries exhausted", txmanager.ErrSerializationFailure),
	}

	_, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: 7,
		CustomerID:    42,
		NewStartTime:  at(15, 16, 0),
	})

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, env.notifier.events)
}

func TestExecute_NewTimeInPast(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: 7,
		CustomerID:    42,
		NewStartTime:  testNow.Add(-time.Hour),
	})

	assert.ErrorIs(t, err, ErrTimeInPast)
}

func TestExecute_NewWindowOutsideBusinessHours(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: 7,
		CustomerID:    42,
		NewStartTime:  at(15, 20, 30), // 20:30 + 60 мин > 21:00
	})

	assert.ErrorIs(t, err, ErrOutsideBusinessHours)
}
