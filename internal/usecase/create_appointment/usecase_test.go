package create_appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	apptRepo "github.com/auracontrol/AC-BookingService/internal/infra/storage/appointment"
	"github.com/auracontrol/AC-BookingService/internal/integrations/catalogservice"
	"github.com/auracontrol/AC-BookingService/internal/integrations/notifyservice"
	"github.com/auracontrol/AC-BookingService/pkg/txmanager"
	"github.com/auracontrol/AC-BookingService/pkg/types"
)

// Фейки зависимостей

type fakeAppointmentRepo struct {
	overlapping []*domain.Appointment
	createErr   error
	created     *domain.Appointment
	nextID      int64
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	appt.ID = r.nextID
	if appt.ID == 0 {
		appt.ID = 1
	}
	r.created = appt
	return appt, nil
}

func (r *fakeAppointmentRepo) GetOverlapping(_ context.Context, _, _ time.Time) ([]*domain.Appointment, error) {
	return r.overlapping, nil
}

type fakeAbsenceRepo struct {
	blocking []*domain.AbsenceRequest
}

func (r *fakeAbsenceRepo) GetBlockingOverlapping(_ context.Context, _, _ time.Time) ([]*domain.AbsenceRequest, error) {
	return r.blocking, nil
}

type fakeCatalogClient struct {
	service     *catalogservice.Service
	serviceErr  error
	technicians []catalogservice.Technician
	resources   []catalogservice.Resource
}

func (c *fakeCatalogClient) GetService(_ context.Context, _ int64) (*catalogservice.Service, error) {
	return c.service, c.serviceErr
}

func (c *fakeCatalogClient) GetTechniciansByService(_ context.Context, _ int64) ([]catalogservice.Technician, error) {
	return c.technicians, nil
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

type firstSelector struct{}

func (s *firstSelector) Pick(available []domain.Technician) domain.Technician {
	return available[0]
}

type noopLogger struct{}

func (l *noopLogger) Info(string, ...interface{})  {}
func (l *noopLogger) Warn(string, ...interface{})  {}
func (l *noopLogger) Error(string, ...interface{}) {}

// Фикстуры

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

func testService() *catalogservice.Service {
	return &catalogservice.Service{
		ID:              10,
		Name:            "Массаж спины",
		DurationMinutes: 60,
		Price:           3500,
		IsActive:        true,
		Requirements: []catalogservice.ResourceRequirement{
			{ResourceType: "couch", Quantity: 1},
		},
	}
}

type testEnv struct {
	uc          *UseCase
	apptRepo    *fakeAppointmentRepo
	absenceRepo *fakeAbsenceRepo
	catalog     *fakeCatalogClient
	notifier    *fakeNotifier
}

func newTestEnv(t *testing.T, now time.Time, autoConfirm bool) *testEnv {
	t.Helper()

	env := &testEnv{
		apptRepo:    &fakeAppointmentRepo{},
		absenceRepo: &fakeAbsenceRepo{},
		catalog: &fakeCatalogClient{
			service: testService(),
			technicians: []catalogservice.Technician{
				{ID: 1, Name: "Анна", Enabled: true, ServiceIDs: []int64{10}},
				{ID: 2, Name: "Борис", Enabled: true, ServiceIDs: []int64{10}},
			},
			resources: []catalogservice.Resource{
				{ID: 100, Type: "couch"},
				{ID: 101, Type: "couch"},
			},
		},
		notifier: &fakeNotifier{},
	}

	env.uc = NewUseCase(
		env.apptRepo,
		env.absenceRepo,
		env.catalog,
		env.notifier,
		&fakeTxManager{},
		testSchedule(t),
		autoConfirm,
		&noopLogger{},
	)
	env.uc.timeProvider = &fakeTimeProvider{now: now}
	env.uc.selector = &firstSelector{}

	return env
}

var testNow = time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

func startAt(hour, minute int) time.Time {
	// завтра относительно testNow
	return time.Date(2026, 9, 15, hour, minute, 0, 0, time.UTC)
}

// Тесты

func TestExecute_Success(t *testing.T) {
	env := newTestEnv(t, testNow, false)

	technicianID := int64(1)
	resp, err := env.uc.Execute(context.Background(), &Request{
		CustomerID:   42,
		ServiceID:    10,
		TechnicianID: &technicianID,
		StartTime:    startAt(10, 0),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.CustomerID)
	assert.Equal(t, int64(1), resp.TechnicianID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, startAt(11, 0), resp.EndTime)
	assert.Equal(t, "Массаж спины", resp.ServiceName)
	assert.Equal(t, []int64{100}, resp.ResourceIDs)

	require.Len(t, env.notifier.events, 1)
	assert.Equal(t, notifyservice.EventAppointmentCreated, env.notifier.events[0].Type)
}

func TestExecute_AutoConfirm(t *testing.T) {
	env := newTestEnv(t, testNow, true)

	technicianID := int64(1)
	resp, err := env.uc.Execute(context.Background(), &Request{
		CustomerID:   42,
		ServiceID:    10,
		TechnicianID: &technicianID,
		StartTime:    startAt(10, 0),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestExecute_AutoAssignsTechnician(t *testing.T) {
	env := newTestEnv(t, testNow, false)

	// Первый мастер занят, автоназначение должно выбрать второго
	env.apptRepo.overlapping = []*domain.Appointment{
		{TechnicianID: 1, StartTime: startAt(10, 0), EndTime: startAt(11, 0), Status: domain.StatusConfirmed},
	}

	resp, err := env.uc.Execute(context.Background(), &Request{
		CustomerID: 42,
		ServiceID:  10,
		StartTime:  startAt(10, 0),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.TechnicianID)
}

func TestExecute_RequestedTechnicianBusy(t *testing.T) {
	env := newTestEnv(t, testNow, false)

	env.apptRepo.overlapping = []*domain.Appointment{
		{TechnicianID: 1, StartTime: startAt(10, 30), EndTime: startAt(11, 30), Status: domain.StatusPending},
	}

	technicianID := int64(1)
	_, err := env.uc.Execute(context.Background(), &Request{
		CustomerID:   42,
		ServiceID:    10,
		TechnicianID: &technicianID,
		StartTime:    startAt(10, 0),
	})

	assert.ErrorIs(t, err, ErrTechnicianBusy)
	assert.Empty(t, env.notifier.events)
}

func TestExecute_RequestedTechnicianOnLeave(t *testing.T) {
	env := newTestEnv(t, testNow, false)

	env.absenceRepo.blocking = []*domain.AbsenceRequest{
		{
			TechnicianID: 1,
			StartDate:    startAt(0, 0),
			EndDate:      startAt(0, 0).Add(24 * time.Hour),
			Status:       domain.AbsencePending,
		},
	}

	technicianID := int64(1)
	_, err := env.uc.Execute(context.Background(), &Request{
		CustomerID:   42,
		ServiceID:    10,
		TechnicianID: &technicianID,
		StartTime:    startAt(10, 0),
	})

	assert.ErrorIs(t, err, ErrTechnicianOnLeave)
}

func TestExecute_RequestedTechnicianUnknown(t *testing.T) {
	env := newTestEnv(t, testNow, false)

	technicianID := int64(99)
	_, err := env.uc.Execute(context.Background(), &Request{
		CustomerID:   42,
		ServiceID:    10,
		TechnicianID: &technicianID,
		StartTime:    startAt(10, 0),
	})

	assert.ErrorIs(t, err, ErrTechnicianNotFound)
}

func TestExecute_NoTechniciansAvailable(t *testing.T) {
	env := newTestEnv(t, testNow, false)

	env.apptRepo.overlapping = []*domain.Appointment{
		{TechnicianID: 1, StartTime: startAt(10, 0), EndTime: startAt(11, 0), Status: domain.StatusConfirmed},
		{TechnicianID: 2, StartTime: startAt(10, 0), EndTime: startAt(11, 0), Status: domain.StatusConfirmed},
	}

	_, err := env.uc.Execute(context.Background(), &Request{
		CustomerID: 42,
		ServiceID:  10,
		StartTime:  startAt(10, 0),
	})

	assert.ErrorIs(t, err, ErrNoTechniciansAvailable)
}

func TestExecute_InsufficientResources(t *testing.T) {
	env := newTestEnv(t, testNow, false)

	// Обе кушетки заняты другими мастерами в окне
	env.apptRepo.overlapping = []*domain.Appointment{
		{
			TechnicianID: 3,
			StartTime:    startAt(10, 0), EndTime: startAt(11, 0),
			Status:      domain.StatusConfirmed,
			ResourceIDs: []int64{100},
		},
		{
			TechnicianID: 4,
			StartTime:    startAt(10, 0), EndTime: startAt(11, 0),
			Status:      domain.StatusConfirmed,
			ResourceIDs: []int64{101},
		},
	}

	technicianID := int64(1)
	_, err := env.uc.Execute(context.Background(), &Request{
		CustomerID:   42,
		ServiceID:    10,
		TechnicianID: &technicianID,
		StartTime:    startAt(10, 0),
	})

	assert.ErrorIs(t, err, ErrInsufficientResources)
}

func TestExecute_TimeInPast(t *testing.T) {
	env := newTestEnv(t, testNow, false)

	_, err := env.uc.Execute(context.Background(), &Request{
		CustomerID: 42,
		ServiceID:  10,
		StartTime:  testNow.Add(-time.Hour),
	})

	assert.ErrorIs(t, err, ErrTimeInPast)
}

func TestExecute_WindowValidation(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		expected error
	}{
		{
			name:     "start off the slot grid",
			start:    startAt(10, 7),
			expected: ErrInvalidTimeSlot,
		},
		{
			name:     "before opening",
			start:    startAt(8, 0),
			expected: ErrOutsideBusinessHours,
		},
		{
			name:     "end spills past closing",
			start:    startAt(20, 30),
			expected: ErrOutsideBusinessHours,
		},
		{
			name:     "window overlaps the break",
			start:    startAt(11, 30),
			expected: ErrOutsideBusinessHours,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, testNow, false)

			_, err := env.uc.Execute(context.Background(), &Request{
				CustomerID: 42,
				ServiceID:  10,
				StartTime:  tt.start,
			})

			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestExecute_WindowEndingAtBreakStartIsValid(t *testing.T) {
	env := newTestEnv(t, testNow, false)

	technicianID := int64(1)
	resp, err := env.uc.Execute(context.Background(), &Request{
		CustomerID:   42,
		ServiceID:    10,
		TechnicianID: &technicianID,
		StartTime:    startAt(11, 0), // 11:00-12:00, впритык к перерыву
	})

	require.NoError(t, err)
	assert.Equal(t, startAt(12, 0), resp.EndTime)
}

func TestExecute_ServiceInactive(t *testing.T) {
	env := newTestEnv(t, testNow, false)
	env.catalog.service.IsActive = false

	_, err := env.uc.Execute(context.Background(), &Request{
		CustomerID: 42,
		ServiceID:  10,
		StartTime:  startAt(10, 0),
	})

	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	env := newTestEnv(t, testNow, false)
	env.catalog.service = nil
	env.catalog.serviceErr = catalogservice.ErrServiceNotFound

	_, err := env.uc.Execute(context.Background(), &Request{
		CustomerID: 42,
		ServiceID:  10,
		StartTime:  startAt(10, 0),
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InsertConflictMapsToTechnicianBusy(t *testing.T) {
	env := newTestEnv(t, testNow, false)
	env.apptRepo.createErr = apptRepo.ErrTechnicianConflict

	technicianID := int64(1)
	_, err := env.uc.Execute(context.Background(), &Request{
		CustomerID:   42,
		ServiceID:    10,
		TechnicianID: &technicianID,
		StartTime:    startAt(10, 0),
	})

	assert.ErrorIs(t, err, ErrTechnicianBusy)
}

func TestExecute_SerializationFailureMapsToSlotTaken(t *testing.T) {
	env := newTestEnv(t, testNow, false)
	env.uc.txManager = &fakeTxManager{
		err: fmt.Errorf("%w: retries exhausted", txmanager.ErrSerializationFailure),
	}

	technicianID := int64(1)
	_, err := env.uc.Execute(context.Background(), &Request{
		CustomerID:   42,
		ServiceID:    10,
		TechnicianID: &technicianID,
		StartTime:    startAt(10, 0),
	})

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, env.notifier.events)
}

func TestExecute_InvalidInput(t *testing.T) {
	env := newTestEnv(t, testNow, false)

	_, err := env.uc.Execute(context.Background(), &Request{
		CustomerID: 0,
		ServiceID:  10,
		StartTime:  startAt(10, 0),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
