package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	"github.com/auracontrol/AC-BookingService/internal/integrations/catalogservice"
	"github.com/auracontrol/AC-BookingService/pkg/types"
)

// Фейки зависимостей

type fakeAppointmentRepo struct {
	overlapping []*domain.Appointment
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

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (l *noopLogger) Info(string, ...interface{})  {}
func (l *noopLogger) Warn(string, ...interface{})  {}
func (l *noopLogger) Error(string, ...interface{}) {}

// Фикстуры

var (
	testNow  = time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
)

func slotAt(hour, minute int) time.Time {
	return testDate.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
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

type testEnv struct {
	uc       *UseCase
	apptRepo *fakeAppointmentRepo
	catalog  *fakeCatalogClient
}

func newTestEnv(t *testing.T, durationMinutes int) *testEnv {
	t.Helper()

	env := &testEnv{
		apptRepo: &fakeAppointmentRepo{},
		catalog: &fakeCatalogClient{
			service: &catalogservice.Service{
				ID:              10,
				Name:            "Массаж спины",
				DurationMinutes: durationMinutes,
				Price:           3500,
				IsActive:        true,
				Requirements: []catalogservice.ResourceRequirement{
					{ResourceType: "couch", Quantity: 1},
				},
			},
			technicians: []catalogservice.Technician{
				{ID: 1, Name: "Анна", Enabled: true, ServiceIDs: []int64{10}},
				{ID: 2, Name: "Борис", Enabled: true, ServiceIDs: []int64{10}},
			},
			resources: []catalogservice.Resource{
				{ID: 100, Type: "couch"},
				{ID: 101, Type: "couch"},
			},
		},
	}

	env.uc = NewUseCase(
		env.apptRepo,
		&fakeAbsenceRepo{},
		env.catalog,
		testSchedule(t),
		&noopLogger{},
	)
	env.uc.timeProvider = &fakeTimeProvider{now: testNow}

	return env
}

func findSlot(slots []Slot, start time.Time) *Slot {
	for i := range slots {
		if slots[i].StartTime.Equal(start) {
			return &slots[i]
		}
	}
	return nil
}

// Тесты

func TestExecute_FullDayGrid(t *testing.T) {
	env := newTestEnv(t, 60)

	resp, err := env.uc.Execute(context.Background(), &Request{ServiceID: 10, Date: testDate})

	require.NoError(t, err)
	assert.Equal(t, 60, resp.DurationMinutes)

	// 09:00-12:00: часовое окно влезает при старте 09:00..11:00 (шаг 15 мин) - 9 слотов.
	// 14:00-21:00: старты 14:00..20:00 - 25 слотов
	assert.Len(t, resp.Slots, 34)

	first := resp.Slots[0]
	assert.Equal(t, slotAt(9, 0), first.StartTime)
	assert.Equal(t, slotAt(10, 0), first.EndTime)
	assert.Equal(t, 2, first.AvailableTechnicians)

	// Окна, пересекающие перерыв 12:00-14:00, не предлагаются
	assert.Nil(t, findSlot(resp.Slots, slotAt(11, 15)))
	assert.Nil(t, findSlot(resp.Slots, slotAt(13, 0)))
	// Последний старт, влезающий до закрытия
	assert.NotNil(t, findSlot(resp.Slots, slotAt(20, 0)))
	assert.Nil(t, findSlot(resp.Slots, slotAt(20, 15)))
}

func TestExecute_BusyTechnicianReducesCount(t *testing.T) {
	env := newTestEnv(t, 60)

	env.apptRepo.overlapping = []*domain.Appointment{
		{
			TechnicianID: 1,
			StartTime:    slotAt(10, 0), EndTime: slotAt(11, 0),
			Status:      domain.StatusConfirmed,
			ResourceIDs: []int64{100},
		},
	}

	resp, err := env.uc.Execute(context.Background(), &Request{ServiceID: 10, Date: testDate})

	require.NoError(t, err)

	overlapping := findSlot(resp.Slots, slotAt(10, 0))
	require.NotNil(t, overlapping)
	assert.Equal(t, 1, overlapping.AvailableTechnicians)

	// Слот, примыкающий к чужой записи, не затронут
	adjacent := findSlot(resp.Slots, slotAt(11, 0))
	require.NotNil(t, adjacent)
	assert.Equal(t, 2, adjacent.AvailableTechnicians)
}

func TestExecute_NoResourcesDropsSlot(t *testing.T) {
	env := newTestEnv(t, 60)

	// Обе кушетки заняты в окне 10:00-11:00 записями сторонних мастеров
	env.apptRepo.overlapping = []*domain.Appointment{
		{
			TechnicianID: 8,
			StartTime:    slotAt(10, 0), EndTime: slotAt(11, 0),
			Status:      domain.StatusConfirmed,
			ResourceIDs: []int64{100},
		},
		{
			TechnicianID: 9,
			StartTime:    slotAt(10, 0), EndTime: slotAt(11, 0),
			Status:      domain.StatusConfirmed,
			ResourceIDs: []int64{101},
		},
	}

	resp, err := env.uc.Execute(context.Background(), &Request{ServiceID: 10, Date: testDate})

	require.NoError(t, err)
	// Окна, пересекающие 10:00-11:00, отпадают по ресурсам
	assert.Nil(t, findSlot(resp.Slots, slotAt(10, 0)))
	assert.Nil(t, findSlot(resp.Slots, slotAt(9, 30)))
	assert.NotNil(t, findSlot(resp.Slots, slotAt(9, 0)))
	assert.NotNil(t, findSlot(resp.Slots, slotAt(11, 0)))
}

func TestExecute_TechnicianFilter(t *testing.T) {
	env := newTestEnv(t, 60)

	env.apptRepo.overlapping = []*domain.Appointment{
		{
			TechnicianID: 1,
			StartTime:    slotAt(10, 0), EndTime: slotAt(11, 0),
			Status: domain.StatusConfirmed,
		},
	}

	technicianID := int64(1)
	resp, err := env.uc.Execute(context.Background(), &Request{
		ServiceID:    10,
		Date:         testDate,
		TechnicianID: &technicianID,
	})

	require.NoError(t, err)
	// Для конкретного мастера занятое окно выпадает целиком
	assert.Nil(t, findSlot(resp.Slots, slotAt(10, 0)))

	free := findSlot(resp.Slots, slotAt(11, 0))
	require.NotNil(t, free)
	assert.Equal(t, 1, free.AvailableTechnicians)
}

func TestExecute_AbsenceBlocksTechnician(t *testing.T) {
	env := newTestEnv(t, 60)

	absenceRepo := &fakeAbsenceRepo{
		blocking: []*domain.AbsenceRequest{
			{
				TechnicianID: 1,
				StartDate:    testDate,
				EndDate:      testDate.Add(24 * time.Hour),
				Status:       domain.AbsencePending,
			},
		},
	}
	env.uc.absenceRepo = absenceRepo

	resp, err := env.uc.Execute(context.Background(), &Request{ServiceID: 10, Date: testDate})

	require.NoError(t, err)
	for _, slot := range resp.Slots {
		assert.Equal(t, 1, slot.AvailableTechnicians)
	}
}

func TestExecute_TodayFiltersPastSlots(t *testing.T) {
	env := newTestEnv(t, 60)

	// Запрос на сегодня: now = 12:00, слоты до и в 12:00 не предлагаются,
	// а из-за перерыва 12:00-14:00 первый доступный старт - 14:00
	today := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	resp, err := env.uc.Execute(context.Background(), &Request{ServiceID: 10, Date: today})

	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, today.Add(14*time.Hour), resp.Slots[0].StartTime)
}

func TestExecute_SlotStartingAtCurrentMomentIsOffered(t *testing.T) {
	env := newTestEnv(t, 60)

	// now = 15:00 ровно: слот 15:00 ещё предлагается, 14:45 - уже нет
	today := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	env.uc.timeProvider = &fakeTimeProvider{now: today.Add(15 * time.Hour)}

	resp, err := env.uc.Execute(context.Background(), &Request{ServiceID: 10, Date: today})

	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, today.Add(15*time.Hour), resp.Slots[0].StartTime)
}

func TestExecute_NoQualifiedTechnicians(t *testing.T) {
	env := newTestEnv(t, 60)
	env.catalog.technicians = nil

	resp, err := env.uc.Execute(context.Background(), &Request{ServiceID: 10, Date: testDate})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDateReturnsNoSlots(t *testing.T) {
	env := newTestEnv(t, 60)

	past := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)
	resp, err := env.uc.Execute(context.Background(), &Request{ServiceID: 10, Date: past})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	env := newTestEnv(t, 60)
	env.catalog.service = nil
	env.catalog.serviceErr = catalogservice.ErrServiceNotFound

	_, err := env.uc.Execute(context.Background(), &Request{ServiceID: 10, Date: testDate})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveService(t *testing.T) {
	env := newTestEnv(t, 60)
	env.catalog.service.IsActive = false

	_, err := env.uc.Execute(context.Background(), &Request{ServiceID: 10, Date: testDate})

	assert.ErrorIs(t, err, ErrServiceUnavailable)
}
