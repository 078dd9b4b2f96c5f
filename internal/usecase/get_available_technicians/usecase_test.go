package get_available_technicians

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	"github.com/auracontrol/AC-BookingService/internal/integrations/catalogservice"
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
}

func (c *fakeCatalogClient) GetService(_ context.Context, _ int64) (*catalogservice.Service, error) {
	return c.service, c.serviceErr
}

func (c *fakeCatalogClient) GetTechniciansByService(_ context.Context, _ int64) ([]catalogservice.Technician, error) {
	return c.technicians, nil
}

type noopLogger struct{}

func (l *noopLogger) Info(string, ...interface{})  {}
func (l *noopLogger) Warn(string, ...interface{})  {}
func (l *noopLogger) Error(string, ...interface{}) {}

// Фикстуры

var testStart = time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

func newUseCase(apptRepo *fakeAppointmentRepo, absenceRepo *fakeAbsenceRepo, catalog *fakeCatalogClient) *UseCase {
	return NewUseCase(apptRepo, absenceRepo, catalog, &noopLogger{})
}

func testCatalog() *fakeCatalogClient {
	return &fakeCatalogClient{
		service: &catalogservice.Service{
			ID:              10,
			Name:            "Массаж спины",
			DurationMinutes: 60,
			IsActive:        true,
		},
		technicians: []catalogservice.Technician{
			{ID: 1, Name: "Анна", Enabled: true, ServiceIDs: []int64{10}},
			{ID: 2, Name: "Борис", Enabled: true, ServiceIDs: []int64{10}},
			{ID: 3, Name: "Вера", Enabled: false, ServiceIDs: []int64{10}},
		},
	}
}

// Тесты

func TestExecute_ReturnsFreeTechnicians(t *testing.T) {
	uc := newUseCase(&fakeAppointmentRepo{}, &fakeAbsenceRepo{}, testCatalog())

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 10, StartTime: testStart})

	require.NoError(t, err)
	assert.Equal(t, testStart, resp.StartTime)
	assert.Equal(t, testStart.Add(time.Hour), resp.EndTime)

	// Отключённый мастер не предлагается
	require.Len(t, resp.Technicians, 2)
	assert.Equal(t, "Анна", resp.Technicians[0].Name)
	assert.Equal(t, "Борис", resp.Technicians[1].Name)
}

func TestExecute_BusyTechnicianExcluded(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{
		overlapping: []*domain.Appointment{
			{
				TechnicianID: 1,
				StartTime:    testStart.Add(30 * time.Minute),
				EndTime:      testStart.Add(90 * time.Minute),
				Status:       domain.StatusPending,
			},
		},
	}
	uc := newUseCase(apptRepo, &fakeAbsenceRepo{}, testCatalog())

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 10, StartTime: testStart})

	require.NoError(t, err)
	require.Len(t, resp.Technicians, 1)
	assert.Equal(t, int64(2), resp.Technicians[0].ID)
}

func TestExecute_AbsentTechnicianExcluded(t *testing.T) {
	absenceRepo := &fakeAbsenceRepo{
		blocking: []*domain.AbsenceRequest{
			{
				TechnicianID: 2,
				StartDate:    testStart.Add(-time.Hour),
				EndDate:      testStart.Add(5 * time.Hour),
				Status:       domain.AbsenceApproved,
			},
		},
	}
	uc := newUseCase(&fakeAppointmentRepo{}, absenceRepo, testCatalog())

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 10, StartTime: testStart})

	require.NoError(t, err)
	require.Len(t, resp.Technicians, 1)
	assert.Equal(t, int64(1), resp.Technicians[0].ID)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	catalog := testCatalog()
	catalog.service = nil
	catalog.serviceErr = catalogservice.ErrServiceNotFound
	uc := newUseCase(&fakeAppointmentRepo{}, &fakeAbsenceRepo{}, catalog)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 10, StartTime: testStart})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveService(t *testing.T) {
	catalog := testCatalog()
	catalog.service.IsActive = false
	uc := newUseCase(&fakeAppointmentRepo{}, &fakeAbsenceRepo{}, catalog)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 10, StartTime: testStart})

	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newUseCase(&fakeAppointmentRepo{}, &fakeAbsenceRepo{}, testCatalog())

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 0, StartTime: testStart})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
