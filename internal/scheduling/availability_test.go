package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/auracontrol/AC-BookingService/internal/domain"
)

var testDay = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return testDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func TestAvailableTechnicians(t *testing.T) {
	technicians := []domain.Technician{
		{ID: 1, Name: "Анна", Enabled: true, ServiceIDs: []int64{10}},
		{ID: 2, Name: "Борис", Enabled: true, ServiceIDs: []int64{10, 20}},
		{ID: 3, Name: "Вера", Enabled: true, ServiceIDs: []int64{20}},
		{ID: 4, Name: "Галина", Enabled: false, ServiceIDs: []int64{10}},
	}

	t.Run("filters by skill and enabled flag", func(t *testing.T) {
		available := AvailableTechnicians(technicians, 10, nil, nil, at(10, 0), at(11, 0))

		assert.Len(t, available, 2)
		assert.Equal(t, int64(1), available[0].ID)
		assert.Equal(t, int64(2), available[1].ID)
	})

	t.Run("excludes technician with overlapping appointment", func(t *testing.T) {
		appointments := []*domain.Appointment{
			{TechnicianID: 1, StartTime: at(10, 30), EndTime: at(11, 30), Status: domain.StatusConfirmed},
		}

		available := AvailableTechnicians(technicians, 10, appointments, nil, at(10, 0), at(11, 0))

		assert.Len(t, available, 1)
		assert.Equal(t, int64(2), available[0].ID)
	})

	t.Run("cancelled appointment frees the technician", func(t *testing.T) {
		appointments := []*domain.Appointment{
			{TechnicianID: 1, StartTime: at(10, 30), EndTime: at(11, 30), Status: domain.StatusCancelled},
		}

		available := AvailableTechnicians(technicians, 10, appointments, nil, at(10, 0), at(11, 0))

		assert.Len(t, available, 2)
	})

	t.Run("excludes technician with pending absence", func(t *testing.T) {
		absences := []*domain.AbsenceRequest{
			{TechnicianID: 2, StartDate: testDay, EndDate: testDay.Add(24 * time.Hour), Status: domain.AbsencePending},
		}

		available := AvailableTechnicians(technicians, 10, nil, absences, at(10, 0), at(11, 0))

		assert.Len(t, available, 1)
		assert.Equal(t, int64(1), available[0].ID)
	})

	t.Run("rejected absence does not block", func(t *testing.T) {
		absences := []*domain.AbsenceRequest{
			{TechnicianID: 2, StartDate: testDay, EndDate: testDay.Add(24 * time.Hour), Status: domain.AbsenceRejected},
		}

		available := AvailableTechnicians(technicians, 10, nil, absences, at(10, 0), at(11, 0))

		assert.Len(t, available, 2)
	})

	t.Run("appointment touching window boundary does not block", func(t *testing.T) {
		appointments := []*domain.Appointment{
			{TechnicianID: 1, StartTime: at(9, 0), EndTime: at(10, 0), Status: domain.StatusConfirmed},
			{TechnicianID: 1, StartTime: at(11, 0), EndTime: at(12, 0), Status: domain.StatusConfirmed},
		}

		available := AvailableTechnicians(technicians, 10, appointments, nil, at(10, 0), at(11, 0))

		assert.Len(t, available, 2)
	})
}

func TestTechnicianBusy(t *testing.T) {
	appointments := []*domain.Appointment{
		{TechnicianID: 1, StartTime: at(10, 0), EndTime: at(11, 0), Status: domain.StatusPending},
		{TechnicianID: 2, StartTime: at(10, 0), EndTime: at(11, 0), Status: domain.StatusCancelled},
	}

	assert.True(t, TechnicianBusy(appointments, 1, at(10, 30), at(11, 30)))
	assert.False(t, TechnicianBusy(appointments, 1, at(11, 0), at(12, 0)))
	// отменённая запись мастера не считается занятостью
	assert.False(t, TechnicianBusy(appointments, 2, at(10, 30), at(11, 30)))
	assert.False(t, TechnicianBusy(appointments, 3, at(10, 0), at(11, 0)))
}

func TestTechnicianOnLeave(t *testing.T) {
	absences := []*domain.AbsenceRequest{
		{TechnicianID: 1, StartDate: testDay, EndDate: testDay.Add(24 * time.Hour), Status: domain.AbsenceApproved},
	}

	assert.True(t, TechnicianOnLeave(absences, 1, at(10, 0), at(11, 0)))
	assert.False(t, TechnicianOnLeave(absences, 2, at(10, 0), at(11, 0)))
	// окно на следующий день не пересекается с отсутствием
	nextDay := testDay.Add(24 * time.Hour)
	assert.False(t, TechnicianOnLeave(absences, 1, nextDay.Add(10*time.Hour), nextDay.Add(11*time.Hour)))
}
