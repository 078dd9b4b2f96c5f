package get_available_slots

import (
	"time"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	"github.com/auracontrol/AC-BookingService/internal/scheduling"
)

// generateCandidateWindows генерирует окна-кандидаты на день: от открытия
// до закрытия с шагом сетки слотов. Окно отбрасывается, если выходит
// за время закрытия, пересекает перерыв или (для сегодняшней даты)
// начинается в прошлом
func generateCandidateWindows(
	schedule domain.BusinessSchedule,
	durationMinutes int,
	date time.Time,
	now time.Time,
) []Slot {
	if isDateInPast(date, now) {
		return []Slot{}
	}

	open, close := schedule.WindowOnDate(date)
	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(schedule.SlotStepMinutes) * time.Minute

	hasBreak := schedule.HasBreak()
	var breakStart, breakEnd time.Time
	if hasBreak {
		breakStart, breakEnd = schedule.BreakOnDate(date)
	}

	today := isSameDay(date, now)

	windows := make([]Slot, 0)
	for start := open; !start.After(close); start = start.Add(step) {
		end := start.Add(duration)
		if end.After(close) {
			break
		}

		if hasBreak && domain.Overlaps(start, end, breakStart, breakEnd) {
			continue
		}

		// Сегодняшние слоты, начало которых уже прошло, не предлагаются;
		// слот, начинающийся ровно сейчас, ещё годится
		if today && start.Before(now) {
			continue
		}

		windows = append(windows, Slot{StartTime: start, EndTime: end})
	}

	return windows
}

// calculateAvailability отбирает из окон-кандидатов доступные слоты:
// слот доступен, когда хотя бы один мастер свободен и по каждому типу
// ресурсов хватает свободных единиц. Все проверки выполняются в памяти
// над одним снимком занятости на весь день
func calculateAvailability(
	windows []Slot,
	serviceID int64,
	technicianID *int64,
	technicians []domain.Technician,
	requirements []domain.ResourceRequirement,
	resources []domain.Resource,
	appointments []*domain.Appointment,
	absences []*domain.AbsenceRequest,
) []Slot {
	available := make([]Slot, 0, len(windows))

	for _, window := range windows {
		free := scheduling.AvailableTechnicians(
			technicians, serviceID, appointments, absences, window.StartTime, window.EndTime)

		if technicianID != nil {
			free = filterTechnician(free, *technicianID)
		}

		if len(free) == 0 {
			continue
		}

		if !scheduling.HasCapacity(requirements, resources, appointments, window.StartTime, window.EndTime) {
			continue
		}

		window.AvailableTechnicians = len(free)
		available = append(available, window)
	}

	return available
}

// filterTechnician оставляет в списке только указанного мастера
func filterTechnician(technicians []domain.Technician, technicianID int64) []domain.Technician {
	for _, tech := range technicians {
		if tech.ID == technicianID {
			return []domain.Technician{tech}
		}
	}
	return nil
}
