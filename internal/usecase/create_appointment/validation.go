package create_appointment

import (
	"fmt"
	"time"

	"github.com/auracontrol/AC-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.TechnicianID != nil && *req.TechnicianID <= 0 {
		return fmt.Errorf("%w: technicianID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	return nil
}

// validateWindow проверяет, что окно записи укладывается в рабочий календарь:
// начало выровнено по сетке слотов, окно целиком внутри рабочих часов
// и не пересекает перерыв
func validateWindow(start, end time.Time, schedule domain.BusinessSchedule) error {
	if start.Second() != 0 || start.Nanosecond() != 0 {
		return ErrInvalidTimeSlot
	}

	minutesOfDay := start.Hour()*60 + start.Minute()
	if schedule.SlotStepMinutes > 0 && minutesOfDay%schedule.SlotStepMinutes != 0 {
		return ErrInvalidTimeSlot
	}

	open, close := schedule.WindowOnDate(start)
	if start.Before(open) || end.After(close) {
		return ErrOutsideBusinessHours
	}

	if schedule.HasBreak() {
		breakStart, breakEnd := schedule.BreakOnDate(start)
		if domain.Overlaps(start, end, breakStart, breakEnd) {
			return ErrOutsideBusinessHours
		}
	}

	return nil
}
