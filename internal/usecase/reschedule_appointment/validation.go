package reschedule_appointment

import (
	"fmt"
	"time"

	"github.com/auracontrol/AC-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.NewStartTime.IsZero() {
		return fmt.Errorf("%w: newStartTime is required", ErrInvalidInput)
	}

	return nil
}

// validateWindow проверяет, что новое окно укладывается в рабочий календарь
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
