package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда запись принадлежит другому клиенту
	ErrAccessDenied = errors.New("reschedule_appointment: access denied")

	// ErrInvalidStatus возвращается, когда запись нельзя перенести
	// из текущего статуса
	ErrInvalidStatus = errors.New("reschedule_appointment: appointment cannot be rescheduled in its current status")

	// ErrTooLateToChange возвращается, когда до начала записи осталось
	// меньше минимального интервала для изменений
	ErrTooLateToChange = errors.New("reschedule_appointment: too late to reschedule this appointment")

	// ErrTimeInPast возвращается, когда новое время начала уже прошло
	ErrTimeInPast = errors.New("reschedule_appointment: new start time is in the past")

	// ErrOutsideBusinessHours возвращается, когда новое окно выходит
	// за рабочие часы салона или пересекает перерыв
	ErrOutsideBusinessHours = errors.New("reschedule_appointment: window is outside business hours")

	// ErrInvalidTimeSlot возвращается, когда новое время начала
	// не выровнено по сетке слотов
	ErrInvalidTimeSlot = errors.New("reschedule_appointment: start time is not aligned to the slot grid")

	// ErrTechnicianBusy возвращается, когда у назначенного мастера
	// уже есть запись на новое окно
	ErrTechnicianBusy = errors.New("reschedule_appointment: technician is busy in the new window")

	// ErrTechnicianOnLeave возвращается, когда новое окно пересекается
	// с блокирующей заявкой мастера на отсутствие
	ErrTechnicianOnLeave = errors.New("reschedule_appointment: technician is on leave in the new window")

	// ErrInsufficientResources возвращается, когда свободных единиц
	// какого-либо требуемого типа ресурсов не хватает на новое окно
	ErrInsufficientResources = errors.New("reschedule_appointment: insufficient resources in the new window")

	// ErrSlotTaken возвращается, когда конкурирующие записи исчерпали
	// ретраи сериализуемой транзакции - новое окно успели занять
	ErrSlotTaken = errors.New("reschedule_appointment: slot was taken by a concurrent booking")

	// ErrServiceNotFound возвращается, когда услуга записи исчезла из каталога
	ErrServiceNotFound = errors.New("reschedule_appointment: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
