package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на запись
	ErrAccessDenied = errors.New("appointments: access denied")

	// ErrCannotCancel возвращается, когда запись нельзя отменить
	// из текущего статуса (в том числе при повторной отмене)
	ErrCannotCancel = errors.New("appointments: appointment cannot be cancelled")

	// ErrTooLateToCancel возвращается, когда до начала записи осталось
	// меньше минимального интервала для отмены
	ErrTooLateToCancel = errors.New("appointments: too late to cancel this appointment")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("appointments: invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
