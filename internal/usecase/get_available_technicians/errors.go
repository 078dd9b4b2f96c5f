package get_available_technicians

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("get_available_technicians: service not found")

	// ErrServiceUnavailable возвращается, когда услуга отключена
	ErrServiceUnavailable = errors.New("get_available_technicians: service is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_technicians: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_technicians: internal error")
)
