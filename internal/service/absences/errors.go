package absences

import "errors"

var (
	// ErrAbsenceNotFound возвращается, когда заявка не найдена
	ErrAbsenceNotFound = errors.New("absences: absence request not found")

	// ErrOverlappingRequest возвращается, когда у мастера уже есть
	// ожидающая или одобренная заявка на пересекающийся период
	ErrOverlappingRequest = errors.New("absences: overlapping absence request already exists")

	// ErrInvalidDecision возвращается при недопустимом решении по заявке
	ErrInvalidDecision = errors.New("absences: invalid review decision")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("absences: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("absences: internal error")
)
