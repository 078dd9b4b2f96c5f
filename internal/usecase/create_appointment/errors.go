package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceUnavailable возвращается, когда услуга отключена
	ErrServiceUnavailable = errors.New("create_appointment: service is not active")

	// ErrTechnicianNotFound возвращается, когда указанный мастер не найден
	ErrTechnicianNotFound = errors.New("create_appointment: technician not found")

	// ErrTechnicianNotQualified возвращается, когда мастер не владеет услугой
	// или отключён
	ErrTechnicianNotQualified = errors.New("create_appointment: technician cannot perform this service")

	// ErrTechnicianBusy возвращается, когда у мастера уже есть запись
	// на пересекающееся окно
	ErrTechnicianBusy = errors.New("create_appointment: technician is busy in this window")

	// ErrTechnicianOnLeave возвращается, когда окно пересекается
	// с блокирующей заявкой мастера на отсутствие
	ErrTechnicianOnLeave = errors.New("create_appointment: technician is on leave in this window")

	// ErrNoTechniciansAvailable возвращается, когда ни один мастер
	// не может взять услугу в указанное окно
	ErrNoTechniciansAvailable = errors.New("create_appointment: no technicians available in this window")

	// ErrInsufficientResources возвращается, когда свободных единиц
	// какого-либо требуемого типа ресурсов не хватает на окно
	ErrInsufficientResources = errors.New("create_appointment: insufficient resources in this window")

	// ErrSlotTaken возвращается, когда конкурирующие записи исчерпали
	// ретраи сериализуемой транзакции - окно успели занять
	ErrSlotTaken = errors.New("create_appointment: slot was taken by a concurrent booking")

	// ErrTimeInPast возвращается, когда время начала уже прошло
	ErrTimeInPast = errors.New("create_appointment: start time is in the past")

	// ErrOutsideBusinessHours возвращается, когда окно выходит за рабочие
	// часы салона или пересекает перерыв
	ErrOutsideBusinessHours = errors.New("create_appointment: window is outside business hours")

	// ErrInvalidTimeSlot возвращается, когда время начала не выровнено
	// по сетке слотов
	ErrInvalidTimeSlot = errors.New("create_appointment: start time is not aligned to the slot grid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
