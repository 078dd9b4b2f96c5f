package get_available_technicians

import "time"

// Request модель запроса на получение доступных мастеров
type Request struct {
	ServiceID int64     // ID услуги
	StartTime time.Time // Время начала желаемого окна
}

// Technician доступный мастер
type Technician struct {
	ID   int64  // ID мастера
	Name string // Имя мастера
}

// Response модель ответа со списком доступных мастеров
type Response struct {
	ServiceID   int64        // ID услуги
	StartTime   time.Time    // Начало окна
	EndTime     time.Time    // Конец окна (start + длительность услуги)
	Technicians []Technician // Мастера, свободные на окно
}
