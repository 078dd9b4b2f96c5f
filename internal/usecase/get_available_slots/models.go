package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID    int64     // ID услуги
	Date         time.Time // Дата, на которую запрашиваются слоты (без времени)
	TechnicianID *int64    // ID мастера (nil - любой доступный)
}

// Slot модель доступного слота
type Slot struct {
	StartTime            time.Time // Время начала слота
	EndTime              time.Time // Время окончания (start + длительность услуги)
	AvailableTechnicians int       // Количество мастеров, свободных на этот слот
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ServiceID       int64     // ID услуги
	Date            time.Time // Дата, на которую запрашивались слоты
	DurationMinutes int       // Длительность услуги в минутах
	Slots           []Slot    // Доступные слоты, отсортированные по времени
}
