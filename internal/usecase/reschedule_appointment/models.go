package reschedule_appointment

import "time"

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID int64     // ID записи
	CustomerID    int64     // ID клиента-владельца (из заголовков авторизации)
	NewStartTime  time.Time // Новое время начала
}

// Response модель ответа с перенесённой записью
type Response struct {
	ID           int64     // ID записи
	CustomerID   int64     // ID клиента
	TechnicianID int64     // ID мастера (не меняется при переносе)
	ServiceID    int64     // ID услуги
	StartTime    time.Time // Новое время начала
	EndTime      time.Time // Новое время окончания
	Status       string    // Статус записи

	ServiceName string   // Название услуги
	FinalPrice  *float64 // Зафиксированная цена
	Note        *string  // Пожелания клиента

	ResourceIDs []int64 // Перераспределённые единицы ресурсов

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
