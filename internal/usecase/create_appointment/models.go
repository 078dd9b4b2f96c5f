package create_appointment

import "time"

// Request модель запроса на создание записи
type Request struct {
	CustomerID   int64     // ID клиента
	ServiceID    int64     // ID услуги
	TechnicianID *int64    // ID мастера (nil - автоназначение)
	StartTime    time.Time // Время начала
	Note         *string   // Пожелания клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID           int64     // ID созданной записи
	CustomerID   int64     // ID клиента
	TechnicianID int64     // ID назначенного мастера
	ServiceID    int64     // ID услуги
	StartTime    time.Time // Время начала
	EndTime      time.Time // Время окончания (start + длительность услуги)
	Status       string    // Статус записи

	// Снапшот данных услуги на момент записи
	ServiceName string   // Название услуги
	FinalPrice  *float64 // Зафиксированная цена
	Note        *string  // Пожелания клиента

	ResourceIDs []int64 // Зарезервированные единицы ресурсов

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
