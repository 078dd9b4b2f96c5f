package get_available_slots

import (
	"time"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	getAvailableSlots "github.com/auracontrol/AC-BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ServiceID       int64           `json:"serviceId"`
	Date            string          `json:"date"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель доступного слота
type AvailableSlot struct {
	StartTime            string `json:"startTime"`
	EndTime              string `json:"endTime"`
	AvailableTechnicians int    `json:"availableTechnicians"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:            slot.StartTime.Format(time.RFC3339),
			EndTime:              slot.EndTime.Format(time.RFC3339),
			AvailableTechnicians: slot.AvailableTechnicians,
		}
	}

	return &AvailableSlotsResponse{
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров маршрута
func ToUseCaseRequest(serviceID int64, dateStr string, technicianID *int64) (*getAvailableSlots.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, time.Local)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID:    serviceID,
		Date:         date,
		TechnicianID: technicianID,
	}, nil
}
