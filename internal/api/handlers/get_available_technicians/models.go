package get_available_technicians

import (
	"time"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	getAvailableTechnicians "github.com/auracontrol/AC-BookingService/internal/usecase/get_available_technicians"
)

// TechnicianResponse HTTP модель мастера
type TechnicianResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AvailableTechniciansResponse HTTP response model
type AvailableTechniciansResponse struct {
	ServiceID   int64                `json:"serviceId"`
	StartTime   string               `json:"startTime"`
	EndTime     string               `json:"endTime"`
	Technicians []TechnicianResponse `json:"technicians"`
}

// ToUseCaseRequest создает запрос use case из параметров маршрута
func ToUseCaseRequest(serviceID int64, startTimeStr string) (*getAvailableTechnicians.Request, error) {
	startTime, err := time.ParseInLocation(domain.DateTimeFormat, startTimeStr, time.Local)
	if err != nil {
		return nil, err
	}

	return &getAvailableTechnicians.Request{
		ServiceID: serviceID,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableTechnicians.Response) *AvailableTechniciansResponse {
	technicians := make([]TechnicianResponse, len(resp.Technicians))
	for i, tech := range resp.Technicians {
		technicians[i] = TechnicianResponse{ID: tech.ID, Name: tech.Name}
	}

	return &AvailableTechniciansResponse{
		ServiceID:   resp.ServiceID,
		StartTime:   resp.StartTime.Format(time.RFC3339),
		EndTime:     resp.EndTime.Format(time.RFC3339),
		Technicians: technicians,
	}
}
