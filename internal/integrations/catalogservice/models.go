package catalogservice

import "github.com/auracontrol/AC-BookingService/internal/domain"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Service модель услуги из каталога
type Service struct {
	ID              int64                 `json:"id"`
	Name            string                `json:"name"`
	DurationMinutes int                   `json:"durationMinutes"`
	Price           float64               `json:"price"`
	IsActive        bool                  `json:"isActive"`
	Requirements    []ResourceRequirement `json:"resourceRequirements"`
}

// ResourceRequirement требование услуги к ресурсам
type ResourceRequirement struct {
	ResourceType string `json:"resourceType"`
	Quantity     int    `json:"quantity"`
}

// Technician модель мастера из каталога
type Technician struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Enabled    bool    `json:"enabled"`
	ServiceIDs []int64 `json:"serviceIds"`
}

// Resource модель единицы ресурса из каталога (только неудалённые)
type Resource struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// ToDomain конвертирует услугу в доменный снапшот
func (s *Service) ToDomain() *domain.Service {
	requirements := make([]domain.ResourceRequirement, len(s.Requirements))
	for i, req := range s.Requirements {
		requirements[i] = domain.ResourceRequirement{
			ResourceType: req.ResourceType,
			Quantity:     req.Quantity,
		}
	}

	return &domain.Service{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		IsActive:        s.IsActive,
		Requirements:    requirements,
	}
}

// ToDomainTechnicians конвертирует список мастеров в доменные снапшоты
func ToDomainTechnicians(technicians []Technician) []domain.Technician {
	result := make([]domain.Technician, len(technicians))
	for i, tech := range technicians {
		result[i] = domain.Technician{
			ID:         tech.ID,
			Name:       tech.Name,
			Enabled:    tech.Enabled,
			ServiceIDs: tech.ServiceIDs,
		}
	}
	return result
}

// ToDomainResources конвертирует список ресурсов в доменные снапшоты
func ToDomainResources(resources []Resource) []domain.Resource {
	result := make([]domain.Resource, len(resources))
	for i, res := range resources {
		result[i] = domain.Resource{
			ID:   res.ID,
			Type: res.Type,
		}
	}
	return result
}
