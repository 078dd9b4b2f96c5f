package domain

// Reference data consumed from the catalog service. The scheduling engine
// treats these as an immutable snapshot for the duration of one computation.

// ResourceRequirement declares how many units of a resource type a service needs
type ResourceRequirement struct {
	ResourceType string
	Quantity     int
}

// Service represents a bookable service definition
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           float64
	IsActive        bool
	Requirements    []ResourceRequirement
}

// RequiredTypes returns the distinct resource types the service needs
func (s *Service) RequiredTypes() []string {
	types := make([]string, 0, len(s.Requirements))
	seen := make(map[string]bool, len(s.Requirements))
	for _, req := range s.Requirements {
		if !seen[req.ResourceType] {
			seen[req.ResourceType] = true
			types = append(types, req.ResourceType)
		}
	}
	return types
}

// Technician represents a staff member able to perform services
type Technician struct {
	ID         int64
	Name       string
	Enabled    bool
	ServiceIDs []int64
}

// CanPerform returns true if the service is in the technician's skill set
func (t *Technician) CanPerform(serviceID int64) bool {
	for _, id := range t.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// Resource represents one physical unit (a room, a piece of equipment).
// Type is an admin-defined string tag, units of one type are interchangeable
type Resource struct {
	ID   int64
	Type string
}
