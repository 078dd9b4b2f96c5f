package scheduling

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/auracontrol/AC-BookingService/internal/domain"
)

var (
	// ErrInsufficientResources возвращается, когда свободных единиц
	// какого-либо требуемого типа меньше, чем нужно услуге
	ErrInsufficientResources = errors.New("scheduling: insufficient resources")
)

// InsufficientResourceError names the first resource type that could not
// be satisfied. errors.Is(err, ErrInsufficientResources) matches it
type InsufficientResourceError struct {
	ResourceType string
}

func (e *InsufficientResourceError) Error() string {
	return fmt.Sprintf("scheduling: not enough resources of type %q", e.ResourceType)
}

func (e *InsufficientResourceError) Is(target error) bool {
	return target == ErrInsufficientResources
}

// HasCapacity reports whether every requirement can be satisfied in the
// window: free units of a type = total units - units held by active
// appointments overlapping the window. Short-circuits on the first
// failing requirement
func HasCapacity(
	requirements []domain.ResourceRequirement,
	resources []domain.Resource,
	appointments []*domain.Appointment,
	windowStart, windowEnd time.Time,
) bool {
	if len(requirements) == 0 {
		return true
	}

	typeByID := resourceTypes(resources)
	busy := busyResourceIDs(appointments, windowStart, windowEnd)

	busyByType := make(map[string]int)
	for id := range busy {
		busyByType[typeByID[id]]++
	}

	totalByType := make(map[string]int)
	for _, res := range resources {
		totalByType[res.Type]++
	}

	for _, req := range requirements {
		if totalByType[req.ResourceType]-busyByType[req.ResourceType] < req.Quantity {
			return false
		}
	}

	return true
}

// Allocate picks concrete free units for every requirement. The pick is
// greedy and deterministic (lowest id first) and never reuses a unit
// already selected in the same call. Requirements are independent per
// type, so no backtracking is needed. Returns InsufficientResourceError
// naming the first type that cannot be satisfied
func Allocate(
	requirements []domain.ResourceRequirement,
	resources []domain.Resource,
	appointments []*domain.Appointment,
	windowStart, windowEnd time.Time,
) ([]int64, error) {
	if len(requirements) == 0 {
		return nil, nil
	}

	busy := busyResourceIDs(appointments, windowStart, windowEnd)

	byType := make(map[string][]int64)
	for _, res := range resources {
		byType[res.Type] = append(byType[res.Type], res.ID)
	}
	for _, ids := range byType {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}

	allocated := make([]int64, 0)
	taken := make(map[int64]bool)

	for _, req := range requirements {
		remaining := req.Quantity

		for _, id := range byType[req.ResourceType] {
			if remaining == 0 {
				break
			}
			if busy[id] || taken[id] {
				continue
			}
			taken[id] = true
			allocated = append(allocated, id)
			remaining--
		}

		if remaining > 0 {
			return nil, &InsufficientResourceError{ResourceType: req.ResourceType}
		}
	}

	return allocated, nil
}

// busyResourceIDs collects the units held by active appointments
// overlapping the window
func busyResourceIDs(appointments []*domain.Appointment, windowStart, windowEnd time.Time) map[int64]bool {
	busy := make(map[int64]bool)
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if !domain.Overlaps(appt.StartTime, appt.EndTime, windowStart, windowEnd) {
			continue
		}
		for _, id := range appt.ResourceIDs {
			busy[id] = true
		}
	}
	return busy
}

func resourceTypes(resources []domain.Resource) map[int64]string {
	types := make(map[int64]string, len(resources))
	for _, res := range resources {
		types[res.ID] = res.Type
	}
	return types
}
