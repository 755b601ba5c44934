// README: Trip aggregate, service levels, and status definitions.
package trip

import (
	"time"

	"medtransit/internal/types"
)

type ServiceLevel string

const (
	ServiceAmbulatory ServiceLevel = "ambulatory"
	ServiceWheelchair ServiceLevel = "wheelchair"
	ServiceStretcher  ServiceLevel = "stretcher"
)

type Status string

const (
	StatusPending        Status = "pending"
	StatusScheduled      Status = "scheduled"
	StatusAssigned       Status = "assigned"
	StatusEnRoutePickup  Status = "en_route_pickup"
	StatusArrivedPickup  Status = "arrived_pickup"
	StatusPatientLoaded  Status = "patient_loaded"
	StatusEnRouteDropoff Status = "en_route_dropoff"
	StatusArrivedDropoff Status = "arrived_dropoff"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
	StatusNoShow         Status = "no_show"
)

// sentinelYear marks legacy records whose scheduled time means "unscheduled".
const sentinelYear = 2000

type Trip struct {
	ID                types.ID
	PatientID         types.ID
	FacilityID        types.ID
	PickupAddress     string
	DropoffAddress    string
	Pickup            *types.Point
	Dropoff           *types.Point
	ScheduledTime     time.Time
	ServiceLevel      ServiceLevel
	Status            Status
	StatusVersion     int
	DriverID          *types.ID
	DistanceMiles     float64
	IsWillCall        bool
	TripType          string
	ActualPickupTime  *time.Time
	ActualDropoffTime *time.Time
	CreatedAt         time.Time
}

type Event struct {
	ID         int64
	TripID     types.ID
	FromStatus Status
	ToStatus   Status
	ActorType  string
	ActorID    *types.ID
	CreatedAt  time.Time
}

// AllowedTransitions represents the trip state flow (diagram) as code.
// Cancellation and no-show are reachable from every pre-completion state.
var AllowedTransitions = map[Status][]Status{
	StatusPending:        {StatusScheduled, StatusAssigned, StatusCancelled, StatusNoShow},
	StatusScheduled:      {StatusAssigned, StatusCancelled, StatusNoShow},
	StatusAssigned:       {StatusEnRoutePickup, StatusCancelled, StatusNoShow},
	StatusEnRoutePickup:  {StatusArrivedPickup, StatusCancelled, StatusNoShow},
	StatusArrivedPickup:  {StatusPatientLoaded, StatusCancelled, StatusNoShow},
	StatusPatientLoaded:  {StatusEnRouteDropoff, StatusCancelled, StatusNoShow},
	StatusEnRouteDropoff: {StatusArrivedDropoff, StatusCancelled, StatusNoShow},
	StatusArrivedDropoff: {StatusCompleted, StatusCancelled, StatusNoShow},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status ends the trip for conflict and billing
// purposes.
func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// IsActive reports whether a trip still occupies its driver's schedule.
func (t *Trip) IsActive() bool {
	return !IsTerminal(t.Status)
}

// HasRealSchedule reports whether ScheduledTime carries an actual time: zero
// values and the legacy year-2000 sentinel both mean "unscheduled".
func (t *Trip) HasRealSchedule() bool {
	return !t.ScheduledTime.IsZero() && t.ScheduledTime.Year() != sentinelYear
}
