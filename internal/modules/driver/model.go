// README: Driver records and vehicle capability definitions.
package driver

import "medtransit/internal/types"

type Status string

const (
	StatusAvailable Status = "available"
	StatusOnTrip    Status = "on_trip"
	StatusOffDuty   Status = "off_duty"
)

type VehicleType string

const (
	VehicleSedan         VehicleType = "sedan"
	VehicleWheelchairVan VehicleType = "wheelchair_van"
	VehicleAmbulance     VehicleType = "ambulance"
)

// Capability ranks vehicles by the most demanding service level they can
// carry: sedan < wheelchair van < ambulance. Unknown types rank 0.
func Capability(v VehicleType) int {
	switch v {
	case VehicleSedan:
		return 1
	case VehicleWheelchairVan:
		return 2
	case VehicleAmbulance:
		return 3
	default:
		return 0
	}
}

type Driver struct {
	ID          types.ID
	Name        string
	HomeBase    string
	Status      Status
	IsActive    bool
	Rating      float64
	VehicleType VehicleType
	// Position is the last reported location, when one exists in the
	// position cache. Workload is never stored; it is computed on demand
	// from the day's trip set.
	Position *types.Point
}
