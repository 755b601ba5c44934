// README: Pure compatibility scoring for a single (trip, driver) pair.
package dispatch

import (
	"fmt"

	"medtransit/internal/geo"
	"medtransit/internal/modules/driver"
	"medtransit/internal/modules/trip"
	"medtransit/internal/types"
)

// requiredVehicle maps a service level to the vehicle built for it.
var requiredVehicle = map[trip.ServiceLevel]driver.VehicleType{
	trip.ServiceAmbulatory: driver.VehicleSedan,
	trip.ServiceWheelchair: driver.VehicleWheelchairVan,
	trip.ServiceStretcher:  driver.VehicleAmbulance,
}

// Score rates how well a driver fits a trip. It starts from a fixed baseline
// and applies proximity, vehicle, rating, workload, and availability
// adjustments, appending one human-readable reason per adjustment in
// evaluation order. The result is deliberately unclamped; only relative
// ordering matters to callers.
func Score(t *trip.Trip, d *driver.Driver, tripPos, driverPos *types.Point, workloadToday int) (float64, []string) {
	score := baseScore
	var reasons []string

	// Proximity. Coordinates come from the injected resolver (real geocoder
	// or the deterministic mock); when either side is unresolved the
	// adjustment is skipped rather than guessed.
	if tripPos != nil && driverPos != nil {
		miles := geo.MilesBetween(*tripPos, *driverPos)
		switch {
		case miles < veryCloseMiles:
			score += proximityVeryClose
			reasons = append(reasons, fmt.Sprintf("very close to pickup (%.1f mi)", miles))
		case miles < closeMiles:
			score += proximityClose
			reasons = append(reasons, fmt.Sprintf("close to pickup (%.1f mi)", miles))
		case miles < nearbyMiles:
			score += proximityNearby
			reasons = append(reasons, fmt.Sprintf("within range of pickup (%.1f mi)", miles))
		default:
			score -= proximityFarPenalty
			reasons = append(reasons, fmt.Sprintf("far from pickup (%.1f mi)", miles))
		}
	} else {
		reasons = append(reasons, "driver location unknown, proximity not scored")
	}

	// Vehicle capability vs service level.
	required := requiredVehicle[t.ServiceLevel]
	switch {
	case d.VehicleType == required && t.ServiceLevel != trip.ServiceAmbulatory:
		score += vehicleExactMatch
		reasons = append(reasons, fmt.Sprintf("exact vehicle match (%s)", d.VehicleType))
	case d.VehicleType == required:
		score += vehicleSedanMatch
		reasons = append(reasons, "sedan fits ambulatory trip")
	case driver.Capability(d.VehicleType) > driver.Capability(required):
		score += vehicleOverCapable
		reasons = append(reasons, fmt.Sprintf("%s exceeds %s requirement", d.VehicleType, t.ServiceLevel))
	default:
		score -= vehicleMismatch
		reasons = append(reasons, fmt.Sprintf("vehicle mismatch (%s for %s)", d.VehicleType, t.ServiceLevel))
	}

	// Driver rating.
	switch {
	case d.Rating >= ratingExcellent:
		score += ratingExcellentBonus
		reasons = append(reasons, fmt.Sprintf("excellent rating (%.1f)", d.Rating))
	case d.Rating >= ratingGood:
		score += ratingGoodBonus
		reasons = append(reasons, fmt.Sprintf("good rating (%.1f)", d.Rating))
	}

	// Workload: trips already on the driver's schedule today.
	switch {
	case workloadToday < workloadLightMax:
		score += workloadLightBonus
		reasons = append(reasons, fmt.Sprintf("light schedule (%d trips today)", workloadToday))
	case workloadToday < workloadModerateMax:
		score += workloadModerateBonus
		reasons = append(reasons, fmt.Sprintf("moderate schedule (%d trips today)", workloadToday))
	default:
		score -= workloadHeavyPenalty
		reasons = append(reasons, fmt.Sprintf("heavy schedule (%d trips today)", workloadToday))
	}

	// Current availability.
	if d.Status == driver.StatusAvailable {
		score += availableBonus
		reasons = append(reasons, "currently available")
	} else {
		score -= unavailablePenalty
		reasons = append(reasons, fmt.Sprintf("not available (%s)", d.Status))
	}

	return score, reasons
}
