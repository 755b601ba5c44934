// README: Derived dispatch records (suggestions, conflicts) and scoring constants.
package dispatch

import (
	"time"

	"medtransit/internal/types"
)

// Suggestion is a scored (trip, driver) pairing produced fresh per
// invocation; it is never persisted. Reasons are kept in evaluation order
// because dispatchers read them as the score's justification.
type Suggestion struct {
	TripID   types.ID `json:"trip_id"`
	DriverID types.ID `json:"driver_id"`
	Score    float64  `json:"score"`
	Reasons  []string `json:"reasons"`
}

type ConflictKind string

const KindDriverOverlap ConflictKind = "driver_overlap"

// Conflict reports one overlapping unordered trip pair on a single driver.
type Conflict struct {
	TripA types.ID     `json:"trip_a"`
	TripB types.ID     `json:"trip_b"`
	Kind  ConflictKind `json:"kind"`
}

// BatchResult summarizes one greedy auto-assign run.
type BatchResult struct {
	TripsConsidered  int          `json:"trips_considered"`
	DriversAvailable int          `json:"drivers_available"`
	Unmatched        int          `json:"unmatched"`
	Suggestions      []Suggestion `json:"suggestions"`
}

const (
	// defaultTripDuration estimates how long a trip occupies its driver when
	// no actual pickup/dropoff times have been recorded yet.
	defaultTripDuration = 45 * time.Minute

	// baseScore is the starting compatibility score before adjustments.
	baseScore = 100.0

	// Proximity adjustments by driver distance to pickup.
	proximityVeryClose  = 30.0 // under 2 miles
	proximityClose      = 20.0 // under 5 miles
	proximityNearby     = 10.0 // under 10 miles
	proximityFarPenalty = 10.0
	veryCloseMiles      = 2.0
	closeMiles          = 5.0
	nearbyMiles         = 10.0

	// Vehicle/service-level adjustments.
	vehicleExactMatch  = 25.0 // wheelchair van for wheelchair, ambulance for stretcher
	vehicleSedanMatch  = 15.0 // sedan for ambulatory
	vehicleOverCapable = 10.0
	vehicleMismatch    = 5.0

	// Rating adjustments.
	ratingExcellent      = 4.5
	ratingGood           = 4.0
	ratingExcellentBonus = 10.0
	ratingGoodBonus      = 5.0

	// Workload adjustments by trips already on today's schedule.
	workloadLightMax      = 3
	workloadModerateMax   = 5
	workloadLightBonus    = 15.0
	workloadModerateBonus = 8.0
	workloadHeavyPenalty  = 5.0

	// Availability adjustments.
	availableBonus     = 20.0
	unavailablePenalty = 20.0
)
