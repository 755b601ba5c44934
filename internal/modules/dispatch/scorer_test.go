// README: Compatibility scorer tests (tiers, reasons ordering).
package dispatch

import (
	"strings"
	"testing"
	"time"

	"medtransit/internal/modules/driver"
	"medtransit/internal/modules/trip"
	"medtransit/internal/types"
)

// milesNorth offsets a point roughly the given miles due north; one degree of
// latitude is ~69 miles.
func milesNorth(p types.Point, miles float64) types.Point {
	return types.Point{Lat: p.Lat + miles/69.0, Lng: p.Lng}
}

func scoringTrip(level trip.ServiceLevel) *trip.Trip {
	return &trip.Trip{
		ID:            "t1",
		ScheduledTime: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		ServiceLevel:  level,
		Status:        trip.StatusPending,
	}
}

func scoringDriver(vehicle driver.VehicleType) *driver.Driver {
	return &driver.Driver{
		ID:          "d1",
		Status:      driver.StatusAvailable,
		IsActive:    true,
		Rating:      4.6,
		VehicleType: vehicle,
	}
}

func TestScore_BestCase(t *testing.T) {
	pickup := types.Point{Lat: 32.7767, Lng: -96.7970}
	near := milesNorth(pickup, 1)

	// 100 base + 30 proximity + 25 exact vehicle + 10 rating + 15 workload + 20 available.
	score, reasons := Score(scoringTrip(trip.ServiceWheelchair), scoringDriver(driver.VehicleWheelchairVan), &pickup, &near, 1)
	if score != 200 {
		t.Fatalf("score = %.0f, want 200 (%v)", score, reasons)
	}
	if len(reasons) != 5 {
		t.Fatalf("expected 5 reasons, got %d: %v", len(reasons), reasons)
	}
}

func TestScore_ProximityTiers(t *testing.T) {
	pickup := types.Point{Lat: 32.7767, Lng: -96.7970}
	tests := []struct {
		miles float64
		delta float64
	}{
		{1, 30},
		{3, 20},
		{7, 10},
		{15, -10},
	}
	for _, tc := range tests {
		pos := milesNorth(pickup, tc.miles)
		score, _ := Score(scoringTrip(trip.ServiceWheelchair), scoringDriver(driver.VehicleWheelchairVan), &pickup, &pos, 1)
		base, _ := Score(scoringTrip(trip.ServiceWheelchair), scoringDriver(driver.VehicleWheelchairVan), nil, nil, 1)
		if score-base != tc.delta {
			t.Errorf("proximity delta at %.0f mi = %.0f, want %.0f", tc.miles, score-base, tc.delta)
		}
	}
}

func TestScore_VehicleMatch(t *testing.T) {
	tests := []struct {
		level   trip.ServiceLevel
		vehicle driver.VehicleType
		delta   float64
	}{
		{trip.ServiceWheelchair, driver.VehicleWheelchairVan, 25},
		{trip.ServiceStretcher, driver.VehicleAmbulance, 25},
		{trip.ServiceAmbulatory, driver.VehicleSedan, 15},
		{trip.ServiceAmbulatory, driver.VehicleWheelchairVan, 10},
		{trip.ServiceWheelchair, driver.VehicleAmbulance, 10},
		{trip.ServiceWheelchair, driver.VehicleSedan, -5},
		{trip.ServiceStretcher, driver.VehicleSedan, -5},
	}
	for _, tc := range tests {
		// 100 base + 10 rating + 15 workload + 20 available = 145 without vehicle term.
		score, _ := Score(scoringTrip(tc.level), scoringDriver(tc.vehicle), nil, nil, 1)
		if score != 145+tc.delta {
			t.Errorf("Score(%s, %s) = %.0f, want %.0f", tc.level, tc.vehicle, score, 145+tc.delta)
		}
	}
}

func TestScore_RatingAndWorkloadAndAvailability(t *testing.T) {
	tr := scoringTrip(trip.ServiceAmbulatory)

	lowRated := scoringDriver(driver.VehicleSedan)
	lowRated.Rating = 3.2
	score, _ := Score(tr, lowRated, nil, nil, 1)
	if score != 150 { // 100 + 15 vehicle + 0 rating + 15 workload + 20 available
		t.Errorf("low-rated score = %.0f, want 150", score)
	}

	goodRated := scoringDriver(driver.VehicleSedan)
	goodRated.Rating = 4.2
	score, _ = Score(tr, goodRated, nil, nil, 4)
	if score != 148 { // 100 + 15 + 5 + 8 moderate + 20
		t.Errorf("moderate workload score = %.0f, want 148", score)
	}

	busy := scoringDriver(driver.VehicleSedan)
	score, reasons := Score(tr, busy, nil, nil, 6)
	if score != 140 { // 100 + 15 + 10 - 5 heavy + 20
		t.Errorf("heavy workload score = %.0f, want 140 (%v)", score, reasons)
	}

	offDuty := scoringDriver(driver.VehicleSedan)
	offDuty.Status = driver.StatusOnTrip
	score, _ = Score(tr, offDuty, nil, nil, 1)
	if score != 120 { // 100 + 15 + 10 + 15 - 20 unavailable
		t.Errorf("unavailable score = %.0f, want 120", score)
	}
}

func TestScore_ReasonsPreserveEvaluationOrder(t *testing.T) {
	pickup := types.Point{Lat: 32.7767, Lng: -96.7970}
	near := milesNorth(pickup, 1)
	_, reasons := Score(scoringTrip(trip.ServiceWheelchair), scoringDriver(driver.VehicleWheelchairVan), &pickup, &near, 1)

	wantOrder := []string{"close", "vehicle", "rating", "schedule", "available"}
	if len(reasons) != len(wantOrder) {
		t.Fatalf("expected %d reasons, got %v", len(wantOrder), reasons)
	}
	for i, fragment := range wantOrder {
		if !strings.Contains(reasons[i], fragment) {
			t.Errorf("reasons[%d] = %q, want it to mention %q", i, reasons[i], fragment)
		}
	}
}
