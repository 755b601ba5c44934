// README: Conflict detection tests (overlap, exemptions, dedupe).
package dispatch

import (
	"testing"
	"time"

	"medtransit/internal/modules/trip"
	"medtransit/internal/types"
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func tripAt(id string, driverID string, hour, minute int) *trip.Trip {
	t := &trip.Trip{
		ID:            types.ID(id),
		ScheduledTime: day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute),
		ServiceLevel:  trip.ServiceAmbulatory,
		Status:        trip.StatusAssigned,
	}
	if driverID != "" {
		d := types.ID(driverID)
		t.DriverID = &d
	}
	return t
}

func TestFindConflicts_OverlappingDefaultDuration(t *testing.T) {
	// 09:00 runs to 09:45 by default; 09:30 overlaps, 10:00 does not.
	a := tripAt("t1", "d1", 9, 0)
	b := tripAt("t2", "d1", 9, 30)

	conflicts := FindConflicts([]*trip.Trip{a, b}, nil)
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}
	if conflicts[0].Kind != KindDriverOverlap {
		t.Errorf("kind = %s, want %s", conflicts[0].Kind, KindDriverOverlap)
	}

	c := tripAt("t3", "d1", 10, 0)
	conflicts = FindConflicts([]*trip.Trip{a, c}, nil)
	if len(conflicts) != 0 {
		t.Fatalf("09:45 end touching 10:00 start must not conflict, got %d", len(conflicts))
	}
}

func TestFindConflicts_OrderIndependentSinglePair(t *testing.T) {
	a := tripAt("t1", "d1", 9, 0)
	b := tripAt("t2", "d1", 9, 30)

	forward := FindConflicts([]*trip.Trip{a, b}, nil)
	reversed := FindConflicts([]*trip.Trip{b, a}, nil)
	if len(forward) != 1 || len(reversed) != 1 {
		t.Fatalf("expected exactly one conflict each way, got %d and %d", len(forward), len(reversed))
	}
}

func TestFindConflicts_ActualTimesOverrideDefault(t *testing.T) {
	// Recorded 09:00-10:30 run overlaps a 10:00 trip the default would miss.
	a := tripAt("t1", "d1", 9, 0)
	pickup := day.Add(9 * time.Hour)
	dropoff := day.Add(10*time.Hour + 30*time.Minute)
	a.ActualPickupTime = &pickup
	a.ActualDropoffTime = &dropoff
	b := tripAt("t2", "d1", 10, 0)

	if got := FindConflicts([]*trip.Trip{a, b}, nil); len(got) != 1 {
		t.Fatalf("expected 1 conflict with actual duration, got %d", len(got))
	}
}

func TestFindConflicts_Exemptions(t *testing.T) {
	base := tripAt("t1", "d1", 9, 0)

	willCall := tripAt("t2", "d1", 9, 0)
	willCall.IsWillCall = true

	sentinel := tripAt("t3", "d1", 9, 0)
	sentinel.ScheduledTime = time.Date(2000, 1, 1, 9, 0, 0, 0, time.UTC)

	unscheduled := tripAt("t4", "d1", 9, 0)
	unscheduled.ScheduledTime = time.Time{}

	otherDriver := tripAt("t5", "d2", 9, 0)

	nextDay := tripAt("t6", "d1", 9, 0)
	nextDay.ScheduledTime = nextDay.ScheduledTime.Add(24 * time.Hour)

	cancelled := tripAt("t7", "d1", 9, 0)
	cancelled.Status = trip.StatusCancelled

	trips := []*trip.Trip{base, willCall, sentinel, unscheduled, otherDriver, nextDay, cancelled}
	if got := FindConflicts(trips, nil); len(got) != 0 {
		t.Fatalf("expected no conflicts, got %v", got)
	}
}

func TestFindConflicts_WillCallIdenticalTimestamp(t *testing.T) {
	a := tripAt("t1", "d1", 9, 0)
	b := tripAt("t2", "d1", 9, 0)
	b.IsWillCall = true
	if got := FindConflicts([]*trip.Trip{a, b}, nil); len(got) != 0 {
		t.Fatalf("will-call trips never conflict, got %v", got)
	}
}

func TestFindConflicts_Candidate(t *testing.T) {
	existing := []*trip.Trip{
		tripAt("t1", "d1", 9, 0),
		tripAt("t2", "d1", 11, 0),
	}

	// Unassigned candidate checked against one driver's schedule.
	candidate := tripAt("c1", "", 9, 15)
	conflicts := FindConflicts(existing, candidate)
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}
	if conflicts[0].TripA != "c1" || conflicts[0].TripB != "t1" {
		t.Errorf("conflict pair = (%s, %s), want (c1, t1)", conflicts[0].TripA, conflicts[0].TripB)
	}

	clear := tripAt("c2", "", 10, 0)
	if got := FindConflicts(existing, clear); len(got) != 0 {
		t.Fatalf("expected no conflicts for 10:00 candidate, got %v", got)
	}

	done := tripAt("c3", "", 9, 15)
	done.Status = trip.StatusCompleted
	if got := FindConflicts(existing, done); got != nil {
		t.Fatalf("terminal candidate must not conflict, got %v", got)
	}
}

func TestFindConflicts_MultipleDrivers(t *testing.T) {
	trips := []*trip.Trip{
		tripAt("t1", "d1", 9, 0),
		tripAt("t2", "d1", 9, 30),
		tripAt("t3", "d2", 9, 0),
		tripAt("t4", "d2", 9, 10),
		tripAt("t5", "d3", 9, 0),
	}
	conflicts := FindConflicts(trips, nil)
	if len(conflicts) != 2 {
		t.Fatalf("expected 2 conflicts (one per driver pair), got %d: %v", len(conflicts), conflicts)
	}
}
