// README: Pure interval-overlap conflict detection over a driver's trip set.
package dispatch

import (
	"time"

	"medtransit/internal/modules/trip"
	"medtransit/internal/types"
)

// FindConflicts scans the given trips for same-driver schedule overlaps.
// When candidate is non-nil only pairs involving the candidate are reported,
// which is the pre-assignment check dispatchers run before a manual write.
// Terminal trips never conflict; will-call trips and trips without a real
// scheduled time are exempt. Each overlapping unordered pair is reported
// exactly once regardless of input order.
func FindConflicts(trips []*trip.Trip, candidate *trip.Trip) []Conflict {
	active := make([]*trip.Trip, 0, len(trips))
	for _, t := range trips {
		if t.IsActive() {
			active = append(active, t)
		}
	}

	if candidate != nil {
		if !candidate.IsActive() {
			return nil
		}
		var conflicts []Conflict
		for _, t := range active {
			if t.ID == candidate.ID {
				continue
			}
			if !sameDriver(t, candidate) {
				continue
			}
			if overlaps(t, candidate) {
				conflicts = append(conflicts, Conflict{TripA: candidate.ID, TripB: t.ID, Kind: KindDriverOverlap})
			}
		}
		return conflicts
	}

	// Group by driver so only trips sharing a driver are compared.
	byDriver := make(map[types.ID][]*trip.Trip)
	var order []types.ID
	for _, t := range active {
		if t.DriverID == nil {
			continue
		}
		if _, seen := byDriver[*t.DriverID]; !seen {
			order = append(order, *t.DriverID)
		}
		byDriver[*t.DriverID] = append(byDriver[*t.DriverID], t)
	}

	var conflicts []Conflict
	for _, id := range order {
		group := byDriver[id]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if overlaps(group[i], group[j]) {
					conflicts = append(conflicts, Conflict{
						TripA: group[i].ID,
						TripB: group[j].ID,
						Kind:  KindDriverOverlap,
					})
				}
			}
		}
	}
	return conflicts
}

func sameDriver(a, b *trip.Trip) bool {
	// A candidate without an assignment is being checked against one
	// driver's set, so it participates unconditionally.
	if a.DriverID == nil || b.DriverID == nil {
		return true
	}
	return *a.DriverID == *b.DriverID
}

func overlaps(a, b *trip.Trip) bool {
	if a.IsWillCall || b.IsWillCall {
		return false
	}
	if !a.HasRealSchedule() || !b.HasRealSchedule() {
		return false
	}
	if !sameDay(a.ScheduledTime, b.ScheduledTime) {
		return false
	}
	aStart, aEnd := occupiedInterval(a)
	bStart, bEnd := occupiedInterval(b)
	// Half-open intervals: touching endpoints do not conflict.
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// occupiedInterval estimates [start, end) for a trip. Recorded actual times
// give the real duration; otherwise the default applies.
func occupiedInterval(t *trip.Trip) (time.Time, time.Time) {
	duration := defaultTripDuration
	if t.ActualPickupTime != nil && t.ActualDropoffTime != nil {
		if d := t.ActualDropoffTime.Sub(*t.ActualPickupTime); d > 0 {
			duration = d
		}
	}
	return t.ScheduledTime, t.ScheduledTime.Add(duration)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
