// README: Ranked per-trip suggestions and greedy one-pass batch assignment.
package dispatch

import (
	"sort"
	"time"

	"medtransit/internal/modules/driver"
	"medtransit/internal/modules/trip"
	"medtransit/internal/types"
)

// Positions carries the resolved coordinates for trips and drivers so the
// ranking functions stay free of I/O.
type Positions struct {
	Trips   map[types.ID]types.Point
	Drivers map[types.ID]types.Point
}

func (p Positions) tripPos(id types.ID) *types.Point {
	if pt, ok := p.Trips[id]; ok {
		return &pt
	}
	return nil
}

func (p Positions) driverPos(id types.ID) *types.Point {
	if pt, ok := p.Drivers[id]; ok {
		return &pt
	}
	return nil
}

// Rank scores every eligible driver against one trip and returns the full
// list, best first. The sort is stable: ties keep the original driver order.
// Callers take the top N they need.
func Rank(t *trip.Trip, drivers []*driver.Driver, allTrips []*trip.Trip, pos Positions) []Suggestion {
	workloads := workloadByDriver(allTrips, t.ScheduledTime)
	tripPos := pos.tripPos(t.ID)

	suggestions := make([]Suggestion, 0, len(drivers))
	for _, d := range drivers {
		if !d.IsActive || d.Status == driver.StatusOffDuty {
			continue
		}
		score, reasons := Score(t, d, tripPos, pos.driverPos(d.ID), workloads[d.ID])
		suggestions = append(suggestions, Suggestion{
			TripID:   t.ID,
			DriverID: d.ID,
			Score:    score,
			Reasons:  reasons,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	return suggestions
}

// AutoAssign greedily pairs today's unassigned trips with available drivers.
// Trips are processed in their given order and each driver is claimed at most
// once per run, so earlier trips get first pick. This is a deliberate
// one-pass strategy, not a globally optimal matching; dispatchers re-run it
// or assign manually for trips left unmatched.
func AutoAssign(trips []*trip.Trip, drivers []*driver.Driver, pos Positions, now time.Time) BatchResult {
	var eligible []*trip.Trip
	for _, t := range trips {
		if t.DriverID != nil {
			continue
		}
		if t.Status != trip.StatusPending && t.Status != trip.StatusScheduled {
			continue
		}
		if !t.HasRealSchedule() || !sameDay(t.ScheduledTime, now) {
			continue
		}
		eligible = append(eligible, t)
	}

	var pool []*driver.Driver
	for _, d := range drivers {
		if d.IsActive && d.Status == driver.StatusAvailable {
			pool = append(pool, d)
		}
	}

	workloads := workloadByDriver(trips, now)
	claimed := make(map[types.ID]bool, len(pool))

	result := BatchResult{
		TripsConsidered:  len(eligible),
		DriversAvailable: len(pool),
	}

	for _, t := range eligible {
		var best *Suggestion
		tripPos := pos.tripPos(t.ID)
		for _, d := range pool {
			if claimed[d.ID] {
				continue
			}
			score, reasons := Score(t, d, tripPos, pos.driverPos(d.ID), workloads[d.ID])
			// Strict greater keeps the first driver on ties, which makes
			// repeated runs over identical input deterministic.
			if best == nil || score > best.Score {
				best = &Suggestion{TripID: t.ID, DriverID: d.ID, Score: score, Reasons: reasons}
			}
		}
		if best == nil {
			result.Unmatched++
			continue
		}
		claimed[best.DriverID] = true
		result.Suggestions = append(result.Suggestions, *best)
	}

	return result
}

// workloadByDriver counts each driver's non-terminal trips on the given day.
func workloadByDriver(trips []*trip.Trip, day time.Time) map[types.ID]int {
	counts := make(map[types.ID]int)
	for _, t := range trips {
		if t.DriverID == nil || !t.IsActive() {
			continue
		}
		if !t.HasRealSchedule() || !sameDay(t.ScheduledTime, day) {
			continue
		}
		counts[*t.DriverID]++
	}
	return counts
}
