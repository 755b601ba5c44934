// README: Dispatch service loads snapshots, resolves coordinates, and runs the pure core.
package dispatch

import (
	"context"
	"errors"
	"log"
	"time"

	"medtransit/internal/geo"
	"medtransit/internal/modules/driver"
	"medtransit/internal/modules/trip"
	"medtransit/internal/types"
)

var (
	ErrScheduleConflict = errors.New("assignment would overlap the driver's schedule")
	ErrNotAssignable    = errors.New("trip is not in an assignable state")
)

type TripStore interface {
	Get(ctx context.Context, id types.ID) (*trip.Trip, error)
	ListForDay(ctx context.Context, day time.Time) ([]*trip.Trip, error)
	ListActiveByDriver(ctx context.Context, driverID types.ID) ([]*trip.Trip, error)
	AssignDriver(ctx context.Context, id, driverID types.ID, version int) (bool, error)
	AppendEvent(ctx context.Context, e *trip.Event) error
}

type DriverDirectory interface {
	Get(ctx context.Context, id types.ID) (*driver.Driver, error)
	ListActive(ctx context.Context) ([]*driver.Driver, error)
	AvailableNear(ctx context.Context, p types.Point) ([]types.ID, error)
}

type Service struct {
	trips    TripStore
	drivers  DriverDirectory
	resolver geo.Resolver
}

func NewService(trips TripStore, drivers DriverDirectory, resolver geo.Resolver) *Service {
	return &Service{trips: trips, drivers: drivers, resolver: resolver}
}

// Recommend returns the full ranked driver list for one trip.
func (s *Service) Recommend(ctx context.Context, tripID types.ID) ([]Suggestion, error) {
	t, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return nil, err
	}

	drivers, err := s.drivers.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	day := t.ScheduledTime
	if !t.HasRealSchedule() {
		day = time.Now()
	}
	allTrips, err := s.trips.ListForDay(ctx, day)
	if err != nil {
		return nil, err
	}

	pos := s.resolvePositions(ctx, []*trip.Trip{t}, drivers)
	return Rank(t, drivers, allTrips, pos), nil
}

// AutoAssignToday runs one greedy batch over today's backlog.
func (s *Service) AutoAssignToday(ctx context.Context) (BatchResult, error) {
	now := time.Now()
	trips, err := s.trips.ListForDay(ctx, now)
	if err != nil {
		return BatchResult{}, err
	}
	drivers, err := s.drivers.ListActive(ctx)
	if err != nil {
		return BatchResult{}, err
	}
	pos := s.resolvePositions(ctx, trips, drivers)
	return AutoAssign(trips, drivers, pos, now), nil
}

// NearbyDrivers returns the available drivers bucketed in the same coarse
// geohash cell as the trip's pickup. It is the cheap "who is around" view
// dispatchers check before pulling a full ranking; precision is the cell
// size, nothing finer.
func (s *Service) NearbyDrivers(ctx context.Context, tripID types.ID) ([]*driver.Driver, error) {
	t, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return nil, err
	}
	p := t.Pickup
	if p == nil {
		pt, ok, err := s.resolver.Resolve(ctx, t.PickupAddress)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		p = &pt
	}

	ids, err := s.drivers.AvailableNear(ctx, *p)
	if err != nil {
		return nil, err
	}
	nearby := make([]*driver.Driver, 0, len(ids))
	for _, id := range ids {
		d, err := s.drivers.Get(ctx, id)
		if err != nil {
			// Bucket entries can outlive the driver record; skip stale IDs.
			continue
		}
		nearby = append(nearby, d)
	}
	return nearby, nil
}

// CheckConflicts reports overlaps for a driver's schedule, optionally testing
// a candidate trip that is not yet assigned to them.
func (s *Service) CheckConflicts(ctx context.Context, driverID types.ID, candidateTripID types.ID) ([]Conflict, error) {
	active, err := s.trips.ListActiveByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	var candidate *trip.Trip
	if candidateTripID != "" {
		candidate, err = s.trips.Get(ctx, candidateTripID)
		if err != nil {
			return nil, err
		}
	}
	return FindConflicts(active, candidate), nil
}

// Assign is the manual assignment write path: conflict check first, then a
// compare-and-set write so two dispatchers cannot double-book a trip.
// actorID identifies the dispatcher making the call, when known.
func (s *Service) Assign(ctx context.Context, tripID, driverID types.ID, actorID *types.ID) error {
	t, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return err
	}
	if t.DriverID != nil || (t.Status != trip.StatusPending && t.Status != trip.StatusScheduled) {
		return ErrNotAssignable
	}
	if _, err := s.drivers.Get(ctx, driverID); err != nil {
		return err
	}

	active, err := s.trips.ListActiveByDriver(ctx, driverID)
	if err != nil {
		return err
	}
	if conflicts := FindConflicts(active, t); len(conflicts) > 0 {
		return ErrScheduleConflict
	}

	ok, err := s.trips.AssignDriver(ctx, tripID, driverID, t.StatusVersion)
	if err != nil {
		return err
	}
	if !ok {
		return trip.ErrConflict
	}
	_ = s.trips.AppendEvent(ctx, &trip.Event{
		TripID:     tripID,
		FromStatus: t.Status,
		ToStatus:   trip.StatusAssigned,
		ActorType:  "dispatcher",
		ActorID:    actorID,
		CreatedAt:  time.Now(),
	})
	return nil
}

// resolvePositions builds the coordinate index the pure core consumes. Trips
// prefer stored pickup coordinates, then the resolver; drivers prefer their
// cached position, then their home base. Resolution failures are logged and
// skipped; the scorer treats missing positions as "proximity unknown".
func (s *Service) resolvePositions(ctx context.Context, trips []*trip.Trip, drivers []*driver.Driver) Positions {
	pos := Positions{
		Trips:   make(map[types.ID]types.Point, len(trips)),
		Drivers: make(map[types.ID]types.Point, len(drivers)),
	}
	for _, t := range trips {
		if t.Pickup != nil {
			pos.Trips[t.ID] = *t.Pickup
			continue
		}
		p, ok, err := s.resolver.Resolve(ctx, t.PickupAddress)
		if err != nil {
			log.Printf("resolve trip %s pickup: %v", t.ID, err)
			continue
		}
		if ok {
			pos.Trips[t.ID] = p
		}
	}
	for _, d := range drivers {
		if d.Position != nil {
			pos.Drivers[d.ID] = *d.Position
			continue
		}
		base := d.HomeBase
		if base == "" {
			base = d.Name
		}
		p, ok, err := s.resolver.Resolve(ctx, base)
		if err != nil {
			log.Printf("resolve driver %s base: %v", d.ID, err)
			continue
		}
		if ok {
			pos.Drivers[d.ID] = p
		}
	}
	return pos
}
