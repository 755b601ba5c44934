// README: Dispatch service tests over in-memory stores.
package dispatch

import (
	"context"
	"testing"
	"time"

	"medtransit/internal/modules/driver"
	"medtransit/internal/modules/trip"
	"medtransit/internal/types"
)

type fakeTripStore struct {
	trips    map[types.ID]*trip.Trip
	byDriver map[types.ID][]*trip.Trip
	events   []*trip.Event
}

func (f *fakeTripStore) Get(_ context.Context, id types.ID) (*trip.Trip, error) {
	t, ok := f.trips[id]
	if !ok {
		return nil, trip.ErrNotFound
	}
	return t, nil
}

func (f *fakeTripStore) ListForDay(context.Context, time.Time) ([]*trip.Trip, error) {
	return nil, nil
}

func (f *fakeTripStore) ListActiveByDriver(_ context.Context, id types.ID) ([]*trip.Trip, error) {
	return f.byDriver[id], nil
}

func (f *fakeTripStore) AssignDriver(_ context.Context, id, driverID types.ID, _ int) (bool, error) {
	d := driverID
	f.trips[id].DriverID = &d
	return true, nil
}

func (f *fakeTripStore) AppendEvent(_ context.Context, e *trip.Event) error {
	f.events = append(f.events, e)
	return nil
}

type fakeDirectory struct {
	drivers map[types.ID]*driver.Driver
	nearby  []types.ID
	queried []types.Point
}

func (f *fakeDirectory) Get(_ context.Context, id types.ID) (*driver.Driver, error) {
	d, ok := f.drivers[id]
	if !ok {
		return nil, driver.ErrNotFound
	}
	return d, nil
}

func (f *fakeDirectory) ListActive(context.Context) ([]*driver.Driver, error) {
	var out []*driver.Driver
	for _, d := range f.drivers {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDirectory) AvailableNear(_ context.Context, p types.Point) ([]types.ID, error) {
	f.queried = append(f.queried, p)
	return f.nearby, nil
}

type stubResolver struct {
	point types.Point
	ok    bool
}

func (r stubResolver) Resolve(context.Context, string) (types.Point, bool, error) {
	return r.point, r.ok, nil
}

func TestNearbyDrivers_QueriesPickupCellBucket(t *testing.T) {
	pickup := types.Point{Lat: 32.7800, Lng: -96.8000}
	store := &fakeTripStore{trips: map[types.ID]*trip.Trip{
		"t1": {ID: "t1", Status: trip.StatusPending, Pickup: &pickup},
	}}
	dir := &fakeDirectory{
		drivers: map[types.ID]*driver.Driver{
			"d1": {ID: "d1", Status: driver.StatusAvailable, IsActive: true},
		},
		nearby: []types.ID{"d1", "d_stale"},
	}
	svc := NewService(store, dir, stubResolver{})

	got, err := svc.NearbyDrivers(context.Background(), "t1")
	if err != nil {
		t.Fatalf("NearbyDrivers: %v", err)
	}
	if len(dir.queried) != 1 || dir.queried[0] != pickup {
		t.Fatalf("bucket queried with %v, want pickup %v", dir.queried, pickup)
	}
	if len(got) != 1 || got[0].ID != "d1" {
		t.Fatalf("stale bucket entry not skipped: %v", got)
	}
}

func TestNearbyDrivers_ResolvesAddressWithoutCoordinates(t *testing.T) {
	store := &fakeTripStore{trips: map[types.ID]*trip.Trip{
		"t1": {ID: "t1", Status: trip.StatusPending, PickupAddress: "800 Main St"},
	}}
	dir := &fakeDirectory{drivers: map[types.ID]*driver.Driver{}}
	resolved := types.Point{Lat: 32.9000, Lng: -96.7000}
	svc := NewService(store, dir, stubResolver{point: resolved, ok: true})

	if _, err := svc.NearbyDrivers(context.Background(), "t1"); err != nil {
		t.Fatalf("NearbyDrivers: %v", err)
	}
	if len(dir.queried) != 1 || dir.queried[0] != resolved {
		t.Fatalf("bucket queried with %v, want resolved point %v", dir.queried, resolved)
	}
}

func TestNearbyDrivers_UnresolvableAddress(t *testing.T) {
	store := &fakeTripStore{trips: map[types.ID]*trip.Trip{
		"t1": {ID: "t1", Status: trip.StatusPending},
	}}
	dir := &fakeDirectory{}
	svc := NewService(store, dir, stubResolver{})

	got, err := svc.NearbyDrivers(context.Background(), "t1")
	if err != nil || got != nil {
		t.Fatalf("unresolvable pickup should yield no drivers, got %v, %v", got, err)
	}
	if len(dir.queried) != 0 {
		t.Fatal("bucket must not be queried without a pickup point")
	}
}

func TestAssign_EventRecordsDispatcherActor(t *testing.T) {
	store := &fakeTripStore{
		trips: map[types.ID]*trip.Trip{
			"t1": {ID: "t1", Status: trip.StatusPending},
		},
		byDriver: map[types.ID][]*trip.Trip{},
	}
	dir := &fakeDirectory{drivers: map[types.ID]*driver.Driver{
		"d1": {ID: "d1", Status: driver.StatusAvailable, IsActive: true},
	}}
	svc := NewService(store, dir, stubResolver{})

	actor := types.ID("disp-7")
	if err := svc.Assign(context.Background(), "t1", "d1", &actor); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if len(store.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(store.events))
	}
	e := store.events[0]
	if e.ActorType != "dispatcher" {
		t.Errorf("actor type = %q, want dispatcher", e.ActorType)
	}
	if e.ActorID == nil || *e.ActorID != actor {
		t.Errorf("actor id = %v, want the dispatcher's, not the driver's", e.ActorID)
	}
}

func TestAssign_NoActorStaysNil(t *testing.T) {
	store := &fakeTripStore{
		trips: map[types.ID]*trip.Trip{
			"t1": {ID: "t1", Status: trip.StatusScheduled},
		},
		byDriver: map[types.ID][]*trip.Trip{},
	}
	dir := &fakeDirectory{drivers: map[types.ID]*driver.Driver{
		"d1": {ID: "d1", Status: driver.StatusAvailable, IsActive: true},
	}}
	svc := NewService(store, dir, stubResolver{})

	if err := svc.Assign(context.Background(), "t1", "d1", nil); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if len(store.events) != 1 || store.events[0].ActorID != nil {
		t.Fatalf("unattributed assignment must record a nil actor, got %+v", store.events)
	}
}

func TestAssign_ScheduleConflictBlocked(t *testing.T) {
	when := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	d1 := types.ID("d1")
	store := &fakeTripStore{
		trips: map[types.ID]*trip.Trip{
			"t1": {ID: "t1", Status: trip.StatusPending, ScheduledTime: when},
		},
		byDriver: map[types.ID][]*trip.Trip{
			"d1": {{ID: "t_busy", Status: trip.StatusAssigned, DriverID: &d1, ScheduledTime: when.Add(15 * time.Minute)}},
		},
	}
	dir := &fakeDirectory{drivers: map[types.ID]*driver.Driver{
		"d1": {ID: "d1", Status: driver.StatusAvailable, IsActive: true},
	}}
	svc := NewService(store, dir, stubResolver{})

	if err := svc.Assign(context.Background(), "t1", "d1", nil); err != ErrScheduleConflict {
		t.Fatalf("err = %v, want ErrScheduleConflict", err)
	}
	if len(store.events) != 0 {
		t.Fatal("blocked assignment must not record an event")
	}
}
