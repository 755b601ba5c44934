// README: Rates service joins trip snapshots with schedules and runs the engine.
package rates

import (
	"context"

	"medtransit/internal/modules/trip"
	"medtransit/internal/types"
)

type TripReader interface {
	Get(ctx context.Context, id types.ID) (*trip.Trip, error)
}

type Service struct {
	store *Store
	trips TripReader
}

func NewService(store *Store, trips TripReader) *Service {
	return &Service{store: store, trips: trips}
}

// Quote is a computed amount plus the audit breakdown surfaced to dispatch
// staff.
type Quote struct {
	TripID    types.ID
	Amount    float64
	Breakdown string
}

func (s *Service) QuoteBilling(ctx context.Context, tripID types.ID) (Quote, error) {
	t, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return Quote{}, err
	}
	sched, err := s.store.BillingScheduleForFacility(ctx, t.FacilityID)
	if err != nil {
		return Quote{}, err
	}
	amount, breakdown := BillingRate(t.ServiceLevel, t.DistanceMiles, sched, t.Status)
	return Quote{TripID: t.ID, Amount: amount, Breakdown: breakdown}, nil
}

func (s *Service) QuotePayout(ctx context.Context, tripID types.ID) (Quote, error) {
	t, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return Quote{}, err
	}
	var sched *DriverSchedule
	if t.DriverID != nil {
		sched, err = s.store.DriverScheduleFor(ctx, *t.DriverID)
		if err != nil {
			return Quote{}, err
		}
	}
	amount, breakdown := DriverPayout(sched, t.ServiceLevel, t.DistanceMiles, t.Status)
	return Quote{TripID: t.ID, Amount: amount, Breakdown: breakdown}, nil
}
