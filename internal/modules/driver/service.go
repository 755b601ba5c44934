// README: Driver service for duty status and high-frequency location updates.
package driver

import (
	"context"
	"errors"

	"medtransit/internal/types"
)

var (
	ErrNotFound   = errors.New("driver not found")
	ErrBadRequest = errors.New("bad request")
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type LocationUpdate struct {
	DriverID types.ID
	Position types.Point
	// Status optionally changes duty status in the same update; empty
	// leaves it untouched.
	Status Status
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Driver, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p, ok, err := s.store.Position(ctx, id); err == nil && ok {
		d.Position = &p
	}
	return d, nil
}

func (s *Service) ListActive(ctx context.Context) ([]*Driver, error) {
	drivers, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range drivers {
		if p, ok, err := s.store.Position(ctx, d.ID); err == nil && ok {
			d.Position = &p
		}
	}
	return drivers, nil
}

// AvailableNear returns the IDs of available drivers whose last reported
// position falls in the same coarse geohash cell as p.
func (s *Service) AvailableNear(ctx context.Context, p types.Point) ([]types.ID, error) {
	return s.store.AvailableInCell(ctx, p)
}

func (s *Service) UpdateLocation(ctx context.Context, u LocationUpdate) error {
	if u.DriverID == "" {
		return ErrBadRequest
	}
	d, err := s.store.Get(ctx, u.DriverID)
	if err != nil {
		return err
	}
	status := d.Status
	if u.Status != "" {
		if u.Status != StatusAvailable && u.Status != StatusOnTrip && u.Status != StatusOffDuty {
			return ErrBadRequest
		}
		status = u.Status
		if err := s.store.UpdateStatus(ctx, u.DriverID, status); err != nil {
			return err
		}
	}
	return s.store.SetPosition(ctx, u.DriverID, u.Position, status == StatusAvailable)
}
