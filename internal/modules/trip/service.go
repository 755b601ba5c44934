// README: Trip service enforces status transitions and records status events.
package trip

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"medtransit/internal/types"
)

var (
	ErrNotFound     = errors.New("trip not found")
	ErrInvalidState = errors.New("invalid status transition")
	ErrConflict     = errors.New("trip state conflict")
	ErrBadRequest   = errors.New("bad request")
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type CreateCommand struct {
	PatientID      types.ID
	FacilityID     types.ID
	PickupAddress  string
	DropoffAddress string
	ScheduledTime  time.Time
	ServiceLevel   ServiceLevel
	DistanceMiles  float64
	IsWillCall     bool
	TripType       string
}

type UpdateStatusCommand struct {
	TripID    types.ID
	To        Status
	ActorType string
	ActorID   *types.ID
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (types.ID, error) {
	if cmd.PatientID == "" || cmd.ServiceLevel == "" {
		return "", ErrBadRequest
	}
	if cmd.DistanceMiles < 0 {
		return "", ErrBadRequest
	}

	id := newID()
	now := time.Now()
	t := &Trip{
		ID:             id,
		PatientID:      cmd.PatientID,
		FacilityID:     cmd.FacilityID,
		PickupAddress:  cmd.PickupAddress,
		DropoffAddress: cmd.DropoffAddress,
		ScheduledTime:  cmd.ScheduledTime,
		ServiceLevel:   cmd.ServiceLevel,
		Status:         StatusPending,
		DistanceMiles:  cmd.DistanceMiles,
		IsWillCall:     cmd.IsWillCall,
		TripType:       cmd.TripType,
		CreatedAt:      now,
	}
	if err := s.store.Create(ctx, t); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Trip, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) UpdateStatus(ctx context.Context, cmd UpdateStatusCommand) error {
	t, err := s.store.Get(ctx, cmd.TripID)
	if err != nil {
		return err
	}
	if !CanTransition(t.Status, cmd.To) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, t.ID, t.Status, cmd.To, t.StatusVersion)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	_ = s.store.AppendEvent(ctx, &Event{
		TripID:     t.ID,
		FromStatus: t.Status,
		ToStatus:   cmd.To,
		ActorType:  cmd.ActorType,
		ActorID:    cmd.ActorID,
		CreatedAt:  time.Now(),
	})
	return nil
}

func newID() types.ID {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return types.ID(hex.EncodeToString(buf))
}
