// README: Risk service runs the estimator over single trips or the open backlog.
package risk

import (
	"context"

	"medtransit/internal/modules/trip"
	"medtransit/internal/types"
)

type TripSource interface {
	Get(ctx context.Context, id types.ID) (*trip.Trip, error)
	ListOpen(ctx context.Context) ([]*trip.Trip, error)
}

type Service struct {
	store *Store
	trips TripSource
}

func NewService(store *Store, trips TripSource) *Service {
	return &Service{store: store, trips: trips}
}

// Assess predicts no-show risk for one trip. weather is optional free-form
// input from the dispatcher ("severe"/"poor"); empty means not supplied.
func (s *Service) Assess(ctx context.Context, tripID types.ID, weather string) (Prediction, error) {
	t, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return Prediction{}, err
	}
	hist, err := s.store.PatientHistory(ctx, t.PatientID)
	if err != nil {
		return Prediction{}, err
	}
	if weather != "" {
		hist.Weather = &weather
	}
	return EstimateRisk(t, hist), nil
}

// AssessBacklog flags every open trip so dispatch staff can prioritize
// confirmation calls. Predictions come back in backlog order.
func (s *Service) AssessBacklog(ctx context.Context) ([]Prediction, error) {
	open, err := s.trips.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	predictions := make([]Prediction, 0, len(open))
	for _, t := range open {
		hist, err := s.store.PatientHistory(ctx, t.PatientID)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, EstimateRisk(t, hist))
	}
	return predictions, nil
}
