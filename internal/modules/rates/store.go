// README: Rate schedule store backed by PostgreSQL (tiers as JSONB).
package rates

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"medtransit/internal/modules/trip"
	"medtransit/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// BillingScheduleForFacility loads the facility's negotiated schedule.
// (nil, nil) means no schedule is configured, which the engine treats as
// "use defaults" per the always-produce-a-billable-number policy.
func (s *Store) BillingScheduleForFacility(ctx context.Context, facilityID types.ID) (*BillingSchedule, error) {
	row := s.db.QueryRow(ctx, `
		SELECT kind, flat_rates, tiers, cancellation_rate, no_show_rate
		FROM billing_schedules
		WHERE facility_id = $1`, string(facilityID))

	var kind string
	var flatRaw, tiersRaw []byte
	var cancelRate, noShowRate sql.NullFloat64
	err := row.Scan(&kind, &flatRaw, &tiersRaw, &cancelRate, &noShowRate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sched := &BillingSchedule{Kind: ScheduleKind(kind)}
	if len(flatRaw) > 0 {
		if err := json.Unmarshal(flatRaw, &sched.FlatRates); err != nil {
			return nil, err
		}
	}
	if len(tiersRaw) > 0 {
		if err := json.Unmarshal(tiersRaw, &sched.Tiers); err != nil {
			return nil, err
		}
	}
	sched.CancellationRate = toFloatPtr(cancelRate)
	sched.NoShowRate = toFloatPtr(noShowRate)
	return sched, nil
}

// DriverScheduleFor loads a driver's payout schedule; (nil, nil) when none is
// configured.
func (s *Store) DriverScheduleFor(ctx context.Context, driverID types.ID) (*DriverSchedule, error) {
	row := s.db.QueryRow(ctx, `
		SELECT tiers, additional_mile_rates, rental_fee, insurance_fee, percentage_cut,
		       cancellation_rate, no_show_rate
		FROM driver_schedules
		WHERE driver_id = $1`, string(driverID))

	var tiersRaw, addRatesRaw []byte
	var rental, insurance, pct float64
	var cancelRate, noShowRate sql.NullFloat64
	err := row.Scan(&tiersRaw, &addRatesRaw, &rental, &insurance, &pct, &cancelRate, &noShowRate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sched := &DriverSchedule{
		Tiers:              map[trip.ServiceLevel][]MileageTier{},
		AdditionalMileRate: map[trip.ServiceLevel]float64{},
		Deductions: Deductions{
			RentalFee:     rental,
			InsuranceFee:  insurance,
			PercentageCut: pct,
		},
	}
	if len(tiersRaw) > 0 {
		if err := json.Unmarshal(tiersRaw, &sched.Tiers); err != nil {
			return nil, err
		}
	}
	if len(addRatesRaw) > 0 {
		if err := json.Unmarshal(addRatesRaw, &sched.AdditionalMileRate); err != nil {
			return nil, err
		}
	}
	sched.CancellationRate = toFloatPtr(cancelRate)
	sched.NoShowRate = toFloatPtr(noShowRate)
	return sched, nil
}

func toFloatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
