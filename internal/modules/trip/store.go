// README: Trip store backed by PostgreSQL.
package trip

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"medtransit/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const tripColumns = `
	id, patient_id, facility_id, pickup_address, dropoff_address,
	pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
	scheduled_time, service_level, status, status_version,
	driver_id, distance_miles, is_will_call, trip_type,
	actual_pickup_time, actual_dropoff_time, created_at`

func (s *Store) Create(ctx context.Context, t *Trip) error {
	var pickupLat, pickupLng, dropoffLat, dropoffLng *float64
	if t.Pickup != nil {
		pickupLat, pickupLng = &t.Pickup.Lat, &t.Pickup.Lng
	}
	if t.Dropoff != nil {
		dropoffLat, dropoffLng = &t.Dropoff.Lat, &t.Dropoff.Lng
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO trips (
			id, patient_id, facility_id, pickup_address, dropoff_address,
			pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
			scheduled_time, service_level, status, status_version,
			driver_id, distance_miles, is_will_call, trip_type, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12, $13,
			$14, $15, $16, $17, $18
		)`,
		string(t.ID),
		string(t.PatientID),
		string(t.FacilityID),
		t.PickupAddress, t.DropoffAddress,
		pickupLat, pickupLng, dropoffLat, dropoffLng,
		t.ScheduledTime,
		string(t.ServiceLevel),
		string(t.Status),
		t.StatusVersion,
		toStringPtr(t.DriverID),
		t.DistanceMiles,
		t.IsWillCall,
		t.TripType,
		t.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Trip, error) {
	row := s.db.QueryRow(ctx, `SELECT`+tripColumns+` FROM trips WHERE id = $1`, string(id))
	t, err := scanTrip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

// ListActiveByDriver returns the driver's non-terminal trips, in scheduled
// order, for conflict checks.
func (s *Store) ListActiveByDriver(ctx context.Context, driverID types.ID) ([]*Trip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT`+tripColumns+`
		FROM trips
		WHERE driver_id = $1
		  AND status NOT IN ('completed', 'cancelled', 'no_show')
		ORDER BY scheduled_time`, string(driverID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrips(rows)
}

// ListForDay returns every trip scheduled on the given calendar day.
func (s *Store) ListForDay(ctx context.Context, day time.Time) ([]*Trip, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	rows, err := s.db.Query(ctx, `
		SELECT`+tripColumns+`
		FROM trips
		WHERE scheduled_time >= $1 AND scheduled_time < $2
		ORDER BY scheduled_time`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrips(rows)
}

// ListOpen returns the non-terminal backlog for risk assessment.
func (s *Store) ListOpen(ctx context.Context) ([]*Trip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT`+tripColumns+`
		FROM trips
		WHERE status NOT IN ('completed', 'cancelled', 'no_show')
		ORDER BY scheduled_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrips(rows)
}

// AssignDriver writes the assignment iff the trip is still unassigned and in
// an assignable state. Returns false when another dispatcher won the race.
func (s *Store) AssignDriver(ctx context.Context, id, driverID types.ID, version int) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE trips
		SET driver_id = $1,
		    status = 'assigned',
		    status_version = status_version + 1
		WHERE id = $2
		  AND driver_id IS NULL
		  AND status IN ('pending', 'scheduled')
		  AND status_version = $3`,
		string(driverID), string(id), version)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateStatus performs a compare-and-set status transition, stamping actual
// pickup/dropoff times as the trip progresses.
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE trips
		SET status = $1,
		    status_version = status_version + 1,
		    actual_pickup_time = CASE WHEN $1 = 'patient_loaded' THEN NOW() ELSE actual_pickup_time END,
		    actual_dropoff_time = CASE WHEN $1 = 'arrived_dropoff' THEN NOW() ELSE actual_dropoff_time END
		WHERE id = $2 AND status = $3 AND status_version = $4`,
		string(to), string(id), string(from), version)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO trip_events (trip_id, from_status, to_status, actor_type, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		string(e.TripID),
		string(e.FromStatus),
		string(e.ToStatus),
		e.ActorType,
		toStringPtr(e.ActorID),
		e.CreatedAt,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*Trip, error) {
	var t Trip
	var patientID, facilityID, driverID sql.NullString
	var pickupLat, pickupLng, dropoffLat, dropoffLng sql.NullFloat64
	var actualPickup, actualDropoff sql.NullTime

	err := row.Scan(
		&t.ID, &patientID, &facilityID, &t.PickupAddress, &t.DropoffAddress,
		&pickupLat, &pickupLng, &dropoffLat, &dropoffLng,
		&t.ScheduledTime, &t.ServiceLevel, &t.Status, &t.StatusVersion,
		&driverID, &t.DistanceMiles, &t.IsWillCall, &t.TripType,
		&actualPickup, &actualDropoff, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if patientID.Valid {
		t.PatientID = types.ID(patientID.String)
	}
	if facilityID.Valid {
		t.FacilityID = types.ID(facilityID.String)
	}
	if driverID.Valid {
		d := types.ID(driverID.String)
		t.DriverID = &d
	}
	if pickupLat.Valid && pickupLng.Valid {
		t.Pickup = &types.Point{Lat: pickupLat.Float64, Lng: pickupLng.Float64}
	}
	if dropoffLat.Valid && dropoffLng.Valid {
		t.Dropoff = &types.Point{Lat: dropoffLat.Float64, Lng: dropoffLng.Float64}
	}
	t.ActualPickupTime = toTimePtr(actualPickup)
	t.ActualDropoffTime = toTimePtr(actualDropoff)
	return &t, nil
}

func scanTrips(rows pgx.Rows) ([]*Trip, error) {
	var trips []*Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func toStringPtr(id *types.ID) *string {
	if id == nil {
		return nil
	}
	v := string(*id)
	return &v
}

func toTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
