// README: Driver store backed by PostgreSQL with a Redis position cache.
package driver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mmcloughlin/geohash"
	"github.com/redis/go-redis/v9"

	"medtransit/internal/types"
)

const (
	positionGeoKey = "drivers:positions"
	// bucketKeyFormat holds per-cell sets of available driver IDs so
	// dispatchers can pull a coarse "who is near this pickup" view.
	bucketKeyFormat = "drivers:cell:%s"
	bucketPrecision = 5
)

type Store struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewStore(db *pgxpool.Pool, redis *redis.Client) *Store {
	return &Store{db: db, redis: redis}
}

const driverColumns = `id, name, home_base, status, is_active, rating, vehicle_type`

func (s *Store) Get(ctx context.Context, id types.ID) (*Driver, error) {
	row := s.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = $1`, string(id))
	d, err := scanDriver(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return d, err
}

// ListActive returns every active driver regardless of duty status; the
// recommender applies its own eligibility filters.
func (s *Store) ListActive(ctx context.Context) ([]*Driver, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+driverColumns+`
		FROM drivers
		WHERE is_active
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (s *Store) UpdateStatus(ctx context.Context, id types.ID, status Status) error {
	tag, err := s.db.Exec(ctx, `UPDATE drivers SET status = $1 WHERE id = $2`, string(status), string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPosition records the driver's latest coordinates in the GEO set and, for
// available drivers, in the geohash cell bucket used for coarse lookups.
func (s *Store) SetPosition(ctx context.Context, id types.ID, p types.Point, available bool) error {
	err := s.redis.GeoAdd(ctx, positionGeoKey, &redis.GeoLocation{
		Name:      string(id),
		Longitude: p.Lng,
		Latitude:  p.Lat,
	}).Err()
	if err != nil {
		return err
	}

	cell := geohash.EncodeWithPrecision(p.Lat, p.Lng, bucketPrecision)
	bucket := fmt.Sprintf(bucketKeyFormat, cell)
	if available {
		return s.redis.SAdd(ctx, bucket, string(id)).Err()
	}
	return s.redis.SRem(ctx, bucket, string(id)).Err()
}

// Position returns the cached coordinates for a driver, ok=false when the
// driver has never reported a location.
func (s *Store) Position(ctx context.Context, id types.ID) (types.Point, bool, error) {
	pos, err := s.redis.GeoPos(ctx, positionGeoKey, string(id)).Result()
	if err != nil {
		return types.Point{}, false, err
	}
	if len(pos) == 0 || pos[0] == nil {
		return types.Point{}, false, nil
	}
	return types.Point{Lat: pos[0].Latitude, Lng: pos[0].Longitude}, true, nil
}

// AvailableInCell returns the available driver IDs bucketed under the geohash
// cell covering p.
func (s *Store) AvailableInCell(ctx context.Context, p types.Point) ([]types.ID, error) {
	cell := geohash.EncodeWithPrecision(p.Lat, p.Lng, bucketPrecision)
	members, err := s.redis.SMembers(ctx, fmt.Sprintf(bucketKeyFormat, cell)).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]types.ID, len(members))
	for i, m := range members {
		ids[i] = types.ID(m)
	}
	return ids, nil
}

func scanDriver(row interface{ Scan(dest ...any) error }) (*Driver, error) {
	var d Driver
	var homeBase sql.NullString
	err := row.Scan(&d.ID, &d.Name, &homeBase, &d.Status, &d.IsActive, &d.Rating, &d.VehicleType)
	if err != nil {
		return nil, err
	}
	d.HomeBase = homeBase.String
	return &d, nil
}
