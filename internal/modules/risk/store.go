// README: Patient history lookups backing the risk estimator's optional inputs.
package risk

import (
	"context"
	"database/sql"
	"errors"

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

// PatientHistory aggregates a patient's past terminal outcomes and contact
// completeness. Patients missing from the patients table still get counts;
// the contact fields stay unsupplied.
func (s *Store) PatientHistory(ctx context.Context, patientID types.ID) (*History, error) {
	var noShows, cancels int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE status = 'no_show'),
		       COUNT(*) FILTER (WHERE status = 'cancelled')
		FROM trips
		WHERE patient_id = $1`, string(patientID)).Scan(&noShows, &cancels)
	if err != nil {
		return nil, err
	}

	hist := &History{
		NoShowCount:       &noShows,
		CancellationCount: &cancels,
	}

	var phone, altContact sql.NullString
	err = s.db.QueryRow(ctx, `
		SELECT phone, alt_contact FROM patients WHERE id = $1`,
		string(patientID)).Scan(&phone, &altContact)
	if errors.Is(err, pgx.ErrNoRows) {
		return hist, nil
	}
	if err != nil {
		return nil, err
	}

	hasPhone := phone.Valid && phone.String != ""
	hasAlt := altContact.Valid && altContact.String != ""
	hist.HasPhone = &hasPhone
	hist.HasAltContact = &hasAlt
	return hist, nil
}
