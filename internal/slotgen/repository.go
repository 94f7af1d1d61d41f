package slotgen

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medbook/platform/internal/booking/domain"
	"github.com/medbook/platform/internal/shared/errors"
	"github.com/medbook/platform/internal/shared/types"
)

// PostgresRepository implements Repository on PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new slot generation repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// SchedulePatterns returns every doctor's fixed time pattern
func (r *PostgresRepository) SchedulePatterns(ctx context.Context) ([]DoctorPattern, error) {
	query := `
		SELECT doctor_id, slot_time::text
		FROM doctor_schedule_times
		ORDER BY doctor_id, slot_time`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query schedule patterns")
	}
	defer rows.Close()

	return scanPatterns(rows)
}

func scanPatterns(rows pgx.Rows) ([]DoctorPattern, error) {
	var patterns []DoctorPattern
	byDoctor := make(map[types.ID]int)

	for rows.Next() {
		var doctorID types.ID
		var slotTime string
		if err := rows.Scan(&doctorID, &slotTime); err != nil {
			return nil, errors.Wrap(err, "failed to scan schedule pattern")
		}

		idx, ok := byDoctor[doctorID]
		if !ok {
			idx = len(patterns)
			byDoctor[doctorID] = idx
			patterns = append(patterns, DoctorPattern{DoctorID: doctorID})
		}
		patterns[idx].Times = append(patterns[idx].Times, slotTime)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read schedule patterns")
	}

	return patterns, nil
}

// ClearFutureSlots deletes future slots that are still available. Booked
// slots are left alone so existing appointments keep their slot rows.
func (r *PostgresRepository) ClearFutureSlots(ctx context.Context) (int64, error) {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM time_slots WHERE slot_date >= CURRENT_DATE AND is_available`,
	)
	if err != nil {
		return 0, errors.Wrap(err, "failed to clear future slots")
	}

	return result.RowsAffected(), nil
}

// InsertSlots bulk-inserts slots in one batch, skipping triples that
// already exist (booked slots survive regeneration untouched).
func (r *PostgresRepository) InsertSlots(ctx context.Context, slots []domain.Slot) (int64, error) {
	batch := &pgx.Batch{}
	for _, s := range slots {
		batch.Queue(`
			INSERT INTO time_slots (id, doctor_id, slot_date, slot_time, is_available)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (doctor_id, slot_date, slot_time) DO NOTHING`,
			s.ID, s.DoctorID, s.Date, s.Time, s.Available,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	var created int64
	for range slots {
		tag, err := results.Exec()
		if err != nil {
			return created, errors.Wrap(err, "failed to insert slot")
		}
		created += tag.RowsAffected()
	}

	return created, nil
}
