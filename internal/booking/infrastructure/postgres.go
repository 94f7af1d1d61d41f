package infrastructure

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medbook/platform/internal/booking/domain"
	"github.com/medbook/platform/internal/shared/errors"
	"github.com/medbook/platform/internal/shared/metrics"
	"github.com/medbook/platform/internal/shared/types"
)

// PostgresStore implements domain.Store and domain.Queries on PostgreSQL.
// Slot exclusivity is pushed into the database: a locking read on the slot
// row plus a conditional availability flip, so the guarantee holds across
// server processes, not just goroutines.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL booking store
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// InTx runs fn inside a single transaction. Any error aborts the
// transaction, so none of fn's writes take effect.
func (s *PostgresStore) InTx(ctx context.Context, fn func(tx domain.Tx) error) error {
	start := time.Now()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return errors.Infrastructure(err, "failed to begin reservation transaction")
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Infrastructure(err, "failed to commit reservation")
	}

	metrics.RecordDBQuery("reserve_tx", time.Since(start))
	return nil
}

// pgTx adapts a pgx transaction to the domain.Tx write set.
type pgTx struct {
	tx pgx.Tx
}

// SlotForUpdate reads the slot row with FOR UPDATE, holding the row lock
// until commit or rollback. Concurrent reservations for the same slot
// queue here; the first to commit wins and the rest observe
// is_available = FALSE.
func (t *pgTx) SlotForUpdate(ctx context.Context, slotID types.ID) (*domain.Slot, error) {
	query := `
		SELECT id, doctor_id, slot_date::text, slot_time::text, is_available
		FROM time_slots
		WHERE id = $1
		FOR UPDATE`

	slot := &domain.Slot{}
	err := t.tx.QueryRow(ctx, query, slotID).Scan(
		&slot.ID, &slot.DoctorID, &slot.Date, &slot.Time, &slot.Available,
	)

	if err == pgx.ErrNoRows {
		return nil, errors.SlotNotFound(slotID.String())
	}
	if err != nil {
		return nil, errors.Infrastructure(err, "failed to read slot")
	}

	return slot, nil
}

// InsertPatient appends a fresh patient row.
func (t *pgTx) InsertPatient(ctx context.Context, p *domain.Patient) error {
	query := `
		INSERT INTO patients (id, full_name, date_of_birth, gender, phone, email, address)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''))
		RETURNING created_at`

	err := t.tx.QueryRow(ctx, query,
		p.ID, p.FullName, p.DateOfBirth, p.Gender, p.Phone, p.Email, p.Address,
	).Scan(&p.CreatedAt)

	if err != nil {
		return errors.Infrastructure(err, "failed to insert patient")
	}

	return nil
}

// InsertAppointment appends the appointment row.
func (t *pgTx) InsertAppointment(ctx context.Context, a *domain.Appointment) error {
	query := `
		INSERT INTO appointments (id, patient_id, doctor_id, slot_id, appointment_date, appointment_time, notes)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		RETURNING created_at`

	err := t.tx.QueryRow(ctx, query,
		a.ID, a.PatientID, a.DoctorID, a.SlotID, a.Date, a.Time, a.Notes,
	).Scan(&a.CreatedAt)

	if err != nil {
		return errors.Infrastructure(err, "failed to insert appointment")
	}

	return nil
}

// MarkSlotBooked is the exclusivity-bearing update: it flips availability
// only when the slot is still available and reports whether it matched.
func (t *pgTx) MarkSlotBooked(ctx context.Context, slotID types.ID) (bool, error) {
	result, err := t.tx.Exec(ctx,
		`UPDATE time_slots SET is_available = FALSE WHERE id = $1 AND is_available`,
		slotID,
	)
	if err != nil {
		return false, errors.Infrastructure(err, "failed to mark slot booked")
	}

	return result.RowsAffected() == 1, nil
}

// --- Query surface ---

// ListAvailableSlots returns the doctor's available, future-dated slots
// ordered by date then time. A plain snapshot read; the reservation
// transaction re-checks availability before committing.
func (s *PostgresStore) ListAvailableSlots(ctx context.Context, doctorID types.ID) ([]domain.Slot, error) {
	start := time.Now()

	query := `
		SELECT id, doctor_id, slot_date::text, slot_time::text, is_available
		FROM time_slots
		WHERE doctor_id = $1
			AND is_available
			AND slot_date >= CURRENT_DATE
		ORDER BY slot_date, slot_time`

	rows, err := s.pool.Query(ctx, query, doctorID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list available slots")
	}
	defer rows.Close()

	slots, err := scanSlots(rows)
	if err != nil {
		return nil, err
	}

	metrics.RecordDBQuery("list_available_slots", time.Since(start))
	return slots, nil
}

func scanSlots(rows pgx.Rows) ([]domain.Slot, error) {
	var slots []domain.Slot
	for rows.Next() {
		var slot domain.Slot
		err := rows.Scan(&slot.ID, &slot.DoctorID, &slot.Date, &slot.Time, &slot.Available)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan slot")
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list available slots")
	}

	return slots, nil
}

// GetAppointment returns an appointment joined with patient and doctor
// display fields.
func (s *PostgresStore) GetAppointment(ctx context.Context, id types.ID) (*domain.AppointmentDetail, error) {
	query := `
		SELECT a.id, a.patient_id, a.doctor_id, a.slot_id,
			a.appointment_date::text, a.appointment_time::text,
			COALESCE(a.notes, ''), a.created_at,
			p.full_name, p.phone, COALESCE(p.email, ''),
			d.full_name, c.name
		FROM appointments a
		JOIN patients p ON a.patient_id = p.id
		JOIN doctors d ON a.doctor_id = d.id
		JOIN categories c ON d.category_id = c.id
		WHERE a.id = $1`

	detail := &domain.AppointmentDetail{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&detail.ID, &detail.PatientID, &detail.DoctorID, &detail.SlotID,
		&detail.Date, &detail.Time, &detail.Notes, &detail.CreatedAt,
		&detail.PatientName, &detail.PatientPhone, &detail.PatientEmail,
		&detail.DoctorName, &detail.CategoryName,
	)

	if err == pgx.ErrNoRows {
		return nil, errors.NotFound("appointment", id.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get appointment")
	}

	return detail, nil
}
