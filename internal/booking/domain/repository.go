package domain

import (
	"context"

	"github.com/medbook/platform/internal/shared/types"
)

// Store opens the transaction boundary the reservation runs inside. The
// store, not in-process locking, is what serializes concurrent
// reservations: implementations must guarantee that two transactions
// cannot both observe the same slot as available (row lock, conditional
// write, or equivalent). If fn returns an error nothing it did through tx
// may take effect.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the set of writes available inside a reservation transaction.
type Tx interface {
	// SlotForUpdate reads the slot row with row-level exclusivity held for
	// the rest of the transaction. Returns a SLOT_NOT_FOUND error when the
	// id does not exist.
	SlotForUpdate(ctx context.Context, slotID types.ID) (*Slot, error)

	// InsertPatient appends a fresh patient row.
	InsertPatient(ctx context.Context, p *Patient) error

	// InsertAppointment appends the appointment row.
	InsertAppointment(ctx context.Context, a *Appointment) error

	// MarkSlotBooked flips the slot's availability to false, conditioned on
	// it currently being true. Returns false when the condition failed.
	MarkSlotBooked(ctx context.Context, slotID types.ID) (bool, error)
}

// Queries is the read surface shared by the coordinator's callers and the
// presentation layer. Plain snapshot reads; staleness is acceptable
// because the coordinator re-checks inside its transaction.
type Queries interface {
	// ListAvailableSlots returns the doctor's available, future-dated slots
	// ordered by date then time.
	ListAvailableSlots(ctx context.Context, doctorID types.ID) ([]Slot, error)

	// GetAppointment returns the appointment joined with display fields.
	GetAppointment(ctx context.Context, id types.ID) (*AppointmentDetail, error)
}
