package domain

import (
	"context"

	"github.com/medbook/platform/internal/shared/errors"
	"github.com/medbook/platform/internal/shared/types"
)

// Coordinator owns the reservation write path. Of N concurrent calls
// racing for one slot exactly one succeeds; the rest fail with
// SLOT_UNAVAILABLE. A failed call leaves no rows behind: patient,
// appointment and slot flip commit together or not at all.
type Coordinator struct {
	store Store
}

// NewCoordinator creates a reservation coordinator over the given store.
func NewCoordinator(store Store) *Coordinator {
	return &Coordinator{store: store}
}

// Reserve validates the request, then atomically consumes the slot:
// re-read the slot under row exclusivity, insert the patient, insert the
// appointment with the slot's date/time denormalized, and flip the slot
// to unavailable. Errors are surfaced verbatim; the coordinator never
// retries internally because a taken slot is not a transient condition.
func (c *Coordinator) Reserve(ctx context.Context, req ReservationRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var appt *Appointment

	err := c.store.InTx(ctx, func(tx Tx) error {
		slot, err := tx.SlotForUpdate(ctx, req.SlotID)
		if err != nil {
			return err
		}
		if !slot.Available {
			return errors.SlotUnavailable(req.SlotID.String())
		}

		patient := req.NewPatient()
		if err := tx.InsertPatient(ctx, patient); err != nil {
			return err
		}

		appt = NewAppointment(patient.ID, slot, req.Notes)
		if err := tx.InsertAppointment(ctx, appt); err != nil {
			return err
		}

		booked, err := tx.MarkSlotBooked(ctx, slot.ID)
		if err != nil {
			return err
		}
		if !booked {
			// The locking read said available but the conditional flip did
			// not match; treat it like losing the race.
			return errors.SlotUnavailable(req.SlotID.String())
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return appt, nil
}

// NewAppointment builds the appointment row for a reservation, copying the
// slot's date and time.
func NewAppointment(patientID types.ID, slot *Slot, notes string) *Appointment {
	return &Appointment{
		ID:        types.NewID(),
		PatientID: patientID,
		DoctorID:  slot.DoctorID,
		SlotID:    slot.ID,
		Date:      slot.Date,
		Time:      slot.Time,
		Notes:     notes,
	}
}
