package domain

import (
	"time"

	"github.com/medbook/platform/internal/shared/errors"
	"github.com/medbook/platform/internal/shared/types"
)

// Dates and times-of-day travel as plain strings in these layouts, both
// over the wire and through the store (DATE/TIME columns cast to text).
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Slot is a bookable (doctor, date, time) unit. Available only ever flips
// true -> false; there is no cancellation path that re-opens a slot.
type Slot struct {
	ID        types.ID `json:"id"`
	DoctorID  types.ID `json:"doctor_id"`
	Date      string   `json:"slot_date"`
	Time      string   `json:"slot_time"`
	Available bool     `json:"is_available"`
}

// Patient is an identity record. Immutable once created; every reservation
// inserts a fresh row, even for a returning patient.
type Patient struct {
	ID          types.ID  `json:"id"`
	FullName    string    `json:"full_name"`
	DateOfBirth string    `json:"date_of_birth"`
	Gender      string    `json:"gender"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Appointment links a patient, a doctor and a slot. Date and Time are
// denormalized copies of the slot's date/time so receipt reads skip the
// join. Created only by the reservation coordinator, immutable after.
type Appointment struct {
	ID        types.ID  `json:"id"`
	PatientID types.ID  `json:"patient_id"`
	DoctorID  types.ID  `json:"doctor_id"`
	SlotID    types.ID  `json:"slot_id"`
	Date      string    `json:"appointment_date"`
	Time      string    `json:"appointment_time"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AppointmentDetail is the appointment joined with patient and doctor
// display fields, served on the confirmation page.
type AppointmentDetail struct {
	Appointment

	PatientName  string `json:"patient_name"`
	PatientPhone string `json:"patient_phone"`
	PatientEmail string `json:"patient_email,omitempty"`
	DoctorName   string `json:"doctor_name"`
	CategoryName string `json:"category_name"`
}

// PatientIntent is the candidate patient record carried by a reservation
// request. FullName, DateOfBirth, Gender and Phone are mandatory.
type PatientIntent struct {
	FullName    string `json:"full_name"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
}

// ReservationRequest is the single write operation exposed by the booking
// core: patient intent plus the chosen slot and optional notes.
type ReservationRequest struct {
	Patient PatientIntent `json:"patient"`
	SlotID  types.ID      `json:"slot_id"`
	Notes   string        `json:"notes,omitempty"`
}

// Validate checks mandatory fields before any store interaction.
func (r ReservationRequest) Validate() error {
	details := make(map[string]string)

	if r.Patient.FullName == "" {
		details["full_name"] = "full_name is required"
	}
	if r.Patient.DateOfBirth == "" {
		details["date_of_birth"] = "date_of_birth is required"
	} else if _, err := time.Parse(DateLayout, r.Patient.DateOfBirth); err != nil {
		details["date_of_birth"] = "date_of_birth must be formatted as " + DateLayout
	}
	if r.Patient.Gender == "" {
		details["gender"] = "gender is required"
	}
	if r.Patient.Phone == "" {
		details["phone"] = "phone is required"
	}
	if r.SlotID.IsZero() {
		details["slot_id"] = "slot_id is required"
	} else if _, err := types.ParseID(r.SlotID.String()); err != nil {
		// The field arrives as a raw JSON string; reject non-UUIDs here so
		// they fail as a client error, not as a store failure.
		details["slot_id"] = "slot_id must be a valid UUID"
	}

	if len(details) > 0 {
		return errors.Validation("validation failed", details)
	}
	return nil
}

// NewPatient builds the patient row to be inserted for this reservation.
func (r ReservationRequest) NewPatient() *Patient {
	return &Patient{
		ID:          types.NewID(),
		FullName:    r.Patient.FullName,
		DateOfBirth: r.Patient.DateOfBirth,
		Gender:      r.Patient.Gender,
		Phone:       r.Patient.Phone,
		Email:       r.Patient.Email,
		Address:     r.Patient.Address,
	}
}
