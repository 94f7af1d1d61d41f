package domain

import (
	"testing"

	"github.com/medbook/platform/internal/shared/errors"
	"github.com/medbook/platform/internal/shared/types"
)

func TestReservationRequestValidate(t *testing.T) {
	valid := validRequest(types.NewID())

	tests := []struct {
		name      string
		mutate    func(*ReservationRequest)
		wantField string
	}{
		{
			name:   "valid request",
			mutate: func(r *ReservationRequest) {},
		},
		{
			name:      "missing full name",
			mutate:    func(r *ReservationRequest) { r.Patient.FullName = "" },
			wantField: "full_name",
		},
		{
			name:      "missing date of birth",
			mutate:    func(r *ReservationRequest) { r.Patient.DateOfBirth = "" },
			wantField: "date_of_birth",
		},
		{
			name:      "malformed date of birth",
			mutate:    func(r *ReservationRequest) { r.Patient.DateOfBirth = "12/04/1990" },
			wantField: "date_of_birth",
		},
		{
			name:      "missing gender",
			mutate:    func(r *ReservationRequest) { r.Patient.Gender = "" },
			wantField: "gender",
		},
		{
			name:      "missing phone",
			mutate:    func(r *ReservationRequest) { r.Patient.Phone = "" },
			wantField: "phone",
		},
		{
			name:      "missing slot id",
			mutate:    func(r *ReservationRequest) { r.SlotID = "" },
			wantField: "slot_id",
		},
		{
			name:      "malformed slot id",
			mutate:    func(r *ReservationRequest) { r.SlotID = "not-a-uuid" },
			wantField: "slot_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}

			appErr, ok := err.(*errors.AppError)
			if !ok {
				t.Fatalf("Validate() error = %v, want *AppError", err)
			}
			if appErr.Code != "VALIDATION_ERROR" {
				t.Errorf("code = %s, want VALIDATION_ERROR", appErr.Code)
			}
			if _, present := appErr.Details[tt.wantField]; !present {
				t.Errorf("details missing %q: %v", tt.wantField, appErr.Details)
			}
		})
	}

	t.Run("optional fields stay optional", func(t *testing.T) {
		req := valid
		req.Patient.Email = ""
		req.Patient.Address = ""
		req.Notes = ""

		if err := req.Validate(); err != nil {
			t.Fatalf("Validate() error = %v, want nil", err)
		}
	})
}

func TestNewPatient(t *testing.T) {
	req := validRequest(types.NewID())
	req.Patient.Address = "Knez Mihailova 1, Belgrade"

	first := req.NewPatient()
	second := req.NewPatient()

	if first.ID.IsZero() {
		t.Error("patient ID not assigned")
	}
	if first.ID == second.ID {
		t.Error("two reservations produced the same patient ID")
	}
	if first.FullName != req.Patient.FullName || first.Phone != req.Patient.Phone {
		t.Errorf("patient fields not carried over: %+v", first)
	}
	if first.Address != req.Patient.Address {
		t.Errorf("address = %q, want %q", first.Address, req.Patient.Address)
	}
}
