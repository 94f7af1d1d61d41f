package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/medbook/platform/internal/booking/domain"
	"github.com/medbook/platform/internal/shared/errors"
	"github.com/medbook/platform/internal/shared/events"
	"github.com/medbook/platform/internal/shared/metrics"
	"github.com/medbook/platform/internal/shared/types"
)

// Reserver is the reservation entry point consumed by the HTTP layer.
type Reserver interface {
	Reserve(ctx context.Context, req domain.ReservationRequest) (*domain.Appointment, error)
}

// Handler provides HTTP handlers for the booking module
type Handler struct {
	reserver Reserver
	queries  domain.Queries
	bus      *events.Bus
}

// NewHandler creates a new booking handler
func NewHandler(reserver Reserver, queries domain.Queries, bus *events.Bus) *Handler {
	return &Handler{reserver: reserver, queries: queries, bus: bus}
}

// Register registers the booking routes. reserveMiddleware is applied to
// the reservation endpoint only (rate limiting).
func (h *Handler) Register(r chi.Router, reserveMiddleware ...func(http.Handler) http.Handler) {
	r.Get("/timeslots/{doctorID}", h.ListAvailableSlots)
	r.With(reserveMiddleware...).Post("/reservations", h.Reserve)
	r.Get("/appointments/{appointmentID}", h.GetAppointment)
}

// ListAvailableSlots lists a doctor's available future slots
func (h *Handler) ListAvailableSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, err := types.ParseID(chi.URLParam(r, "doctorID"))
	if err != nil {
		writeError(w, errors.BadRequest("invalid doctor ID"))
		return
	}

	slots, err := h.queries.ListAvailableSlots(r.Context(), doctorID)
	if err != nil {
		writeError(w, err)
		return
	}
	if slots == nil {
		// A fully booked doctor is an empty array, not null.
		slots = []domain.Slot{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  slots,
		"total": len(slots),
	})
}

// Reserve atomically books a slot: it creates the patient record, writes
// the appointment and flips the slot, or fails without any of the three.
func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	var req domain.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	start := time.Now()
	appt, err := h.reserver.Reserve(r.Context(), req)
	metrics.RecordReservation(outcomeLabel(err), time.Since(start))

	if err != nil {
		// Lost races are worth journaling; validation noise is not.
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == "SLOT_UNAVAILABLE" && h.bus != nil {
			event := events.NewEvent(events.TypeReservationRejected, "booking", map[string]any{
				"slot_id": req.SlotID,
				"reason":  appErr.Code,
			}).WithCorrelation(middleware.GetReqID(r.Context()))

			h.bus.Publish(r.Context(), event)
		}
		writeError(w, err)
		return
	}

	if h.bus != nil {
		event := events.NewEvent(events.TypeBookingReserved, "booking", map[string]any{
			"appointment_id":   appt.ID,
			"patient_id":       appt.PatientID,
			"doctor_id":        appt.DoctorID,
			"slot_id":          appt.SlotID,
			"appointment_date": appt.Date,
			"appointment_time": appt.Time,
		}).WithCorrelation(middleware.GetReqID(r.Context()))

		h.bus.Publish(r.Context(), event)
	}

	writeJSON(w, http.StatusCreated, appt)
}

// GetAppointment returns an appointment with patient/doctor display fields
func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := types.ParseID(chi.URLParam(r, "appointmentID"))
	if err != nil {
		writeError(w, errors.BadRequest("invalid appointment ID"))
		return
	}

	detail, err := h.queries.GetAppointment(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// outcomeLabel maps a reservation result to a metric label
func outcomeLabel(err error) string {
	if err == nil {
		return "reserved"
	}
	if appErr, ok := err.(*errors.AppError); ok {
		return strings.ToLower(appErr.Code)
	}
	return "error"
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	if appErr, ok := err.(*errors.AppError); ok {
		w.WriteHeader(appErr.HTTPStatus)
		json.NewEncoder(w).Encode(map[string]any{
			"error":   appErr.Message,
			"code":    appErr.Code,
			"details": appErr.Details,
		})
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
}
