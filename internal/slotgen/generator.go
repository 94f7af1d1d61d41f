package slotgen

import (
	"context"
	"fmt"
	"time"

	"github.com/medbook/platform/internal/booking/domain"
	"github.com/medbook/platform/internal/shared/types"
)

// DoctorPattern is a doctor's fixed daily time pattern.
type DoctorPattern struct {
	DoctorID types.ID
	Times    []string
}

// Repository is the storage surface the generator needs.
type Repository interface {
	// SchedulePatterns returns every doctor's time pattern.
	SchedulePatterns(ctx context.Context) ([]DoctorPattern, error)

	// ClearFutureSlots deletes future slots that are still available.
	// Booked slots stay: an appointment's slot is never deleted or
	// re-opened by regeneration.
	ClearFutureSlots(ctx context.Context) (int64, error)

	// InsertSlots bulk-inserts slots, skipping (doctor, date, time)
	// triples that already exist. Returns the number actually inserted.
	InsertSlots(ctx context.Context, slots []domain.Slot) (int64, error)
}

// Summary reports one generation run.
type Summary struct {
	Doctors int   `json:"doctors"`
	Cleared int64 `json:"cleared"`
	Created int64 `json:"created"`
}

// Generator fills the slot store for a rolling future window from each
// doctor's fixed daily time pattern. It is not part of the reservation
// path; it only produces the rows the coordinator consumes.
type Generator struct {
	repo       Repository
	windowDays int
	now        func() time.Time
}

// NewGenerator creates a slot generator for the given window
func NewGenerator(repo Repository, windowDays int) *Generator {
	return &Generator{repo: repo, windowDays: windowDays, now: time.Now}
}

// Run clears future available slots and regenerates the window, starting
// tomorrow. Slot IDs are deterministic over (doctor, date, time) so
// repeated runs are stable.
func (g *Generator) Run(ctx context.Context) (*Summary, error) {
	patterns, err := g.repo.SchedulePatterns(ctx)
	if err != nil {
		return nil, err
	}

	cleared, err := g.repo.ClearFutureSlots(ctx)
	if err != nil {
		return nil, err
	}

	today := g.now()
	var slots []domain.Slot
	for _, p := range patterns {
		for offset := 1; offset <= g.windowDays; offset++ {
			date := today.AddDate(0, 0, offset).Format(domain.DateLayout)
			for _, t := range p.Times {
				slots = append(slots, domain.Slot{
					ID:        SlotID(p.DoctorID, date, t),
					DoctorID:  p.DoctorID,
					Date:      date,
					Time:      t,
					Available: true,
				})
			}
		}
	}

	created, err := g.repo.InsertSlots(ctx, slots)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Doctors: len(patterns),
		Cleared: cleared,
		Created: created,
	}, nil
}

// SlotID derives the deterministic id for a (doctor, date, time) triple.
func SlotID(doctorID types.ID, date, timeOfDay string) types.ID {
	return types.NewDeterministicID("time-slot", fmt.Sprintf("%s/%sT%s", doctorID, date, timeOfDay))
}
