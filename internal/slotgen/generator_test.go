package slotgen

import (
	"context"
	"testing"
	"time"

	"github.com/medbook/platform/internal/booking/domain"
	"github.com/medbook/platform/internal/shared/types"
)

type fakeRepository struct {
	patterns []DoctorPattern
	cleared  int64

	inserted []domain.Slot
}

func (f *fakeRepository) SchedulePatterns(ctx context.Context) ([]DoctorPattern, error) {
	return f.patterns, nil
}

func (f *fakeRepository) ClearFutureSlots(ctx context.Context) (int64, error) {
	return f.cleared, nil
}

func (f *fakeRepository) InsertSlots(ctx context.Context, slots []domain.Slot) (int64, error) {
	f.inserted = slots
	return int64(len(slots)), nil
}

func fixedClock(t *testing.T, value string) func() time.Time {
	t.Helper()
	parsed, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		t.Fatal(err)
	}
	return func() time.Time { return parsed }
}

func TestGeneratorRun(t *testing.T) {
	ctx := context.Background()

	drA := types.NewID()
	drB := types.NewID()
	repo := &fakeRepository{
		cleared: 7,
		patterns: []DoctorPattern{
			{DoctorID: drA, Times: []string{"09:00:00", "10:30:00", "14:00:00"}},
			{DoctorID: drB, Times: []string{"08:00:00", "16:30:00"}},
		},
	}

	g := NewGenerator(repo, 30)
	g.now = fixedClock(t, "2026-08-29")

	summary, err := g.Run(ctx)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantCreated := int64(30 * (3 + 2))
	if summary.Created != wantCreated {
		t.Errorf("created = %d, want %d", summary.Created, wantCreated)
	}
	if summary.Cleared != 7 {
		t.Errorf("cleared = %d, want 7", summary.Cleared)
	}
	if summary.Doctors != 2 {
		t.Errorf("doctors = %d, want 2", summary.Doctors)
	}

	if len(repo.inserted) != int(wantCreated) {
		t.Fatalf("slots inserted = %d, want %d", len(repo.inserted), wantCreated)
	}

	seen := make(map[types.ID]bool)
	for _, slot := range repo.inserted {
		if !slot.Available {
			t.Fatalf("slot %s generated unavailable", slot.ID)
		}
		if seen[slot.ID] {
			t.Fatalf("duplicate slot id %s", slot.ID)
		}
		seen[slot.ID] = true

		if slot.Date < "2026-08-30" || slot.Date > "2026-09-28" {
			t.Fatalf("slot date %s outside window (2026-08-30 .. 2026-09-28)", slot.Date)
		}
	}

	// The window starts tomorrow, never today.
	first := repo.inserted[0]
	if first.Date != "2026-08-30" {
		t.Errorf("first slot date = %s, want 2026-08-30", first.Date)
	}
}

func TestGeneratorRunEmptySchedule(t *testing.T) {
	repo := &fakeRepository{}
	g := NewGenerator(repo, 30)
	g.now = fixedClock(t, "2026-08-29")

	summary, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Created != 0 || summary.Doctors != 0 {
		t.Errorf("summary = %+v, want zero doctors and created", summary)
	}
}

func TestSlotIDDeterministic(t *testing.T) {
	doctorID := types.MustParseID("7d1c3f2a-5e80-4c4b-8a21-9f0d6e5c1a01")

	a := SlotID(doctorID, "2026-09-15", "10:30:00")
	b := SlotID(doctorID, "2026-09-15", "10:30:00")
	if a != b {
		t.Errorf("same triple produced different ids: %s vs %s", a, b)
	}

	c := SlotID(doctorID, "2026-09-15", "11:00:00")
	if a == c {
		t.Error("different times produced the same id")
	}

	d := SlotID(types.NewID(), "2026-09-15", "10:30:00")
	if a == d {
		t.Error("different doctors produced the same id")
	}
}
