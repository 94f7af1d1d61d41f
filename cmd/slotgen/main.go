package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/medbook/platform/internal/shared/config"
	"github.com/medbook/platform/internal/shared/database"
	"github.com/medbook/platform/internal/shared/events"
	"github.com/medbook/platform/internal/slotgen"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db.Pool); err != nil {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}

	generator := slotgen.NewGenerator(slotgen.NewPostgresRepository(db.Pool), cfg.Booking.WindowDays)

	summary, err := generator.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "slot generation failed: %v\n", err)
		os.Exit(1)
	}

	// Journal the run if the event store is up; generation itself does
	// not depend on it.
	if bus, err := events.NewBus(ctx, cfg.EventStore); err == nil {
		defer bus.Close()
		event := events.NewEvent(events.TypeSlotsGenerated, "slotgen", summary)
		if err := bus.Publish(ctx, event); err != nil {
			fmt.Printf("Warning: failed to publish generation event: %v\n", err)
		}
	} else {
		fmt.Printf("Warning: event store not available: %v\n", err)
	}

	fmt.Println("============================================")
	fmt.Println("Slot Generation Complete")
	fmt.Println("============================================")
	fmt.Printf("Doctors:       %d\n", summary.Doctors)
	fmt.Printf("Slots cleared: %d\n", summary.Cleared)
	fmt.Printf("Slots created: %d\n", summary.Created)
	fmt.Printf("Window:        %d days\n", cfg.Booking.WindowDays)
	fmt.Println("============================================")
}
