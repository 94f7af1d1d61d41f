package database

import (
	"reflect"
	"testing"
	"testing/fstest"
)

func TestPendingMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"001_clinic_schema.sql":  &fstest.MapFile{},
		"002_seed_directory.sql": &fstest.MapFile{},
		"003_later.sql":          &fstest.MapFile{},
		"README.md":              &fstest.MapFile{},
	}
	entries, err := fsys.ReadDir(".")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		applied map[string]bool
		want    []string
	}{
		{
			name:    "nothing applied",
			applied: map[string]bool{},
			want:    []string{"001_clinic_schema.sql", "002_seed_directory.sql", "003_later.sql"},
		},
		{
			name:    "partially applied",
			applied: map[string]bool{"001_clinic_schema": true},
			want:    []string{"002_seed_directory.sql", "003_later.sql"},
		},
		{
			name: "peer already ran everything",
			applied: map[string]bool{
				"001_clinic_schema":  true,
				"002_seed_directory": true,
				"003_later":          true,
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pendingMigrations(entries, tt.applied)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("pendingMigrations() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatal(err)
	}

	files := pendingMigrations(entries, nil)
	if len(files) < 2 {
		t.Fatalf("embedded migrations = %v, want schema and seed files", files)
	}
	if files[0] != "001_clinic_schema.sql" {
		t.Errorf("first migration = %s, want 001_clinic_schema.sql", files[0])
	}
}
