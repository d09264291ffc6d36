package storage

import (
	"os"
	"testing"
	"time"

	"ayurdiet/internal/planner"
)

func testPlan(id string) *planner.Plan {
	return &planner.Plan{
		ID:             id,
		Dosha:          "Pitta",
		Season:         "summer",
		PlanType:       "daily",
		TargetCalories: 2000,
		TotalCalories:  1950,
		CreatedAt:      time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestPlanArchiveSaveAndLoad(t *testing.T) {
	dir, err := os.MkdirTemp("", "plan-archive-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	archive, err := NewPlanArchive(dir)
	if err != nil {
		t.Fatalf("NewPlanArchive failed: %v", err)
	}

	plan := testPlan("abc-123")
	path, err := archive.Save(plan)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if path == "" {
		t.Fatal("Save returned empty path")
	}

	names, err := archive.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 1 {
		t.Fatalf("Expected 1 archived plan, got %d", len(names))
	}

	loaded, err := archive.Load(names[0])
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.ID != plan.ID {
		t.Errorf("Expected plan ID %q, got %q", plan.ID, loaded.ID)
	}
	if loaded.Dosha != plan.Dosha || loaded.Season != plan.Season {
		t.Errorf("Loaded plan does not match saved plan: %+v", loaded)
	}
	if loaded.TargetCalories != plan.TargetCalories {
		t.Errorf("Expected target %d, got %d", plan.TargetCalories, loaded.TargetCalories)
	}
}

func TestPlanArchiveRejectsMissingID(t *testing.T) {
	dir, err := os.MkdirTemp("", "plan-archive-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	archive, err := NewPlanArchive(dir)
	if err != nil {
		t.Fatalf("NewPlanArchive failed: %v", err)
	}

	plan := testPlan("")
	if _, err := archive.Save(plan); err == nil {
		t.Error("Expected error when saving plan without ID, got nil")
	}
}

func TestPlanArchiveListNewestFirst(t *testing.T) {
	dir, err := os.MkdirTemp("", "plan-archive-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	archive, err := NewPlanArchive(dir)
	if err != nil {
		t.Fatalf("NewPlanArchive failed: %v", err)
	}

	older := testPlan("older")
	older.CreatedAt = time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	newer := testPlan("newer")
	newer.CreatedAt = time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)

	for _, p := range []*planner.Plan{older, newer} {
		if _, err := archive.Save(p); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	names, err := archive.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("Expected 2 archived plans, got %d", len(names))
	}

	first, err := archive.Load(names[0])
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if first.ID != "newer" {
		t.Errorf("Expected newest plan first, got %q", first.ID)
	}

	if err := archive.Remove(names[1]); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	names, err = archive.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 1 {
		t.Errorf("Expected 1 plan after removal, got %d", len(names))
	}
}
