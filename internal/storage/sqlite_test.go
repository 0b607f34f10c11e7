package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(demoID string, updates int64) RunReport {
	return RunReport{
		DemoID:     demoID,
		UpdateRate: 50,
		FrameRate:  60,
		MaxCatchUp: 5,
		Frames:     600,
		Updates:    updates,
		Renders:    600,
		Dropped:    3,
		WallMillis: 10000,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(sampleRun("bounce", 500)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(sampleRun("bounce", 498)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(sampleRun("starfield", 501)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RunsForDemo("bounce", 10)
	if err != nil {
		t.Fatalf("RunsForDemo() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("Expected 2 bounce runs, got %d", len(runs))
	}

	// Most recent first: same timestamp granularity, so the id
	// tiebreaker puts the later insert first.
	if runs[0].Updates != 498 {
		t.Errorf("Expected most recent run first (updates=498), got %d", runs[0].Updates)
	}

	all, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 runs total, got %d", len(all))
	}
}

func TestStoreRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveRun(sampleRun("bounce", int64(i))); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RunsForDemo("bounce", 3)
	if err != nil {
		t.Fatalf("RunsForDemo() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(runs))
	}
}

func TestStoreRoundTripFields(t *testing.T) {
	store := openTestStore(t)

	saved := sampleRun("bounce", 500)
	if _, err := store.SaveRun(saved); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RunsForDemo("bounce", 1)
	if err != nil {
		t.Fatalf("RunsForDemo() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}

	got := runs[0]
	if got.UpdateRate != saved.UpdateRate || got.FrameRate != saved.FrameRate ||
		got.MaxCatchUp != saved.MaxCatchUp || got.Frames != saved.Frames ||
		got.Updates != saved.Updates || got.Renders != saved.Renders ||
		got.Dropped != saved.Dropped || got.WallMillis != saved.WallMillis {
		t.Errorf("Round trip mismatch: saved %+v, got %+v", saved, got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}
}

func TestAchievedRates(t *testing.T) {
	r := RunReport{Updates: 500, Frames: 600, WallMillis: 10000}
	if r.AchievedUPS() != 50 {
		t.Errorf("Expected 50 ups, got %v", r.AchievedUPS())
	}
	if r.AchievedFPS() != 60 {
		t.Errorf("Expected 60 fps, got %v", r.AchievedFPS())
	}

	var zero RunReport
	if zero.AchievedUPS() != 0 || zero.AchievedFPS() != 0 {
		t.Error("Zero-wall report should yield zero rates")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	// Empty stats before any runs.
	stats, err := store.StatsForDemo("bounce")
	if err != nil {
		t.Fatalf("StatsForDemo() failed: %v", err)
	}
	if stats.RunCount != 0 || stats.TotalUpdates != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveRun(sampleRun("bounce", 500))
	store.SaveRun(sampleRun("bounce", 300))
	store.SaveRun(sampleRun("starfield", 100))

	stats, err = store.StatsForDemo("bounce")
	if err != nil {
		t.Fatalf("StatsForDemo() failed: %v", err)
	}
	if stats.RunCount != 2 {
		t.Errorf("Expected 2 runs, got %d", stats.RunCount)
	}
	if stats.TotalUpdates != 800 {
		t.Errorf("Expected 800 total updates, got %d", stats.TotalUpdates)
	}
	if stats.TotalDropped != 6 {
		t.Errorf("Expected 6 total dropped, got %d", stats.TotalDropped)
	}
	if stats.LastRun.IsZero() {
		t.Error("LastRun should be populated")
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(sampleRun("bounce", 1))
	store.SaveRun(sampleRun("starfield", 2))

	if err := store.ClearRuns("bounce"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	bounceRuns, _ := store.RunsForDemo("bounce", 10)
	if len(bounceRuns) != 0 {
		t.Errorf("Expected 0 bounce runs after clear, got %d", len(bounceRuns))
	}

	starRuns, _ := store.RunsForDemo("starfield", 10)
	if len(starRuns) != 1 {
		t.Error("Starfield runs should not be affected by clearing bounce")
	}
}

func TestStoreCreatesNestedDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
