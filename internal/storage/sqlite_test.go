package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-maze/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func saveRun(t *testing.T, store *Store, levelID string, won, cheat bool, secs, moves float64) string {
	t.Helper()
	id, err := store.SaveRun(core.RunResult{LevelID: levelID, Won: won, Time: secs, Moves: moves}, cheat)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveRunAssignsUUID(t *testing.T) {
	store := openTestStore(t)

	id := saveRun(t, store, "lvl01", true, false, 12.5, 30)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveRun() id = %q, expected a UUID: %v", id, err)
	}

	other := saveRun(t, store, "lvl01", true, false, 12.5, 30)
	if other == id {
		t.Errorf("SaveRun() returned the same id twice")
	}

	if _, err := store.SaveRun(core.RunResult{Won: true}, false); err == nil {
		t.Errorf("SaveRun() without a level id succeeded")
	}
}

func TestStoreTopRuns(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "lvl01", true, false, 20, 40)
	saveRun(t, store, "lvl01", true, false, 10, 60)
	saveRun(t, store, "lvl01", false, false, 5, 10) // death
	saveRun(t, store, "lvl01", true, true, 1, 1)    // cheat
	saveRun(t, store, "lvl02", true, false, 2, 5)

	runs, err := store.TopRuns("lvl01", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].Time != 10 || runs[1].Time != 20 {
		t.Errorf("TopRuns() times = %v, %v, expected 10, 20", runs[0].Time, runs[1].Time)
	}
	if !runs[0].Won || runs[0].Cheat || runs[0].LevelID != "lvl01" {
		t.Errorf("TopRuns()[0] = %+v, expected a won non-cheat lvl01 run", runs[0])
	}
	if runs[0].CreatedAt.IsZero() {
		t.Errorf("TopRuns()[0].CreatedAt is zero")
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		saveRun(t, store, "lvl01", true, false, float64(i+1), 10)
	}

	runs, err := store.TopRuns("lvl01", 5)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Errorf("Expected 5 runs, got %d", len(runs))
	}

	runs, err = store.TopRuns("lvl01", 0)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 10 {
		t.Errorf("Expected default limit of 10, got %d", len(runs))
	}
}

func TestStoreBestRun(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.BestRun("lvl01"); err != nil || ok {
		t.Errorf("BestRun() on empty store = ok %v, err %v", ok, err)
	}

	saveRun(t, store, "lvl01", true, false, 20, 40)
	saveRun(t, store, "lvl01", true, false, 15, 55)
	saveRun(t, store, "lvl01", false, false, 3, 5)
	saveRun(t, store, "lvl01", true, true, 1, 1)

	best, ok, err := store.BestRun("lvl01")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if !ok {
		t.Fatalf("BestRun() ok = false after wins")
	}
	// Time and moves are tracked separately.
	if best.Time != 15 || best.Moves != 40 {
		t.Errorf("BestRun() = %+v, expected time 15 and moves 40", best)
	}
}

func TestStoreBestRuns(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "lvl01", true, false, 20, 40)
	saveRun(t, store, "lvl02", true, false, 8, 12)
	saveRun(t, store, "lvl03", false, false, 8, 12)

	best, err := store.BestRuns()
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(best) != 2 {
		t.Errorf("Expected 2 levels, got %d: %v", len(best), best)
	}
	if best["lvl02"].Time != 8 || best["lvl02"].Moves != 12 {
		t.Errorf("BestRuns()[lvl02] = %+v", best["lvl02"])
	}
	if _, ok := best["lvl03"]; ok {
		t.Errorf("BestRuns() includes a level that was never won")
	}
}

func TestStoreAllRuns(t *testing.T) {
	store := openTestStore(t)

	first := saveRun(t, store, "lvl01", false, false, 5, 10)
	last := saveRun(t, store, "lvl01", true, true, 7, 11)
	saveRun(t, store, "lvl02", true, false, 9, 12)

	runs, err := store.AllRuns("lvl01")
	if err != nil {
		t.Fatalf("AllRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != last || runs[1].ID != first {
		t.Errorf("AllRuns() ids = %s, %s, expected newest first", runs[0].ID, runs[1].ID)
	}
	if !runs[0].Cheat {
		t.Errorf("AllRuns()[0].Cheat = false, expected the cheat flag to round-trip")
	}

	all, err := store.AllRuns("")
	if err != nil {
		t.Fatalf("AllRuns() failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 runs across levels, got %d", len(all))
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "lvl01", true, false, 5, 10)
	saveRun(t, store, "lvl02", true, false, 5, 10)

	if err := store.ClearRuns("lvl01"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if runs, _ := store.AllRuns("lvl01"); len(runs) != 0 {
		t.Errorf("Expected lvl01 cleared, got %d runs", len(runs))
	}
	if runs, _ := store.AllRuns("lvl02"); len(runs) != 1 {
		t.Errorf("Expected lvl02 untouched, got %d runs", len(runs))
	}

	if err := store.ClearRuns(""); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if runs, _ := store.AllRuns(""); len(runs) != 0 {
		t.Errorf("Expected every run cleared, got %d", len(runs))
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "lvl01", true, false, 10, 10)
	saveRun(t, store, "lvl01", true, false, 20, 10)
	saveRun(t, store, "lvl01", false, false, 3, 1)

	stats, err := store.GetLevelStats("lvl01")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats.Attempts != 3 || stats.Wins != 2 || stats.Deaths() != 1 {
		t.Errorf("GetLevelStats() = %+v, expected 3 attempts and 2 wins", stats)
	}
	if stats.AvgWinTime != 15 {
		t.Errorf("AvgWinTime = %v, expected 15", stats.AvgWinTime)
	}
	if stats.LastPlayed.IsZero() {
		t.Errorf("LastPlayed is zero")
	}

	empty, err := store.GetLevelStats("missing")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if empty.Attempts != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("GetLevelStats(missing) = %+v, expected zero values", empty)
	}

	all, err := store.GetAllLevelStats()
	if err != nil {
		t.Fatalf("GetAllLevelStats() failed: %v", err)
	}
	if len(all) != 1 || all["lvl01"].Wins != 2 {
		t.Errorf("GetAllLevelStats() = %v", all)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
