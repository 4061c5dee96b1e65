package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSaveAndLoadRuns(t *testing.T) {
	store := openTestStore(t)

	first, err := store.SaveRun(Run{
		Timestamp:       time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		FileCount:       12,
		CleanCount:      9,
		ViolationCount:  5,
		ParseErrorCount: 1,
		RuleCounts:      map[string]int{"order-groups": 3, "explicit-attr-type": 2},
		Duration:        420 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("save first run: %v", err)
	}
	if first.ID == "" {
		t.Fatal("run id must be assigned on save")
	}

	second, err := store.SaveRun(Run{
		Timestamp:      time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		FileCount:      12,
		CleanCount:     11,
		ViolationCount: 1,
		RuleCounts:     map[string]int{"order-groups": 1},
	})
	if err != nil {
		t.Fatalf("save second run: %v", err)
	}

	runs, err := store.LoadRuns(time.Time{})
	if err != nil {
		t.Fatalf("load runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first.ID || runs[1].ID != second.ID {
		t.Error("runs must come back oldest first")
	}
	if runs[0].RuleCounts["order-groups"] != 3 {
		t.Errorf("rule counts did not survive the round trip: %v", runs[0].RuleCounts)
	}
	if runs[0].Duration != 420*time.Millisecond {
		t.Errorf("unexpected duration: %v", runs[0].Duration)
	}

	recent, err := store.LoadRuns(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("load recent runs: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != second.ID {
		t.Errorf("since filter should keep only the second run, got %d", len(recent))
	}
}

func TestOpenRejectsDirectory(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Fatal("expected error for directory path")
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	if store.Path() != path {
		t.Errorf("unexpected path: %s", store.Path())
	}
}
