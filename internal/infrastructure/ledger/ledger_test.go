package ledger

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "reminders.db"), "reminders")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_LastSentRoundTrip(t *testing.T) {
	store := openTestStore(t)

	last, err := store.LastSent("u1")
	if err != nil {
		t.Fatalf("LastSent: %v", err)
	}
	if !last.IsZero() {
		t.Fatalf("unmarked user has LastSent %v, want zero", last)
	}

	at := time.Date(2025, time.June, 15, 8, 0, 0, 0, time.UTC)
	if err := store.MarkSent("u1", at); err != nil {
		t.Fatalf("MarkSent: %v", err)
	}

	last, err = store.LastSent("u1")
	if err != nil {
		t.Fatalf("LastSent: %v", err)
	}
	if !last.Equal(at) {
		t.Errorf("LastSent = %v, want %v", last, at)
	}

	// Other users stay unaffected.
	if last, _ := store.LastSent("u2"); !last.IsZero() {
		t.Errorf("unrelated user has LastSent %v", last)
	}
}

func TestStore_MarkSentOverwrites(t *testing.T) {
	store := openTestStore(t)

	first := time.Date(2025, time.June, 15, 8, 0, 0, 0, time.UTC)
	second := first.Add(12 * time.Hour)

	if err := store.MarkSent("u1", first); err != nil {
		t.Fatalf("MarkSent: %v", err)
	}
	if err := store.MarkSent("u1", second); err != nil {
		t.Fatalf("MarkSent: %v", err)
	}

	last, err := store.LastSent("u1")
	if err != nil {
		t.Fatalf("LastSent: %v", err)
	}
	if !last.Equal(second) {
		t.Errorf("LastSent = %v, want %v", last, second)
	}
}

func TestStore_SizeAndCleanup(t *testing.T) {
	store := openTestStore(t)

	old := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	if err := store.MarkSent("stale", old); err != nil {
		t.Fatalf("MarkSent: %v", err)
	}
	if err := store.MarkSent("fresh", recent); err != nil {
		t.Fatalf("MarkSent: %v", err)
	}

	if size, _ := store.Size(); size != 2 {
		t.Fatalf("Size = %d, want 2", size)
	}

	if err := store.Cleanup(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	if size, _ := store.Size(); size != 1 {
		t.Errorf("Size after cleanup = %d, want 1", size)
	}
	if last, _ := store.LastSent("stale"); !last.IsZero() {
		t.Errorf("stale entry survived cleanup: %v", last)
	}
	if last, _ := store.LastSent("fresh"); !last.Equal(recent) {
		t.Errorf("fresh entry lost: %v", last)
	}
}

func TestStore_NilSafety(t *testing.T) {
	var store *Store
	if _, err := store.LastSent("u1"); err == nil {
		t.Error("nil store LastSent should error")
	}
	if err := store.MarkSent("u1", time.Now()); err == nil {
		t.Error("nil store MarkSent should error")
	}
	if err := store.Close(); err != nil {
		t.Errorf("nil store Close: %v", err)
	}
}
