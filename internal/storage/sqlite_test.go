//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"noetica/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store := NewSQLiteStore(filepath.Join(t.TempDir(), "noetica.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestSQLiteStoreRequiresPath(t *testing.T) {
	store := NewSQLiteStore("")
	if err := store.Init(context.Background()); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSQLiteStoreRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	input := model.RunSummary{
		VersionedRecord: versioned(),
		ID:              "run-1",
		Seed:            99,
		Ticks:           3000,
		Simulations:     []string{"mind", "eco", "cortex"},
		StartedUnix:     100,
	}
	if err := store.SaveRun(ctx, input); err != nil {
		t.Fatalf("save run: %v", err)
	}

	output, ok, err := store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted run")
	}
	if output.Seed != 99 || output.Ticks != 3000 {
		t.Fatalf("unexpected run: %+v", output)
	}

	// Upsert replaces the stored payload.
	input.Ticks = 4500
	if err := store.SaveRun(ctx, input); err != nil {
		t.Fatalf("save run again: %v", err)
	}
	output, _, err = store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("get run again: %v", err)
	}
	if output.Ticks != 4500 {
		t.Fatalf("expected upsert, got %+v", output)
	}
}

func TestSQLiteStoreListRuns(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	for _, run := range []model.RunSummary{
		{VersionedRecord: versioned(), ID: "late", StartedUnix: 200},
		{VersionedRecord: versioned(), ID: "early", StartedUnix: 100},
	} {
		if err := store.SaveRun(ctx, run); err != nil {
			t.Fatalf("save run %s: %v", run.ID, err)
		}
	}

	runs, err := store.ListRuns(ctx)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "early" {
		t.Fatalf("unexpected runs: %+v", runs)
	}
}

func TestSQLiteStoreSnapshotsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	for tick := 10; tick <= 30; tick += 10 {
		snapshot := model.Snapshot{
			VersionedRecord: versioned(),
			RunID:           "run-1",
			Tick:            tick,
			Values:          map[string]float64{"engine.tick": float64(tick)},
		}
		if err := store.SaveSnapshot(ctx, snapshot); err != nil {
			t.Fatalf("save snapshot %d: %v", tick, err)
		}
	}

	snapshots, ok, err := store.GetSnapshots(ctx, "run-1")
	if err != nil {
		t.Fatalf("get snapshots: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted snapshots")
	}
	if len(snapshots) != 3 || snapshots[0].Tick != 10 || snapshots[2].Tick != 30 {
		t.Fatalf("unexpected snapshots: %+v", snapshots)
	}
}

func TestSQLiteStoreMetricsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	input := []model.MetricPoint{
		{Tick: 1, Values: map[string]float64{"eco.population": 60}},
		{Tick: 2, Values: map[string]float64{"eco.population": 58}},
	}
	if err := store.SaveMetrics(ctx, "run-1", input); err != nil {
		t.Fatalf("save metrics: %v", err)
	}

	output, ok, err := store.GetMetrics(ctx, "run-1")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted metrics")
	}
	if len(output) != 2 || output[1].Values["eco.population"] != 58 {
		t.Fatalf("unexpected metrics: %+v", output)
	}
}

func TestSQLiteStoreUninitialized(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "noetica.db"))
	if err := store.SaveRun(context.Background(), model.RunSummary{ID: "run-1"}); err == nil {
		t.Fatal("expected error before init")
	}
}
