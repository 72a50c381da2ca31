package noetica

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := New(Options{StoreKind: "memory"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := client.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestRunPersistsSummarySnapshotsAndMetrics(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	result, err := client.Run(ctx, RunRequest{Ticks: 200, Seed: 11, CaptureEvery: 50})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Run.ID == "" {
		t.Fatal("expected run id")
	}
	if result.Run.Ticks != 200 {
		t.Fatalf("expected 200 ticks, got %d", result.Run.Ticks)
	}
	if result.Snapshots != 4 {
		t.Fatalf("expected 4 snapshots, got %d", result.Snapshots)
	}
	if len(result.Run.Simulations) != 3 || result.Run.Simulations[0] != "mind" {
		t.Fatalf("unexpected simulations: %v", result.Run.Simulations)
	}
	if result.Run.Failures != 0 {
		t.Fatalf("expected no failures, got %d", result.Run.Failures)
	}

	snapshots, err := client.Snapshots(ctx, result.Run.ID)
	if err != nil {
		t.Fatalf("snapshots: %v", err)
	}
	if len(snapshots) != 4 || snapshots[0].Tick != 50 || snapshots[3].Tick != 200 {
		t.Fatalf("unexpected snapshot ticks: %+v", snapshots)
	}
	if snapshots[3].Values["engine.tick"] != 200 {
		t.Fatalf("unexpected final snapshot: %+v", snapshots[3].Values)
	}

	points, err := client.Metrics(ctx, result.Run.ID)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if len(points) != 4 {
		t.Fatalf("expected 4 metric points, got %d", len(points))
	}

	runs, err := client.Runs(ctx)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != result.Run.ID {
		t.Fatalf("unexpected run list: %+v", runs)
	}
}

func TestRunDefaults(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	result, err := client.Run(ctx, RunRequest{Ticks: 60, Seed: 3, CaptureEvery: 20})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Final["engine.tick"] != 60 {
		t.Fatalf("unexpected final tick: %v", result.Final["engine.tick"])
	}
	// Every registered simulation contributes prefixed state.
	for _, prefix := range []string{"mind.", "eco.", "cortex."} {
		found := false
		for key := range result.Final {
			if strings.HasPrefix(key, prefix) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing state for %s in %v", prefix, result.Final)
		}
	}
}

func TestReportAggregatesStoredMetrics(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	result, err := client.Run(ctx, RunRequest{Ticks: 100, Seed: 5, CaptureEvery: 25})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	report, err := client.Report(ctx, result.Run.ID)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Run.ID != result.Run.ID {
		t.Fatalf("unexpected report run: %+v", report.Run)
	}
	if len(report.Metrics) == 0 {
		t.Fatal("expected aggregated metrics")
	}

	if _, err := client.Report(ctx, "missing"); err == nil {
		t.Fatal("expected error for unknown run")
	}
}

func TestExportWritesJSONArtifacts(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	result, err := client.Run(ctx, RunRequest{Ticks: 50, Seed: 9, CaptureEvery: 25})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	outDir := t.TempDir()
	summary, err := client.Export(ctx, result.Run.ID, outDir)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if summary.Directory != filepath.Join(outDir, result.Run.ID) {
		t.Fatalf("unexpected export dir: %s", summary.Directory)
	}
	for _, name := range []string{"run.json", "snapshots.json", "metrics.json"} {
		if _, err := os.Stat(filepath.Join(summary.Directory, name)); err != nil {
			t.Fatalf("missing export file %s: %v", name, err)
		}
	}

	if _, err := client.Export(ctx, "missing", outDir); err == nil {
		t.Fatal("expected error for unknown run")
	}
}

func TestRunRejectsCancelledContext(t *testing.T) {
	client := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Run(ctx, RunRequest{Ticks: 100, Seed: 1}); err == nil {
		t.Fatal("expected context error")
	}
}
