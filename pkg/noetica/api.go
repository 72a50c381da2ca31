package noetica

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"noetica/internal/cortex"
	"noetica/internal/eco"
	"noetica/internal/mind"
	"noetica/internal/model"
	"noetica/internal/sim"
	"noetica/internal/stats"
	"noetica/internal/storage"
)

const (
	defaultExportsDir = "exports"
	defaultDBPath     = "noetica.db"
)

type Options struct {
	StoreKind  string
	DBPath     string
	ExportsDir string
}

type Client struct {
	store      storage.Store
	exportsDir string
}

// RunRequest configures one headless simulation run. Zero values fall back
// to defaults; the zero Mind/Eco/Cortex configs are fully usable.
type RunRequest struct {
	Ticks        int
	Seed         int64
	CaptureEvery int

	Mind   mind.Config
	Eco    eco.Config
	Cortex cortex.Config

	// OnSubsystemFailure observes update panics that the engine isolated.
	OnSubsystemFailure func(name string, tick int, err error)
}

type RunResult struct {
	Run       model.RunSummary
	Snapshots int
	Final     map[string]float64
}

type ExportSummary struct {
	RunID     string
	Directory string
	Files     []string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{store: store, exportsDir: exportsDir}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

// Run executes a full headless run and persists its summary, periodic
// snapshots, and metric series.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	if req.Ticks <= 0 {
		req.Ticks = 3000
	}
	if req.CaptureEvery <= 0 {
		req.CaptureEvery = 50
	}
	if req.Seed != 0 {
		req.Mind.Seed = req.Seed
		req.Eco.Seed = req.Seed + 1
		req.Cortex.Seed = req.Seed + 2
	}

	engine, err := buildEngine(req)
	if err != nil {
		return RunResult{}, err
	}
	engine.Initialize()

	runID := uuid.NewString()
	started := time.Now().UTC()

	var points []model.MetricPoint
	snapshots := 0
	capture := func(tick int) error {
		values := engine.State()
		snapshot := model.Snapshot{
			VersionedRecord: currentVersion(),
			RunID:           runID,
			Tick:            tick,
			Values:          values,
		}
		if err := c.store.SaveSnapshot(ctx, snapshot); err != nil {
			return err
		}
		snapshots++
		points = append(points, model.MetricPoint{Tick: tick, Values: values})
		return nil
	}

	if err := engine.Run(ctx, req.Ticks, req.CaptureEvery, capture); err != nil {
		return RunResult{}, err
	}

	failures := 0
	for _, count := range engine.Failures() {
		failures += count
	}
	run := model.RunSummary{
		VersionedRecord: currentVersion(),
		ID:              runID,
		Seed:            req.Seed,
		Ticks:           req.Ticks,
		Simulations:     engine.Simulations(),
		Failures:        failures,
		StartedUnix:     started.Unix(),
		ElapsedMS:       time.Since(started).Milliseconds(),
	}
	if err := c.store.SaveRun(ctx, run); err != nil {
		return RunResult{}, err
	}
	if err := c.store.SaveMetrics(ctx, runID, points); err != nil {
		return RunResult{}, err
	}

	return RunResult{Run: run, Snapshots: snapshots, Final: engine.State()}, nil
}

func (c *Client) Runs(ctx context.Context) ([]model.RunSummary, error) {
	return c.store.ListRuns(ctx)
}

func (c *Client) Snapshots(ctx context.Context, runID string) ([]model.Snapshot, error) {
	snapshots, ok, err := c.store.GetSnapshots(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no snapshots for run: %s", runID)
	}
	return snapshots, nil
}

func (c *Client) Metrics(ctx context.Context, runID string) ([]model.MetricPoint, error) {
	points, ok, err := c.store.GetMetrics(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no metrics for run: %s", runID)
	}
	return points, nil
}

// Report builds the aggregated metric report for a stored run.
func (c *Client) Report(ctx context.Context, runID string) (stats.RunReport, error) {
	run, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return stats.RunReport{}, err
	}
	if !ok {
		return stats.RunReport{}, fmt.Errorf("run not found: %s", runID)
	}
	points, _, err := c.store.GetMetrics(ctx, runID)
	if err != nil {
		return stats.RunReport{}, err
	}
	return stats.BuildRunReport(run, points), nil
}

// Export writes a stored run's summary, snapshots, and metrics as JSON files.
func (c *Client) Export(ctx context.Context, runID, outDir string) (ExportSummary, error) {
	run, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return ExportSummary{}, err
	}
	if !ok {
		return ExportSummary{}, fmt.Errorf("run not found: %s", runID)
	}

	if outDir == "" {
		outDir = c.exportsDir
	}
	dir := filepath.Join(outDir, runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ExportSummary{}, err
	}

	summary := ExportSummary{RunID: runID, Directory: dir}
	if err := writeJSON(filepath.Join(dir, "run.json"), run); err != nil {
		return ExportSummary{}, err
	}
	summary.Files = append(summary.Files, "run.json")

	if snapshots, ok, err := c.store.GetSnapshots(ctx, runID); err != nil {
		return ExportSummary{}, err
	} else if ok {
		if err := writeJSON(filepath.Join(dir, "snapshots.json"), snapshots); err != nil {
			return ExportSummary{}, err
		}
		summary.Files = append(summary.Files, "snapshots.json")
	}

	if points, ok, err := c.store.GetMetrics(ctx, runID); err != nil {
		return ExportSummary{}, err
	} else if ok {
		if err := writeJSON(filepath.Join(dir, "metrics.json"), points); err != nil {
			return ExportSummary{}, err
		}
		summary.Files = append(summary.Files, "metrics.json")
	}

	return summary, nil
}

func buildEngine(req RunRequest) (*sim.Engine, error) {
	core := mind.NewCore(req.Mind)
	ecosystem, err := eco.NewEcosystem(req.Eco, core)
	if err != nil {
		return nil, err
	}
	cx, err := cortex.NewCortex(req.Cortex, core)
	if err != nil {
		return nil, err
	}

	engine := sim.NewEngine(sim.EngineHooks{OnSubsystemFailure: req.OnSubsystemFailure})
	// The consciousness module registers first so both dependents read the
	// already-advanced parameters for the tick.
	for _, s := range []sim.Simulation{mind.NewModule(core), ecosystem, cx} {
		if err := engine.Register(s); err != nil {
			return nil, err
		}
	}
	return engine, nil
}

func currentVersion() model.VersionedRecord {
	return model.VersionedRecord{
		SchemaVersion: storage.CurrentSchemaVersion,
		CodecVersion:  storage.CurrentCodecVersion,
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
