package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"noetica/internal/storage"
	"noetica/pkg/noetica"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "report":
		return runReport(ctx, args[1:])
	case "snapshots":
		return runSnapshots(ctx, args[1:])
	case "metrics":
		return runMetrics(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "noetica.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := noetica.New(noetica.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional run config YAML path")
	ticks := fs.Int("ticks", 3000, "tick count")
	seed := fs.Int64("seed", 1, "rng seed")
	captureEvery := fs.Int("capture-every", 50, "snapshot cadence in ticks")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "noetica.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	var req noetica.RunRequest
	if *configPath != "" {
		cfg, err := loadRunConfig(*configPath)
		if err != nil {
			return err
		}
		req = cfg.request()
	}
	if *configPath == "" || setFlags["ticks"] {
		req.Ticks = *ticks
	}
	if *configPath == "" || setFlags["seed"] {
		req.Seed = *seed
	}
	if *configPath == "" || setFlags["capture-every"] {
		req.CaptureEvery = *captureEvery
	}
	req.OnSubsystemFailure = func(name string, tick int, err error) {
		fmt.Fprintf(os.Stderr, "subsystem %s failed at tick %d: %v\n", name, tick, err)
	}

	client, err := noetica.New(noetica.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	result, err := client.Run(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("run=%s ticks=%d snapshots=%d failures=%d\n",
		result.Run.ID, result.Run.Ticks, result.Snapshots, result.Run.Failures)
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "noetica.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := noetica.New(noetica.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	runs, err := client.Runs(ctx)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}
	for _, run := range runs {
		fmt.Printf("%s seed=%d ticks=%d failures=%d\n", run.ID, run.Seed, run.Ticks, run.Failures)
	}
	return nil
}

func runReport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "noetica.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("report requires -run-id")
	}

	client, err := noetica.New(noetica.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	report, err := client.Report(ctx, *runID)
	if err != nil {
		return err
	}
	return report.Render(os.Stdout)
}

func runSnapshots(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("snapshots", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "noetica.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("snapshots requires -run-id")
	}

	client, err := noetica.New(noetica.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	snapshots, err := client.Snapshots(ctx, *runID)
	if err != nil {
		return err
	}
	for _, snapshot := range snapshots {
		fmt.Printf("tick=%d population=%.0f insights=%.0f coherence=%.4f\n",
			snapshot.Tick,
			snapshot.Values["eco.population"],
			snapshot.Values["cortex.insights"],
			snapshot.Values["mind.coherence"])
	}
	return nil
}

func runMetrics(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("metrics", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	name := fs.String("name", "", "print only this metric")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "noetica.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("metrics requires -run-id")
	}

	client, err := noetica.New(noetica.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	points, err := client.Metrics(ctx, *runID)
	if err != nil {
		return err
	}
	for _, point := range points {
		if *name != "" {
			fmt.Printf("tick=%d %s=%.4f\n", point.Tick, *name, point.Values[*name])
			continue
		}
		fmt.Printf("tick=%d values=%d\n", point.Tick, len(point.Values))
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	outDir := fs.String("out", "exports", "output directory")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "noetica.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("export requires -run-id")
	}

	client, err := noetica.New(noetica.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	summary, err := client.Export(ctx, *runID, *outDir)
	if err != nil {
		return err
	}
	fmt.Printf("exported %s to %s (%d files)\n", summary.RunID, summary.Directory, len(summary.Files))
	return nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: noeticactl <init|run|runs|report|snapshots|metrics|export> [flags]", msg)
}
