package storage

import (
	"context"

	"noetica/internal/model"
)

// Store defines persistence operations for headless run artifacts.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunSummary) error
	GetRun(ctx context.Context, id string) (model.RunSummary, bool, error)
	ListRuns(ctx context.Context) ([]model.RunSummary, error)
	SaveSnapshot(ctx context.Context, snapshot model.Snapshot) error
	GetSnapshots(ctx context.Context, runID string) ([]model.Snapshot, bool, error)
	SaveMetrics(ctx context.Context, runID string, points []model.MetricPoint) error
	GetMetrics(ctx context.Context, runID string) ([]model.MetricPoint, bool, error)
}
