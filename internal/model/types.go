package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunSummary describes one headless simulation run.
type RunSummary struct {
	VersionedRecord
	ID          string   `json:"id"`
	Seed        int64    `json:"seed"`
	Ticks       int      `json:"ticks"`
	Simulations []string `json:"simulations"`
	Failures    int      `json:"failures"`
	StartedUnix int64    `json:"started_unix"`
	ElapsedMS   int64    `json:"elapsed_ms"`
}

// Snapshot is one captured engine state at a tick.
type Snapshot struct {
	VersionedRecord
	RunID  string             `json:"run_id"`
	Tick   int                `json:"tick"`
	Values map[string]float64 `json:"values"`
}

// MetricPoint is one sampled time-series point for a run.
type MetricPoint struct {
	Tick   int                `json:"tick"`
	Values map[string]float64 `json:"values"`
}
