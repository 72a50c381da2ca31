package storage

import (
	"errors"
	"testing"

	"noetica/internal/model"
)

func TestRunCodecRoundTrip(t *testing.T) {
	input := model.RunSummary{
		VersionedRecord: versioned(),
		ID:              "run-1",
		Seed:            7,
		Ticks:           1500,
		Simulations:     []string{"mind", "eco"},
		Failures:        1,
	}

	payload, err := EncodeRun(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	output, err := DecodeRun(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if output.ID != input.ID || output.Seed != input.Seed || output.Failures != input.Failures {
		t.Fatalf("unexpected run: %+v", output)
	}
}

func TestDecodeRunRejectsVersionMismatch(t *testing.T) {
	stale := model.RunSummary{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion + 1, CodecVersion: CurrentCodecVersion},
		ID:              "run-1",
	}
	payload, err := EncodeRun(stale)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if _, err := DecodeRun(payload); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected version mismatch, got %v", err)
	}
}

func TestSnapshotCodecRoundTrip(t *testing.T) {
	input := model.Snapshot{
		VersionedRecord: versioned(),
		RunID:           "run-1",
		Tick:            300,
		Values:          map[string]float64{"mind.complexity": 0.42},
	}

	payload, err := EncodeSnapshot(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	output, err := DecodeSnapshot(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if output.Tick != 300 || output.Values["mind.complexity"] != 0.42 {
		t.Fatalf("unexpected snapshot: %+v", output)
	}
}

func TestDecodeSnapshotRejectsVersionMismatch(t *testing.T) {
	stale := model.Snapshot{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion + 1},
		RunID:           "run-1",
	}
	payload, err := EncodeSnapshot(stale)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if _, err := DecodeSnapshot(payload); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected version mismatch, got %v", err)
	}
}

func TestMetricsCodecRoundTrip(t *testing.T) {
	input := []model.MetricPoint{
		{Tick: 1, Values: map[string]float64{"cortex.self_awareness": 0.5}},
		{Tick: 2, Values: map[string]float64{"cortex.self_awareness": 0.55}},
	}

	payload, err := EncodeMetrics(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	output, err := DecodeMetrics(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(output) != 2 || output[1].Values["cortex.self_awareness"] != 0.55 {
		t.Fatalf("unexpected metrics: %+v", output)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := DecodeRun([]byte("{")); err == nil {
		t.Fatal("expected run decode error")
	}
	if _, err := DecodeSnapshot([]byte("{")); err == nil {
		t.Fatal("expected snapshot decode error")
	}
	if _, err := DecodeMetrics([]byte("{")); err == nil {
		t.Fatal("expected metrics decode error")
	}
}
