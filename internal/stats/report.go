package stats

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"noetica/internal/model"
)

// MetricSummary aggregates one named metric across a run.
type MetricSummary struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Final float64 `json:"final"`
}

// RunReport summarizes a finished run and its sampled metrics.
type RunReport struct {
	Run     model.RunSummary `json:"run"`
	Metrics []MetricSummary  `json:"metrics"`
}

// BuildRunReport aggregates sampled metric points into per-metric summaries.
// Metrics are ordered by name so reports are stable across runs.
func BuildRunReport(run model.RunSummary, points []model.MetricPoint) RunReport {
	series := make(map[string][]float64)
	for _, point := range points {
		names := make([]string, 0, len(point.Values))
		for name := range point.Values {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			series[name] = append(series[name], point.Values[name])
		}
	}

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	report := RunReport{Run: run, Metrics: make([]MetricSummary, 0, len(names))}
	for _, name := range names {
		values := series[name]
		summary := MetricSummary{Name: name, Count: len(values), Final: values[len(values)-1]}
		summary.Mean, _ = Avg(values)
		summary.Std, _ = Std(values)
		summary.Min, summary.Max, _ = Bounds(values)
		report.Metrics = append(report.Metrics, summary)
	}
	return report
}

// Render writes a plain-text report.
func (r RunReport) Render(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "run %s\n", r.Run.ID)
	fmt.Fprintf(&b, "  seed        %d\n", r.Run.Seed)
	fmt.Fprintf(&b, "  ticks       %s\n", humanize.Comma(int64(r.Run.Ticks)))
	fmt.Fprintf(&b, "  simulations %s\n", strings.Join(r.Run.Simulations, ", "))
	fmt.Fprintf(&b, "  failures    %d\n", r.Run.Failures)
	if r.Run.ElapsedMS > 0 {
		fmt.Fprintf(&b, "  elapsed     %s\n", time.Duration(r.Run.ElapsedMS)*time.Millisecond)
	}

	if len(r.Metrics) > 0 {
		width := 0
		for _, m := range r.Metrics {
			if len(m.Name) > width {
				width = len(m.Name)
			}
		}
		fmt.Fprintf(&b, "\n  %-*s %8s %10s %10s %10s %10s %10s\n",
			width, "metric", "samples", "mean", "std", "min", "max", "final")
		for _, m := range r.Metrics {
			fmt.Fprintf(&b, "  %-*s %8s %10.4f %10.4f %10.4f %10.4f %10.4f\n",
				width, m.Name, humanize.Comma(int64(m.Count)), m.Mean, m.Std, m.Min, m.Max, m.Final)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
