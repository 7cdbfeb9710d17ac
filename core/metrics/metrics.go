// Package metrics defines the observability surface of the simulator: value
// records summarizing a run and the sink interface implemented by the
// Prometheus and InfluxDB adapters in infra/metrics. Only run summaries are
// recorded; per-step series stay in memory.
package metrics

import "time"

// BudgetReport summarizes the static power budget computed before any
// time-domain simulation runs.
type BudgetReport struct {
	RunID            string
	PerBusW          []float64
	NominalW         float64
	EOLW             float64
	MarginNominalW   float64
	NominalCompliant bool
	MarginEOLW       float64
	EOLCompliant     bool
	SolarW           float64
	ExcessW          float64
	RemainingWh      float64
	ChargeTimeH      float64
	Timestamp        time.Time
}

// RunSummary summarizes one time-domain simulation run.
type RunSummary struct {
	RunID         string
	Kind          string // "charge" or "powerflow"
	Steps         int
	TimestepH     float64
	DurationH     float64
	FinalEnergyWh float64
	FinalSoC      float64
	TimeToFullH   float64 // -1 if the battery never filled
	FinalShuntW   float64 // 0 for charge-only runs
	Timestamp     time.Time
}

// MetricsSink records budget and simulation results for observability.
type MetricsSink interface {
	RecordBudget(report BudgetReport) error
	RecordRunSummary(summary RunSummary) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordBudget(BudgetReport) error   { return nil }
func (NopSink) RecordRunSummary(RunSummary) error { return nil }

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordBudget forwards the report to all sinks, returning the first error encountered.
func (m *MultiSink) RecordBudget(report BudgetReport) error {
	for _, s := range m.Sinks {
		if err := s.RecordBudget(report); err != nil {
			return err
		}
	}
	return nil
}

// RecordRunSummary forwards the summary to all sinks, returning the first error encountered.
func (m *MultiSink) RecordRunSummary(summary RunSummary) error {
	for _, s := range m.Sinks {
		if err := s.RecordRunSummary(summary); err != nil {
			return err
		}
	}
	return nil
}

// Close releases every sink that holds external resources, such as the
// InfluxDB HTTP client.
func (m *MultiSink) Close() {
	for _, s := range m.Sinks {
		if c, ok := s.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
