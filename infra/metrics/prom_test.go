package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/chetan0021/spacecraft-eps-power-budget/core/metrics"
)

func TestPromSink_RecordBudget(t *testing.T) {
	sink, err := NewPromSink(coremetrics.Config{})
	require.NoError(t, err)

	rep := coremetrics.BudgetReport{
		RunID:            "run-1",
		NominalW:         60.65,
		EOLW:             75.8125,
		MarginNominalW:   89.35,
		NominalCompliant: true,
		MarginEOLW:       74.1875,
		EOLCompliant:     true,
		SolarW:           180,
		ExcessW:          104.1875,
		Timestamp:        time.Now(),
	}
	require.NoError(t, sink.RecordBudget(rep))

	expected := `
# HELP eps_budget_nominal_power_watts Total nominal bus load power
# TYPE eps_budget_nominal_power_watts gauge
eps_budget_nominal_power_watts 60.65
`
	if err := testutil.CollectAndCompare(sink.budgetNominal, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if c := testutil.CollectAndCount(sink.budgetMargin); c != 2 {
		t.Errorf("expected 2 margin series, got %d", c)
	}
}

func TestPromSink_RecordRunSummary(t *testing.T) {
	sink, err := NewPromSink(coremetrics.Config{})
	require.NoError(t, err)

	sum := coremetrics.RunSummary{
		RunID:         "run-1",
		Kind:          "charge",
		Steps:         31,
		TimestepH:     1.0 / 60.0,
		DurationH:     0.5,
		FinalEnergyWh: 100,
		FinalSoC:      1,
		TimeToFullH:   1.0 / 3.0,
		Timestamp:     time.Now(),
	}
	require.NoError(t, sink.RecordRunSummary(sum))
	require.NoError(t, sink.RecordRunSummary(sum))

	expected := `
# HELP eps_runs_total Total number of simulation runs recorded
# TYPE eps_runs_total counter
eps_runs_total{kind="charge"} 2
`
	if err := testutil.CollectAndCompare(sink.runsTotal, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}

	expected = `
# HELP eps_run_final_soc Battery state of charge at the end of a simulation run
# TYPE eps_run_final_soc gauge
eps_run_final_soc{kind="charge"} 1
`
	if err := testutil.CollectAndCompare(sink.runFinalSoC, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestMultiSinkFanout(t *testing.T) {
	a, err := NewPromSink(coremetrics.Config{})
	require.NoError(t, err)
	b, err := NewPromSink(coremetrics.Config{})
	require.NoError(t, err)

	multi := coremetrics.NewMultiSink(a, b, coremetrics.NopSink{})
	require.NoError(t, multi.RecordRunSummary(coremetrics.RunSummary{Kind: "powerflow"}))

	for _, s := range []*PromSink{a, b} {
		if c := testutil.CollectAndCount(s.runsTotal); c != 1 {
			t.Errorf("expected 1 run series, got %d", c)
		}
	}
}
