package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	coremetrics "github.com/chetan0021/spacecraft-eps-power-budget/core/metrics"
)

// PromSink records budget and run summaries as Prometheus gauges on its own
// registry. Because the tool is one-shot there is nothing long-lived to
// scrape, so recorded values are pushed to a push gateway when one is
// configured; with an empty URL the sink only maintains the registry, which
// is the mode the tests use.
type PromSink struct {
	registry *prometheus.Registry
	pushURL  string
	job      string

	budgetNominal prometheus.Gauge
	budgetEOL     prometheus.Gauge
	budgetExcess  prometheus.Gauge
	budgetMargin  *prometheus.GaugeVec

	runFinalSoC    *prometheus.GaugeVec
	runFinalEnergy *prometheus.GaugeVec
	runTimeToFull  *prometheus.GaugeVec
	runSteps       *prometheus.GaugeVec
	runsTotal      *prometheus.CounterVec
}

// NewPromSink builds a PromSink from the metrics configuration.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return newPromSink(cfg.PushGatewayURL, cfg.PushJobName)
}

func newPromSink(pushURL, job string) (*PromSink, error) {
	s := &PromSink{
		registry: prometheus.NewRegistry(),
		pushURL:  pushURL,
		job:      job,
		budgetNominal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "eps_budget_nominal_power_watts",
			Help: "Total nominal bus load power",
		}),
		budgetEOL: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "eps_budget_eol_power_watts",
			Help: "End-of-life avionics load power",
		}),
		budgetExcess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "eps_budget_excess_solar_watts",
			Help: "Solar surplus available for routing",
		}),
		budgetMargin: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "eps_budget_margin_watts",
			Help: "EPS power margin against a load case",
		}, []string{"load_case"}),
		runFinalSoC: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "eps_run_final_soc",
			Help: "Battery state of charge at the end of a simulation run",
		}, []string{"kind"}),
		runFinalEnergy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "eps_run_final_energy_wh",
			Help: "Stored battery energy at the end of a simulation run",
		}, []string{"kind"}),
		runTimeToFull: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "eps_run_time_to_full_hours",
			Help: "Simulated time at which the battery reached capacity, -1 if never",
		}, []string{"kind"}),
		runSteps: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "eps_run_steps",
			Help: "Number of recorded snapshots in a simulation run",
		}, []string{"kind"}),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eps_runs_total",
			Help: "Total number of simulation runs recorded",
		}, []string{"kind"}),
	}

	collectors := []prometheus.Collector{
		s.budgetNominal, s.budgetEOL, s.budgetExcess, s.budgetMargin,
		s.runFinalSoC, s.runFinalEnergy, s.runTimeToFull, s.runSteps, s.runsTotal,
	}
	for _, c := range collectors {
		if err := s.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Registry exposes the sink's registry for tests and embedding.
func (s *PromSink) Registry() *prometheus.Registry {
	return s.registry
}

// RecordBudget sets the static budget gauges.
func (s *PromSink) RecordBudget(report coremetrics.BudgetReport) error {
	s.budgetNominal.Set(report.NominalW)
	s.budgetEOL.Set(report.EOLW)
	s.budgetExcess.Set(report.ExcessW)
	s.budgetMargin.WithLabelValues("nominal").Set(report.MarginNominalW)
	s.budgetMargin.WithLabelValues("eol").Set(report.MarginEOLW)
	return s.push()
}

// RecordRunSummary sets the per-run gauges and increments the run counter.
func (s *PromSink) RecordRunSummary(summary coremetrics.RunSummary) error {
	s.runFinalSoC.WithLabelValues(summary.Kind).Set(summary.FinalSoC)
	s.runFinalEnergy.WithLabelValues(summary.Kind).Set(summary.FinalEnergyWh)
	s.runTimeToFull.WithLabelValues(summary.Kind).Set(summary.TimeToFullH)
	s.runSteps.WithLabelValues(summary.Kind).Set(float64(summary.Steps))
	s.runsTotal.WithLabelValues(summary.Kind).Inc()
	return s.push()
}

func (s *PromSink) push() error {
	if s.pushURL == "" {
		return nil
	}
	return push.New(s.pushURL, s.job).Gatherer(s.registry).Push()
}
