// Package app wires configuration, the simulation core and the reporting,
// plotting and metrics collaborators into runnable analyses.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/chetan0021/spacecraft-eps-power-budget/config"
	"github.com/chetan0021/spacecraft-eps-power-budget/core/budget"
	"github.com/chetan0021/spacecraft-eps-power-budget/core/eps"
	"github.com/chetan0021/spacecraft-eps-power-budget/core/logger"
	"github.com/chetan0021/spacecraft-eps-power-budget/core/metrics"
	infralogger "github.com/chetan0021/spacecraft-eps-power-budget/infra/logger"
	inframetrics "github.com/chetan0021/spacecraft-eps-power-budget/infra/metrics"
	"github.com/chetan0021/spacecraft-eps-power-budget/infra/plot"
	"github.com/chetan0021/spacecraft-eps-power-budget/infra/report"
)

// Service composes the EPS core with its collaborators for one process run.
// Every analysis started from the same Service shares a run ID, so budget
// and simulation records can be correlated in the metrics backends.
type Service struct {
	cfg    *config.Config
	log    logger.Logger
	sink   metrics.MetricsSink
	report *report.Writer
	runID  string

	router  *eps.PowerRouter
	battery *eps.BatteryIntegrator
}

// New builds the service: domain components from the validated configuration
// and metrics sinks per the metrics section. Output goes to stdout.
func New(cfg *config.Config) (*Service, error) {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput is New with a custom report destination, used by tests.
func NewWithOutput(cfg *config.Config, out io.Writer) (*Service, error) {
	log := infralogger.NewZerologLoggerWith("eps", infralogger.Options{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
	})

	router, err := eps.NewPowerRouter(cfg.Battery.SoCUpperLimit)
	if err != nil {
		return nil, fmt.Errorf("power router: %w", err)
	}
	battery, err := eps.NewBatteryIntegrator(cfg.Battery.CapacityWh, cfg.Battery.InitialSoC, cfg.Battery.ChargingEfficiency)
	if err != nil {
		return nil, fmt.Errorf("battery integrator: %w", err)
	}

	var sinks []metrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := inframetrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prometheus sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, inframetrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink metrics.MetricsSink = metrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	return &Service{
		cfg:     cfg,
		log:     log,
		sink:    sink,
		report:  report.New(out),
		runID:   uuid.NewString(),
		router:  router,
		battery: battery,
	}, nil
}

// RunID returns the identifier shared by all analyses of this service.
func (s *Service) RunID() string { return s.runID }

// Close releases sink resources such as the InfluxDB HTTP client. Safe to
// call on services with only in-process sinks.
func (s *Service) Close() {
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
}

// Budget computes the static power balance, prints it and records it.
func (s *Service) Budget() (metrics.BudgetReport, error) {
	cfg := s.cfg
	buses := cfg.BusLoads()

	nominal := budget.NominalPower(buses)
	eolW := budget.EOLPower(nominal.TotalW, cfg.EPS.DegradationFactor)
	marginNom := budget.PowerMargin(cfg.EPS.MaxPowerW, nominal.TotalW)
	marginEOL := budget.PowerMargin(cfg.EPS.MaxPowerW, eolW)
	excess := budget.ExcessSolarPower(cfg.Solar.ArrayPowerW, eolW)
	remaining, err := budget.BatteryRemainingEnergy(cfg.Battery.CapacityWh, cfg.Battery.InitialSoC)
	if err != nil {
		return metrics.BudgetReport{}, err
	}

	chargeTime := -1.0
	if excess > 0 {
		chargeTime, err = budget.ChargingTime(remaining, excess, cfg.Battery.ChargingEfficiency)
		if err != nil {
			return metrics.BudgetReport{}, err
		}
	} else {
		s.log.Warnf("no solar surplus (%.3f W), analytical charge time unavailable", excess)
	}

	rep := metrics.BudgetReport{
		RunID:            s.runID,
		PerBusW:          nominal.PerBusW,
		NominalW:         nominal.TotalW,
		EOLW:             eolW,
		MarginNominalW:   marginNom.MarginW,
		NominalCompliant: marginNom.Compliant,
		MarginEOLW:       marginEOL.MarginW,
		EOLCompliant:     marginEOL.Compliant,
		SolarW:           cfg.Solar.ArrayPowerW,
		ExcessW:          excess,
		RemainingWh:      remaining,
		ChargeTimeH:      chargeTime,
		Timestamp:        time.Now(),
	}

	s.report.Budget(buses, rep)
	if err := s.sink.RecordBudget(rep); err != nil {
		s.log.Errorf("record budget: %v", err)
	}
	return rep, nil
}

// Routing applies one routing decision at the configured initial SoC and
// prints the allocation.
func (s *Service) Routing(excessW float64) error {
	alloc, err := s.router.Route(excessW, s.cfg.Battery.InitialSoC)
	if err != nil {
		return err
	}
	s.report.Routing(alloc)
	return nil
}

// Charge runs the constant-power battery charge simulation driven by the
// budget's excess power, prints the summary, records it and renders the SoC
// plot when enabled.
func (s *Service) Charge() error {
	rep, err := s.Budget()
	if err != nil {
		return err
	}
	if err := s.Routing(rep.ExcessW); err != nil {
		return err
	}

	ts, err := s.battery.Simulate(rep.ExcessW, s.cfg.Simulation.TimestepH, s.cfg.Simulation.DurationH)
	if err != nil {
		return err
	}
	s.report.ChargeRun(ts)

	timeToFull := -1.0
	if i := ts.FirstFullIndex(); i >= 0 {
		timeToFull = ts.Steps[i].TimeH
	}
	summary := metrics.RunSummary{
		RunID:         s.runID,
		Kind:          "charge",
		Steps:         len(ts.Steps),
		TimestepH:     ts.TimestepH,
		DurationH:     ts.DurationH,
		FinalEnergyWh: ts.Final().EnergyWh,
		FinalSoC:      ts.Final().SoC,
		TimeToFullH:   timeToFull,
		Timestamp:     time.Now(),
	}
	if err := s.sink.RecordRunSummary(summary); err != nil {
		s.log.Errorf("record charge run: %v", err)
	}

	if s.cfg.Plot.Enabled {
		path := filepath.Join(s.cfg.Plot.OutputDir, "battery_soc_vs_time.png")
		if err := plot.SaveChargePlot(ts, path); err != nil {
			return fmt.Errorf("save charge plot: %w", err)
		}
		s.log.Infof("charge plot saved to %s", path)
	}
	return nil
}

// PowerFlow runs the coupled router and integrator simulation, prints the
// summary, records it and renders the three power-flow charts when enabled.
func (s *Service) PowerFlow() error {
	rep, err := s.Budget()
	if err != nil {
		return err
	}

	sim := eps.NewPowerFlowSimulator(s.router, s.battery, s.log)
	ps, err := sim.Run(rep.SolarW, rep.EOLW, s.cfg.Simulation.TimestepH, s.cfg.Simulation.DurationH)
	if err != nil {
		return err
	}
	s.report.PowerFlow(ps)

	timeToFull := -1.0
	if i := ps.FirstFullIndex(); i >= 0 {
		timeToFull = ps.Steps[i].TimeH
	}
	summary := metrics.RunSummary{
		RunID:         s.runID,
		Kind:          "powerflow",
		Steps:         len(ps.Steps),
		TimestepH:     ps.TimestepH,
		DurationH:     ps.DurationH,
		FinalEnergyWh: ps.Final().BatteryEnergyWh,
		FinalSoC:      ps.Final().BatterySoC,
		TimeToFullH:   timeToFull,
		FinalShuntW:   ps.Final().ShuntW,
		Timestamp:     time.Now(),
	}
	if err := s.sink.RecordRunSummary(summary); err != nil {
		s.log.Errorf("record power flow run: %v", err)
	}

	if s.cfg.Plot.Enabled {
		paths, err := plot.SavePowerFlowPlots(ps, s.cfg.Plot.OutputDir)
		if err != nil {
			return fmt.Errorf("save power flow plots: %w", err)
		}
		for _, p := range paths {
			s.log.Infof("power flow plot saved to %s", p)
		}
	}
	return nil
}
