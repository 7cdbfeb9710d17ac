// Package report renders human-readable summaries of budget and simulation
// results to a writer. It only reads the series handed to it.
package report

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/chetan0021/spacecraft-eps-power-budget/core/metrics"
	"github.com/chetan0021/spacecraft-eps-power-budget/core/model"
)

const sepWidth = 60

// Writer prints formatted report sections to a single output stream.
type Writer struct {
	out io.Writer
}

// New returns a report writer targeting out.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) header(title string) {
	line := make([]byte, sepWidth)
	for i := range line {
		line[i] = '='
	}
	fmt.Fprintf(w.out, "\n%s\n  %s\n%s\n", line, title, line)
}

func (w *Writer) sep() {
	line := make([]byte, sepWidth)
	for i := range line {
		line[i] = '-'
	}
	fmt.Fprintln(w.out, string(line))
}

// Budget prints the static power budget: per-bus loads, nominal and EOL
// power, margins and the analytical charging figures.
func (w *Writer) Budget(buses []model.BusLoad, rep metrics.BudgetReport) {
	w.header("EPS POWER BUDGET")
	for i, b := range buses {
		fmt.Fprintf(w.out, "  Bus %-6s %5.1f V x %4.2f A  = %8.3f W\n", b.Name, b.VoltageV, b.CurrentA, rep.PerBusW[i])
	}
	w.sep()
	fmt.Fprintf(w.out, "  Nominal power              : %8.3f W\n", rep.NominalW)
	fmt.Fprintf(w.out, "  EOL power                  : %8.3f W\n", rep.EOLW)
	fmt.Fprintf(w.out, "  Margin vs nominal          : %8.3f W  (%s)\n", rep.MarginNominalW, compliance(rep.NominalCompliant))
	fmt.Fprintf(w.out, "  Margin vs EOL              : %8.3f W  (%s)\n", rep.MarginEOLW, compliance(rep.EOLCompliant))
	w.sep()
	fmt.Fprintf(w.out, "  Solar generation           : %8.3f W\n", rep.SolarW)
	fmt.Fprintf(w.out, "  Excess solar power         : %8.3f W\n", rep.ExcessW)
	fmt.Fprintf(w.out, "  Battery headroom           : %8.3f Wh\n", rep.RemainingWh)
	if rep.ChargeTimeH >= 0 {
		fmt.Fprintf(w.out, "  Analytical charge time     : %8.3f h  (%.1f min)\n", rep.ChargeTimeH, rep.ChargeTimeH*60)
	} else {
		fmt.Fprintln(w.out, "  Analytical charge time     :      n/a  (no surplus)")
	}
}

// Routing prints a single routing allocation.
func (w *Writer) Routing(alloc model.RoutingAllocation) {
	w.header("EPS POWER ROUTING")
	fmt.Fprintf(w.out, "  Excess power               : %8.3f W\n", alloc.ExcessPowerW)
	fmt.Fprintf(w.out, "  1. Battery charging        : %8.3f W\n", alloc.BatteryChargeW)
	fmt.Fprintf(w.out, "  2. Payload sharing         : %8.3f W  (reserved)\n", alloc.PayloadW)
	fmt.Fprintf(w.out, "  3. Supercap buffering      : %8.3f W  (reserved)\n", alloc.SupercapW)
	fmt.Fprintf(w.out, "  4. Shunt dissipation       : %8.3f W\n", alloc.ShuntW)
	fmt.Fprintf(w.out, "  Battery full               : %v\n", alloc.BatteryFull)
}

// ChargeRun prints a summary of a constant-power battery run.
func (w *Writer) ChargeRun(ts model.BatteryTimeSeries) {
	w.header("BATTERY CHARGE SIMULATION")
	first, final := ts.Steps[0], ts.Final()
	fmt.Fprintf(w.out, "  Window                     : %7.1f min  (dt = %.1f min)\n", ts.DurationH*60, ts.TimestepH*60)
	fmt.Fprintf(w.out, "  Steps recorded             : %7d\n", len(ts.Steps))
	fmt.Fprintf(w.out, "  Drive power                : %8.3f W  (eta = %.0f%%)\n", ts.DrivePowerW, ts.Efficiency*100)
	w.sep()
	fmt.Fprintf(w.out, "  Initial energy             : %8.3f Wh  (%.1f%% SoC)\n", first.EnergyWh, first.SoC*100)
	fmt.Fprintf(w.out, "  Final energy               : %8.3f Wh  (%.1f%% SoC)\n", final.EnergyWh, final.SoC*100)
	fmt.Fprintf(w.out, "  Mean applied delta         : %8.4f Wh/step\n", meanDelta(ts))
	if i := ts.FirstFullIndex(); i >= 0 {
		fmt.Fprintf(w.out, "  Battery reached full at    : %8.2f min\n", ts.Steps[i].TimeH*60)
	} else {
		fmt.Fprintln(w.out, "  Battery did not reach full within the window.")
	}
}

// PowerFlow prints a summary of a coupled power-flow run.
func (w *Writer) PowerFlow(ps model.PowerFlowSeries) {
	w.header("EPS POWER FLOW SIMULATION")
	first, final := ps.Steps[0], ps.Final()
	fmt.Fprintf(w.out, "  Window                     : %7.1f min  (dt = %.1f min)\n", ps.DurationH*60, ps.TimestepH*60)
	fmt.Fprintf(w.out, "  Steps recorded             : %7d\n", len(ps.Steps))
	fmt.Fprintf(w.out, "  Solar generation           : %8.3f W  (constant)\n", first.SolarW)
	fmt.Fprintf(w.out, "  Avionics EOL load          : %8.3f W  (constant)\n", first.AvionicsW)
	w.sep()
	fmt.Fprintf(w.out, "  Initial battery energy     : %8.3f Wh  (%.1f%% SoC)\n", first.BatteryEnergyWh, first.BatterySoC*100)
	fmt.Fprintf(w.out, "  Final battery energy       : %8.3f Wh  (%.1f%% SoC)\n", final.BatteryEnergyWh, final.BatterySoC*100)
	fmt.Fprintf(w.out, "  Final charging power       : %8.3f W\n", final.BatteryChargingW)
	fmt.Fprintf(w.out, "  Final shunt dissipation    : %8.3f W\n", final.ShuntW)
	fmt.Fprintf(w.out, "  Mean charging power        : %8.3f W\n", meanCharging(ps))
	fmt.Fprintf(w.out, "  Shunt energy dissipated    : %8.3f Wh\n", shuntEnergy(ps))
	if i := ps.FirstFullIndex(); i >= 0 {
		fmt.Fprintf(w.out, "  Battery reached full at    : %8.2f min\n", ps.Steps[i].TimeH*60)
	} else {
		fmt.Fprintln(w.out, "  Battery did not reach full within the window.")
	}
}

func compliance(ok bool) string {
	if ok {
		return "compliant"
	}
	return "OVERLOAD"
}

// meanDelta averages the applied per-step energy deltas, excluding the t=0
// snapshot which has none.
func meanDelta(ts model.BatteryTimeSeries) float64 {
	if len(ts.Steps) < 2 {
		return 0
	}
	deltas := make([]float64, 0, len(ts.Steps)-1)
	for _, s := range ts.Steps[1:] {
		deltas = append(deltas, s.DeltaWh)
	}
	return stat.Mean(deltas, nil)
}

func meanCharging(ps model.PowerFlowSeries) float64 {
	if len(ps.Steps) < 2 {
		return 0
	}
	charging := make([]float64, 0, len(ps.Steps)-1)
	for _, s := range ps.Steps[1:] {
		charging = append(charging, s.BatteryChargingW)
	}
	return stat.Mean(charging, nil)
}

// shuntEnergy integrates shunt power over the run.
func shuntEnergy(ps model.PowerFlowSeries) float64 {
	if len(ps.Steps) < 2 {
		return 0
	}
	shunts := make([]float64, 0, len(ps.Steps)-1)
	for _, s := range ps.Steps[1:] {
		shunts = append(shunts, s.ShuntW)
	}
	return floats.Sum(shunts) * ps.TimestepH
}
