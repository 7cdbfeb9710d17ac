// Package plot renders simulation series to PNG charts with gonum/plot,
// mirroring the three-panel view engineers expect from a power flow run:
// per-sink powers, stored energy against capacity, and SoC.
package plot

import (
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/chetan0021/spacecraft-eps-power-budget/core/model"
)

var (
	colorSolar    = color.RGBA{R: 0xff, G: 0x98, B: 0x00, A: 0xff}
	colorAvionics = color.RGBA{R: 0x21, G: 0x96, B: 0xf3, A: 0xff}
	colorCharge   = color.RGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	colorShunt    = color.RGBA{R: 0xf4, G: 0x43, B: 0x36, A: 0xff}
	colorEnergy   = color.RGBA{R: 0x9c, G: 0x27, B: 0xb0, A: 0xff}
	colorSoC      = color.RGBA{R: 0x00, G: 0xbc, B: 0xd4, A: 0xff}
	colorLimit    = color.RGBA{R: 0xf4, G: 0x43, B: 0x36, A: 0xff}
	colorRef      = color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
)

// SaveChargePlot renders the SoC trajectory of a constant-power battery run.
func SaveChargePlot(ts model.BatteryTimeSeries, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Battery SoC vs Time (dt = %.1f min, eta = %.0f%%)", ts.TimestepH*60, ts.Efficiency*100)
	p.X.Label.Text = "Time [min]"
	p.Y.Label.Text = "State of Charge [%]"
	p.Y.Min, p.Y.Max = 0, 112
	p.Add(plotter.NewGrid())

	soc := make(plotter.XYs, len(ts.Steps))
	for i, s := range ts.Steps {
		soc[i] = plotter.XY{X: s.TimeH * 60, Y: s.SoC * 100}
	}
	line, err := newLine(soc, colorSoC, nil)
	if err != nil {
		return err
	}
	p.Add(line)
	p.Legend.Add("State of Charge", line)

	end := ts.DurationH * 60
	if err := addRefLine(p, end, 100, colorLimit, "100% SoC limit"); err != nil {
		return err
	}
	if err := addRefLine(p, end, ts.Steps[0].SoC*100, colorRef, fmt.Sprintf("Initial SoC (%.0f%%)", ts.Steps[0].SoC*100)); err != nil {
		return err
	}

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

// SavePowerFlowPlots renders the three power-flow charts into dir and
// returns the written file paths.
func SavePowerFlowPlots(ps model.PowerFlowSeries, dir string) ([]string, error) {
	paths := []string{
		filepath.Join(dir, "eps_power_flow.png"),
		filepath.Join(dir, "eps_battery_energy.png"),
		filepath.Join(dir, "eps_battery_soc.png"),
	}
	if err := savePowerPlot(ps, paths[0]); err != nil {
		return nil, err
	}
	if err := saveEnergyPlot(ps, paths[1]); err != nil {
		return nil, err
	}
	if err := saveSoCPlot(ps, paths[2]); err != nil {
		return nil, err
	}
	return paths, nil
}

func savePowerPlot(ps model.PowerFlowSeries, path string) error {
	p := plot.New()
	p.Title.Text = "EPS Power Flow vs Time"
	p.X.Label.Text = "Time [min]"
	p.Y.Label.Text = "Power [W]"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	series := []struct {
		label  string
		color  color.RGBA
		dashes []vg.Length
		value  func(model.PowerFlowRecord) float64
	}{
		{"Solar generation", colorSolar, nil, func(r model.PowerFlowRecord) float64 { return r.SolarW }},
		{"Avionics EOL load", colorAvionics, dashed(), func(r model.PowerFlowRecord) float64 { return r.AvionicsW }},
		{"Battery charging", colorCharge, nil, func(r model.PowerFlowRecord) float64 { return r.BatteryChargingW }},
		{"Shunt dissipation", colorShunt, dashed(), func(r model.PowerFlowRecord) float64 { return r.ShuntW }},
	}
	for _, s := range series {
		pts := make(plotter.XYs, len(ps.Steps))
		for i, r := range ps.Steps {
			pts[i] = plotter.XY{X: r.TimeH * 60, Y: s.value(r)}
		}
		line, err := newLine(pts, s.color, s.dashes)
		if err != nil {
			return err
		}
		p.Add(line)
		p.Legend.Add(s.label, line)
	}

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

func saveEnergyPlot(ps model.PowerFlowSeries, path string) error {
	p := plot.New()
	p.Title.Text = "Battery Energy vs Time"
	p.X.Label.Text = "Time [min]"
	p.Y.Label.Text = "Energy [Wh]"
	p.Y.Min, p.Y.Max = 0, ps.CapacityWh*1.12
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(ps.Steps))
	for i, r := range ps.Steps {
		pts[i] = plotter.XY{X: r.TimeH * 60, Y: r.BatteryEnergyWh}
	}
	line, err := newLine(pts, colorEnergy, nil)
	if err != nil {
		return err
	}
	p.Add(line)
	p.Legend.Add("Stored energy", line)

	end := ps.DurationH * 60
	if err := addRefLine(p, end, ps.CapacityWh, colorLimit, fmt.Sprintf("Capacity (%.0f Wh)", ps.CapacityWh)); err != nil {
		return err
	}
	if err := addRefLine(p, end, ps.Steps[0].BatteryEnergyWh, colorRef, fmt.Sprintf("Initial energy (%.0f Wh)", ps.Steps[0].BatteryEnergyWh)); err != nil {
		return err
	}

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

func saveSoCPlot(ps model.PowerFlowSeries, path string) error {
	p := plot.New()
	p.Title.Text = "Battery SoC vs Time"
	p.X.Label.Text = "Time [min]"
	p.Y.Label.Text = "State of Charge [%]"
	p.Y.Min, p.Y.Max = 0, 112
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(ps.Steps))
	for i, r := range ps.Steps {
		pts[i] = plotter.XY{X: r.TimeH * 60, Y: r.BatterySoC * 100}
	}
	line, err := newLine(pts, colorSoC, nil)
	if err != nil {
		return err
	}
	p.Add(line)
	p.Legend.Add("State of Charge", line)

	if err := addRefLine(p, ps.DurationH*60, 100, colorLimit, "100% SoC limit"); err != nil {
		return err
	}

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

func newLine(pts plotter.XYs, c color.RGBA, dashes []vg.Length) (*plotter.Line, error) {
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = c
	line.Width = vg.Points(1.5)
	line.Dashes = dashes
	return line, nil
}

// addRefLine draws a horizontal reference across [0, endMin].
func addRefLine(p *plot.Plot, endMin, y float64, c color.RGBA, label string) error {
	line, err := plotter.NewLine(plotter.XYs{{X: 0, Y: y}, {X: endMin, Y: y}})
	if err != nil {
		return err
	}
	line.Color = c
	line.Width = vg.Points(1)
	line.Dashes = dashed()
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}

func dashed() []vg.Length {
	return []vg.Length{vg.Points(4), vg.Points(2)}
}
