package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chetan0021/spacecraft-eps-power-budget/core/metrics"
	"github.com/chetan0021/spacecraft-eps-power-budget/core/model"
)

func TestBudgetReport(t *testing.T) {
	var out bytes.Buffer
	w := New(&out)

	buses := []model.BusLoad{
		{Name: "28V", VoltageV: 28.0, CurrentA: 1.2},
		{Name: "12V", VoltageV: 12.0, CurrentA: 0.8},
	}
	w.Budget(buses, metrics.BudgetReport{
		PerBusW:          []float64{33.6, 9.6},
		NominalW:         43.2,
		EOLW:             54.0,
		MarginNominalW:   106.8,
		NominalCompliant: true,
		MarginEOLW:       96.0,
		EOLCompliant:     true,
		SolarW:           180,
		ExcessW:          126,
		RemainingWh:      30,
		ChargeTimeH:      0.32,
	})

	s := out.String()
	assert.Contains(t, s, "EPS POWER BUDGET")
	assert.Contains(t, s, "28V")
	assert.Contains(t, s, "43.200 W")
	assert.Contains(t, s, "compliant")
	assert.Contains(t, s, "19.2 min")
}

func TestBudgetReport_Overload(t *testing.T) {
	var out bytes.Buffer
	w := New(&out)

	w.Budget(nil, metrics.BudgetReport{
		MarginEOLW:   -5,
		EOLCompliant: false,
		ChargeTimeH:  -1,
	})

	s := out.String()
	assert.Contains(t, s, "OVERLOAD")
	assert.Contains(t, s, "no surplus")
}

func TestRoutingReport(t *testing.T) {
	var out bytes.Buffer
	w := New(&out)

	w.Routing(model.RoutingAllocation{
		ExcessPowerW:   104.19,
		BatteryChargeW: 104.19,
	})

	s := out.String()
	assert.Contains(t, s, "EPS POWER ROUTING")
	assert.Contains(t, s, "reserved")
	assert.Contains(t, s, "Battery full               : false")
}

func TestChargeRunReport(t *testing.T) {
	var out bytes.Buffer
	w := New(&out)

	ts := model.BatteryTimeSeries{
		Steps: []model.BatteryState{
			{TimeH: 0, EnergyWh: 70, SoC: 0.7},
			{TimeH: 0.25, EnergyWh: 85, SoC: 0.85, DeltaWh: 15},
			{TimeH: 0.5, EnergyWh: 100, SoC: 1, DeltaWh: 15},
		},
		TimestepH:   0.25,
		DurationH:   0.5,
		CapacityWh:  100,
		Efficiency:  0.9,
		DrivePowerW: 66.67,
	}
	w.ChargeRun(ts)

	s := out.String()
	assert.Contains(t, s, "BATTERY CHARGE SIMULATION")
	assert.Contains(t, s, "70.000 Wh")
	assert.Contains(t, s, "100.000 Wh")
	assert.Contains(t, s, "Battery reached full at")
	// Mean of the two applied deltas.
	assert.Contains(t, s, "15.0000 Wh/step")
}

func TestPowerFlowReport_NeverFull(t *testing.T) {
	var out bytes.Buffer
	w := New(&out)

	ps := model.PowerFlowSeries{
		Steps: []model.PowerFlowRecord{
			{TimeH: 0, SolarW: 180, AvionicsW: 75.8, BatteryEnergyWh: 70, BatterySoC: 0.7},
			{TimeH: 0.25, SolarW: 180, AvionicsW: 75.8, BatteryChargingW: 104.2, BatteryEnergyWh: 93.4, BatterySoC: 0.934},
		},
		TimestepH:  0.25,
		DurationH:  0.25,
		CapacityWh: 100,
		Efficiency: 0.9,
	}
	w.PowerFlow(ps)

	s := out.String()
	assert.Contains(t, s, "EPS POWER FLOW SIMULATION")
	assert.Contains(t, s, "did not reach full")
	assert.True(t, strings.Contains(s, "Mean charging power"))
}
