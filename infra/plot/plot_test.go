package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chetan0021/spacecraft-eps-power-budget/core/model"
)

func chargeSeries() model.BatteryTimeSeries {
	return model.BatteryTimeSeries{
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
}

func powerFlowSeries() model.PowerFlowSeries {
	return model.PowerFlowSeries{
		Steps: []model.PowerFlowRecord{
			{TimeH: 0, SolarW: 180, AvionicsW: 75.8, BatteryEnergyWh: 70, BatterySoC: 0.7},
			{TimeH: 0.25, SolarW: 180, AvionicsW: 75.8, BatteryChargingW: 104.2, BatteryEnergyWh: 93.4, BatterySoC: 0.934},
			{TimeH: 0.5, SolarW: 180, AvionicsW: 75.8, BatteryChargingW: 29.3, ShuntW: 74.9, BatteryEnergyWh: 100, BatterySoC: 1},
		},
		TimestepH:  0.25,
		DurationH:  0.5,
		CapacityWh: 100,
		Efficiency: 0.9,
	}
}

func TestSaveChargePlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soc.png")
	require.NoError(t, SaveChargePlot(chargeSeries(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSavePowerFlowPlots(t *testing.T) {
	dir := t.TempDir()
	paths, err := SavePowerFlowPlots(powerFlowSeries(), dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Greater(t, info.Size(), int64(0), p)
	}
}
