package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chetan0021/spacecraft-eps-power-budget/core/model"
)

var referenceBuses = []model.BusLoad{
	{Name: "28V", VoltageV: 28.0, CurrentA: 1.2},
	{Name: "12V", VoltageV: 12.0, CurrentA: 0.8},
	{Name: "5V", VoltageV: 5.0, CurrentA: 2.5},
	{Name: "3V3", VoltageV: 3.3, CurrentA: 1.5},
}

func TestNominalPower(t *testing.T) {
	res := NominalPower(referenceBuses)
	assert.InDeltaSlice(t, []float64{33.6, 9.6, 12.5, 4.95}, res.PerBusW, 1e-12)
	assert.InDelta(t, 60.65, res.TotalW, 1e-12)

	empty := NominalPower(nil)
	assert.Empty(t, empty.PerBusW)
	assert.Zero(t, empty.TotalW)
}

func TestEOLPower(t *testing.T) {
	assert.InDelta(t, 75.8125, EOLPower(60.65, 0.25), 1e-12)
	assert.Equal(t, 60.65, EOLPower(60.65, 0))
}

func TestPowerMargin(t *testing.T) {
	m := PowerMargin(150.0, 60.65)
	assert.InDelta(t, 89.35, m.MarginW, 1e-12)
	assert.True(t, m.Compliant)

	over := PowerMargin(150.0, 151.0)
	assert.InDelta(t, -1.0, over.MarginW, 1e-12)
	assert.False(t, over.Compliant)

	exact := PowerMargin(150.0, 150.0)
	assert.Zero(t, exact.MarginW)
	assert.True(t, exact.Compliant)
}

func TestExcessSolarPower(t *testing.T) {
	assert.InDelta(t, 104.1875, ExcessSolarPower(180.0, 75.8125), 1e-12)
	assert.Less(t, ExcessSolarPower(50.0, 75.8125), 0.0)
}

func TestBatteryRemainingEnergy(t *testing.T) {
	e, err := BatteryRemainingEnergy(100.0, 0.70)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, e, 1e-12)

	for _, soc := range []float64{-0.1, 1.1} {
		_, err := BatteryRemainingEnergy(100.0, soc)
		require.ErrorIs(t, err, model.ErrInvalidArgument, "soc %v", soc)
	}
}

func TestChargingTime(t *testing.T) {
	tc, err := ChargingTime(30.0, 104.19, 0.9)
	require.NoError(t, err)
	assert.InDelta(t, 30.0/(0.9*104.19), tc, 1e-12)

	_, err = ChargingTime(30.0, 0, 0.9)
	require.ErrorIs(t, err, model.ErrInvalidArgument)

	_, err = ChargingTime(30.0, -5, 0.9)
	require.ErrorIs(t, err, model.ErrInvalidArgument)

	for _, eta := range []float64{0, -0.5, 1.5} {
		_, err = ChargingTime(30.0, 104.19, eta)
		require.ErrorIs(t, err, model.ErrInvalidArgument, "eta %v", eta)
	}
}
