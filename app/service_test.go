package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chetan0021/spacecraft-eps-power-budget/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Plot.Enabled = false
	return cfg
}

func TestServiceBudget(t *testing.T) {
	var out bytes.Buffer
	svc, err := NewWithOutput(testConfig(), &out)
	require.NoError(t, err)
	assert.NotEmpty(t, svc.RunID())

	rep, err := svc.Budget()
	require.NoError(t, err)

	assert.InDelta(t, 60.65, rep.NominalW, 1e-9)
	assert.InDelta(t, 75.8125, rep.EOLW, 1e-9)
	assert.InDelta(t, 89.35, rep.MarginNominalW, 1e-9)
	assert.True(t, rep.NominalCompliant)
	assert.InDelta(t, 74.1875, rep.MarginEOLW, 1e-9)
	assert.True(t, rep.EOLCompliant)
	assert.InDelta(t, 104.1875, rep.ExcessW, 1e-9)
	assert.InDelta(t, 30.0, rep.RemainingWh, 1e-9)
	assert.Greater(t, rep.ChargeTimeH, 0.0)

	assert.Contains(t, out.String(), "EPS POWER BUDGET")
	assert.Contains(t, out.String(), "compliant")
}

func TestServiceBudget_NoSurplus(t *testing.T) {
	cfg := testConfig()
	cfg.Solar.ArrayPowerW = 10

	var out bytes.Buffer
	svc, err := NewWithOutput(cfg, &out)
	require.NoError(t, err)

	rep, err := svc.Budget()
	require.NoError(t, err)
	assert.Less(t, rep.ExcessW, 0.0)
	assert.Equal(t, -1.0, rep.ChargeTimeH)
	assert.Contains(t, out.String(), "no surplus")
}

func TestServiceCharge(t *testing.T) {
	var out bytes.Buffer
	svc, err := NewWithOutput(testConfig(), &out)
	require.NoError(t, err)

	require.NoError(t, svc.Charge())

	s := out.String()
	assert.Contains(t, s, "EPS POWER BUDGET")
	assert.Contains(t, s, "EPS POWER ROUTING")
	assert.Contains(t, s, "BATTERY CHARGE SIMULATION")
	assert.Contains(t, s, "Battery reached full at")
}

func TestServicePowerFlow(t *testing.T) {
	var out bytes.Buffer
	svc, err := NewWithOutput(testConfig(), &out)
	require.NoError(t, err)

	require.NoError(t, svc.PowerFlow())

	s := out.String()
	assert.Contains(t, s, "EPS POWER FLOW SIMULATION")
	assert.Contains(t, s, "Final shunt dissipation")
	assert.Contains(t, s, "Battery reached full at")
}

func TestServiceChargeWithPlots(t *testing.T) {
	cfg := testConfig()
	cfg.Plot.Enabled = true
	cfg.Plot.OutputDir = t.TempDir()

	var out bytes.Buffer
	svc, err := NewWithOutput(cfg, &out)
	require.NoError(t, err)
	require.NoError(t, svc.Charge())
}

func TestServiceRejectsInvalidBattery(t *testing.T) {
	cfg := testConfig()
	cfg.Battery.InitialSoC = 1.5

	var out bytes.Buffer
	_, err := NewWithOutput(cfg, &out)
	assert.Error(t, err)
}

// Close must be safe regardless of which sinks were assembled.
func TestServiceClose(t *testing.T) {
	var out bytes.Buffer
	svc, err := NewWithOutput(testConfig(), &out)
	require.NoError(t, err)
	defer svc.Close()

	require.NoError(t, svc.Charge())
}
