// Package budget implements the static EPS power balance equations: nominal
// bus loads, end-of-life degradation, margin against the EPS capability, the
// solar excess available for routing and the analytical battery charge time.
// Every function is a pure mapping from scalar inputs; there is no state and
// no simulation loop here.
package budget

import (
	"fmt"

	"github.com/chetan0021/spacecraft-eps-power-budget/core/model"
)

// NominalPower computes per-bus powers P_i = V_i * I_i and their total.
func NominalPower(buses []model.BusLoad) model.NominalPowerResult {
	perBus := make([]float64, len(buses))
	var total float64
	for i, b := range buses {
		perBus[i] = b.Power()
		total += perBus[i]
	}
	return model.NominalPowerResult{PerBusW: perBus, TotalW: total}
}

// EOLPower applies the end-of-life degradation factor to a nominal load:
// P_EOL = P_nominal * (1 + alpha).
func EOLPower(nominalW, degradationFactor float64) float64 {
	return nominalW * (1.0 + degradationFactor)
}

// PowerMargin computes the headroom of the EPS capability over a load and
// whether the load is compliant (margin >= 0).
func PowerMargin(maxPowerW, loadW float64) model.PowerMargin {
	margin := maxPowerW - loadW
	return model.PowerMargin{MarginW: margin, Compliant: margin >= 0}
}

// ExcessSolarPower is the surplus left after the avionics load is served:
// P_excess = P_solar - P_EOL. Negative means a deficit (eclipse or array
// underperformance).
func ExcessSolarPower(solarW, eolW float64) float64 {
	return solarW - eolW
}

// BatteryRemainingEnergy returns the storage headroom E * (1 - SoC) in Wh.
func BatteryRemainingEnergy(capacityWh, soc float64) (float64, error) {
	if soc < 0 || soc > 1 {
		return 0, fmt.Errorf("%w: state of charge must be in [0, 1], got %v", model.ErrInvalidArgument, soc)
	}
	return capacityWh * (1.0 - soc), nil
}

// ChargingTime returns the analytical time in hours to absorb remainingWh at
// the given excess power and charging efficiency: t = E / (eta * P).
func ChargingTime(remainingWh, excessW, efficiency float64) (float64, error) {
	if efficiency <= 0 || efficiency > 1 {
		return 0, fmt.Errorf("%w: charging efficiency must be in (0, 1], got %v", model.ErrInvalidArgument, efficiency)
	}
	if excessW <= 0 {
		return 0, fmt.Errorf("%w: excess power must be positive for charging, got %v", model.ErrInvalidArgument, excessW)
	}
	return remainingWh / (efficiency * excessW), nil
}
