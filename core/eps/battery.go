package eps

import (
	"fmt"
	"math"

	"github.com/chetan0021/spacecraft-eps-power-budget/core/model"
)

// BatteryIntegrator evolves stored battery energy over a fixed time grid by
// forward Euler integration of
//
//	dE/dt = eta * P_drive
//
// with hard saturation at both boundaries: energy never leaves
// [0, capacity]. Both bounds are reflecting clamps, not terminal states;
// later steps can move energy away from either one.
//
// Capacity and efficiency are fixed at construction. Each Simulate call owns
// a local energy accumulator, so distinct calls never share state.
type BatteryIntegrator struct {
	capacityWh      float64
	efficiency      float64
	initialEnergyWh float64
}

// NewBatteryIntegrator validates the battery parameters. Capacity must be
// positive, the initial SoC within [0, 1] and the charging efficiency within
// (0, 1].
func NewBatteryIntegrator(capacityWh, initialSoC, efficiency float64) (*BatteryIntegrator, error) {
	if capacityWh <= 0 {
		return nil, fmt.Errorf("%w: battery capacity must be positive, got %v", model.ErrInvalidConfiguration, capacityWh)
	}
	if initialSoC < 0 || initialSoC > 1 {
		return nil, fmt.Errorf("%w: initial SoC must be in [0, 1], got %v", model.ErrInvalidConfiguration, initialSoC)
	}
	if efficiency <= 0 || efficiency > 1 {
		return nil, fmt.Errorf("%w: charging efficiency must be in (0, 1], got %v", model.ErrInvalidConfiguration, efficiency)
	}
	return &BatteryIntegrator{
		capacityWh:      capacityWh,
		efficiency:      efficiency,
		initialEnergyWh: initialSoC * capacityWh,
	}, nil
}

// CapacityWh returns the configured battery capacity.
func (b *BatteryIntegrator) CapacityWh() float64 { return b.capacityWh }

// Efficiency returns the configured charging efficiency.
func (b *BatteryIntegrator) Efficiency() float64 { return b.efficiency }

// InitialEnergyWh returns the stored energy corresponding to the initial SoC.
func (b *BatteryIntegrator) InitialEnergyWh() float64 { return b.initialEnergyWh }

// Simulate integrates the battery under a constant drive power over
// [0, durationH]. Positive power charges, negative discharges. The run
// records floor(duration/timestep)+1 snapshots, the first being the initial
// condition at t=0 with a zero delta.
//
// Per step:
//
//	delta = eta * P * dt
//	E[n+1] = clamp(E[n] + delta, 0, capacity)
//
// The recorded delta is the applied, post-clamp change, so it drops to zero
// once the battery saturates at either bound. SoC is always recomputed from
// the clamped energy. Snapshot times are rounded to 10 decimal places to
// keep accumulated float drift out of recorded labels; the rounding never
// feeds back into the energy recurrence.
func (b *BatteryIntegrator) Simulate(drivePowerW, timestepH, durationH float64) (model.BatteryTimeSeries, error) {
	if err := validateTimeGrid(timestepH, durationH); err != nil {
		return model.BatteryTimeSeries{}, err
	}

	steps := int(durationH / timestepH)
	ts := model.BatteryTimeSeries{
		Steps:       make([]model.BatteryState, 0, steps+1),
		TimestepH:   timestepH,
		DurationH:   durationH,
		CapacityWh:  b.capacityWh,
		Efficiency:  b.efficiency,
		DrivePowerW: drivePowerW,
	}

	energy := b.initialEnergyWh
	timeH := 0.0
	ts.Steps = append(ts.Steps, model.BatteryState{
		TimeH:    0,
		EnergyWh: energy,
		SoC:      energy / b.capacityWh,
	})

	for n := 0; n < steps; n++ {
		delta := b.efficiency * drivePowerW * timestepH
		newEnergy := b.clamp(energy + delta)
		timeH += timestepH

		ts.Steps = append(ts.Steps, model.BatteryState{
			TimeH:    roundTime(timeH),
			EnergyWh: newEnergy,
			SoC:      newEnergy / b.capacityWh,
			DeltaWh:  newEnergy - energy,
		})
		energy = newEnergy
	}

	return ts, nil
}

// StepWithHeadroomCap advances one charging step with the requested power
// capped so that stored energy lands exactly on capacity instead of
// overshooting. It returns the power actually absorbed and the new energy.
//
// This is the bridge between the router's "route everything to the battery"
// decision and energy-exact integration: the caller re-routes the difference
// between requested and actual power to shunt dissipation.
func (b *BatteryIntegrator) StepWithHeadroomCap(currentEnergyWh, chargePowerW, timestepH float64) (actualChargeW, newEnergyWh float64) {
	if timestepH <= 0 {
		return 0, b.clamp(currentEnergyWh)
	}
	headroom := b.capacityWh - currentEnergyWh
	maxChargeW := headroom / (b.efficiency * timestepH)
	if chargePowerW >= maxChargeW {
		// Absorbing exactly the headroom fills the battery. Assigning
		// capacity directly keeps rounding error out of full detection.
		return maxChargeW, b.capacityWh
	}
	delta := b.efficiency * chargePowerW * timestepH
	return chargePowerW, b.clamp(currentEnergyWh + delta)
}

func (b *BatteryIntegrator) clamp(energyWh float64) float64 {
	return math.Max(0, math.Min(b.capacityWh, energyWh))
}

// validateTimeGrid checks the integration grid shared by Simulate and the
// coupled power-flow run. Each violation gets its own message so the caller
// knows which bound failed.
func validateTimeGrid(timestepH, durationH float64) error {
	if timestepH <= 0 {
		return fmt.Errorf("%w: timestep must be positive, got %v", model.ErrInvalidArgument, timestepH)
	}
	if durationH <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %v", model.ErrInvalidArgument, durationH)
	}
	if timestepH > durationH {
		return fmt.Errorf("%w: timestep %v exceeds duration %v", model.ErrInvalidArgument, timestepH, durationH)
	}
	return nil
}

// roundTime rounds a snapshot time label to 10 decimal places.
func roundTime(t float64) float64 {
	return math.Round(t*1e10) / 1e10
}
