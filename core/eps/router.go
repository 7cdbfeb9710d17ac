// Package eps implements the time-domain EPS simulation core: the rule-based
// power router, the forward-Euler battery integrator and the coupled
// power-flow simulator built from the two.
package eps

import (
	"fmt"

	"github.com/chetan0021/spacecraft-eps-power-budget/core/model"
)

// PowerRouter decides how positive excess power is distributed across the
// four EPS sinks, in strict priority order:
//
//  1. battery charging, curtailed once SoC reaches the configured ceiling
//  2. payload power sharing (reserved, no demand model yet)
//  3. supercapacitor buffering (reserved, no model yet)
//  4. shunt dissipation, absorbing whatever remains
//
// Route reads no mutable state: identical inputs always produce identical
// allocations, and concurrent callers need no synchronization.
type PowerRouter struct {
	socUpperLimit float64
}

// NewPowerRouter builds a router that curtails battery charging once the
// state of charge reaches socUpperLimit. The limit must be in (0, 1];
// 1.0 charges to full, 0.95 stops at 95% to preserve cell health.
func NewPowerRouter(socUpperLimit float64) (*PowerRouter, error) {
	if socUpperLimit <= 0 || socUpperLimit > 1 {
		return nil, fmt.Errorf("%w: soc upper limit must be in (0, 1], got %v", model.ErrInvalidConfiguration, socUpperLimit)
	}
	return &PowerRouter{socUpperLimit: socUpperLimit}, nil
}

// SoCUpperLimit returns the configured charge ceiling.
func (r *PowerRouter) SoCUpperLimit() float64 {
	return r.socUpperLimit
}

// Route allocates excess power across the EPS sinks for one instant.
//
// A zero or negative excess is a deficit (eclipse) instant: no routing
// happens and all sinks receive 0 W. Discharge handling belongs to the
// battery integrator or an outer caller, not to the router.
//
// When charging is allowed the battery claims the entire surplus; it is not
// capped by per-step headroom here. Callers needing energy-exact results
// over a timestep cap the allocation with BatteryIntegrator.StepWithHeadroomCap
// and push the unabsorbed remainder back to shunt (see PowerFlowSimulator).
func (r *PowerRouter) Route(excessPowerW, currentSoC float64) (model.RoutingAllocation, error) {
	if currentSoC < 0 || currentSoC > 1 {
		return model.RoutingAllocation{}, fmt.Errorf("%w: current SoC must be in [0, 1], got %v", model.ErrInvalidArgument, currentSoC)
	}

	full := currentSoC >= r.socUpperLimit
	if excessPowerW <= 0 {
		return model.RoutingAllocation{
			ExcessPowerW: excessPowerW,
			BatteryFull:  full,
		}, nil
	}

	remaining := excessPowerW

	// Priority 1: battery charging until the SoC ceiling.
	var batteryCharge float64
	if !full {
		batteryCharge = remaining
	}
	remaining -= batteryCharge

	// Priorities 2 and 3: reserved sinks, no demand models exist.
	const payload = 0.0
	const supercap = 0.0
	remaining -= payload + supercap

	// Priority 4: shunt absorbs everything left over as heat.
	shunt := remaining

	return model.RoutingAllocation{
		ExcessPowerW:   excessPowerW,
		BatteryChargeW: batteryCharge,
		PayloadW:       payload,
		SupercapW:      supercap,
		ShuntW:         shunt,
		BatteryFull:    full,
	}, nil
}
