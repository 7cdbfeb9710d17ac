package eps

import (
	"github.com/chetan0021/spacecraft-eps-power-budget/core/logger"
	"github.com/chetan0021/spacecraft-eps-power-budget/core/model"
)

// PowerFlowSimulator runs the coupled EPS power-flow simulation: at every
// timestep the router allocates the solar surplus, the battery absorbs as
// much of its share as per-step headroom allows, and the unabsorbed
// remainder is reconciled back into shunt dissipation.
//
// This deliberately diverges from PowerRouter.Route used standalone: Route
// hands the battery the whole surplus uncapped, while the coupled step caps
// it by headroom so the recorded energy balance stays exact. The two are
// kept as distinct operations; unifying them would change the conserved
// shunt totals of this simulation.
type PowerFlowSimulator struct {
	router  *PowerRouter
	battery *BatteryIntegrator
	log     logger.Logger
}

// NewPowerFlowSimulator composes a router and a battery integrator. A nil
// logger falls back to a no-op logger.
func NewPowerFlowSimulator(router *PowerRouter, battery *BatteryIntegrator, log logger.Logger) *PowerFlowSimulator {
	if log == nil {
		log = logger.Nop{}
	}
	return &PowerFlowSimulator{router: router, battery: battery, log: log}
}

// Run simulates the full power flow under constant solar generation and
// avionics load over [0, durationH]. The first record is the initial
// condition with zero charging and shunt. Deficit steps (solar below the
// load) route nothing; the battery holds its energy.
func (s *PowerFlowSimulator) Run(solarW, avionicsW, timestepH, durationH float64) (model.PowerFlowSeries, error) {
	if err := validateTimeGrid(timestepH, durationH); err != nil {
		return model.PowerFlowSeries{}, err
	}

	steps := int(durationH / timestepH)
	ps := model.PowerFlowSeries{
		Steps:      make([]model.PowerFlowRecord, 0, steps+1),
		TimestepH:  timestepH,
		DurationH:  durationH,
		CapacityWh: s.battery.CapacityWh(),
		Efficiency: s.battery.Efficiency(),
	}

	energy := s.battery.InitialEnergyWh()
	timeH := 0.0
	ps.Steps = append(ps.Steps, model.PowerFlowRecord{
		TimeH:           0,
		SolarW:          solarW,
		AvionicsW:       avionicsW,
		BatteryEnergyWh: energy,
		BatterySoC:      energy / s.battery.CapacityWh(),
	})

	s.log.Debugw("power flow run started", map[string]any{
		"solar_w":    solarW,
		"avionics_w": avionicsW,
		"timestep_h": timestepH,
		"duration_h": durationH,
		"steps":      steps,
	})

	excess := solarW - avionicsW
	for n := 0; n < steps; n++ {
		soc := energy / s.battery.CapacityWh()
		alloc, err := s.router.Route(excess, soc)
		if err != nil {
			return model.PowerFlowSeries{}, err
		}

		actual, newEnergy := s.battery.StepWithHeadroomCap(energy, alloc.BatteryChargeW, timestepH)
		// Power the battery could not absorb this step goes to shunt.
		shunt := alloc.ShuntW + (alloc.BatteryChargeW - actual)
		timeH += timestepH
		energy = newEnergy

		ps.Steps = append(ps.Steps, model.PowerFlowRecord{
			TimeH:            roundTime(timeH),
			SolarW:           solarW,
			AvionicsW:        avionicsW,
			BatteryChargingW: actual,
			ShuntW:           shunt,
			BatteryEnergyWh:  energy,
			BatterySoC:       energy / s.battery.CapacityWh(),
		})
	}

	final := ps.Final()
	s.log.Infof("power flow run finished: final SoC %.4f, final shunt %.3f W", final.BatterySoC, final.ShuntW)
	return ps, nil
}
