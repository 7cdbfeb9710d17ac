package model

// PowerFlowRecord captures the full EPS power flow at one timestep of the
// coupled simulation: generation, load, the routing outcome and the
// resulting battery state. Power in Watts, energy in Wh, time in hours.
type PowerFlowRecord struct {
	TimeH            float64
	SolarW           float64
	AvionicsW        float64
	BatteryChargingW float64
	ShuntW           float64
	BatteryEnergyWh  float64
	BatterySoC       float64
}

// PowerFlowSeries is the trajectory of a coupled power-flow run plus its
// fixed parameters. Same shape invariant as BatteryTimeSeries: one record
// per step including t=0.
type PowerFlowSeries struct {
	Steps      []PowerFlowRecord
	TimestepH  float64
	DurationH  float64
	CapacityWh float64
	Efficiency float64
}

// Final returns the last recorded step.
func (ps PowerFlowSeries) Final() PowerFlowRecord {
	return ps.Steps[len(ps.Steps)-1]
}

// FirstFullIndex returns the index of the first step at which the battery
// reached capacity, or -1 if it never filled.
func (ps PowerFlowSeries) FirstFullIndex() int {
	for i, s := range ps.Steps {
		if s.BatteryEnergyWh >= ps.CapacityWh {
			return i
		}
	}
	return -1
}
