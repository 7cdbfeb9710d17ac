package model

// BatteryState is an immutable snapshot of the battery at a single timestep.
type BatteryState struct {
	TimeH    float64 // simulation time at this step, hours
	EnergyWh float64 // stored energy, always within [0, capacity]
	SoC      float64 // state of charge fraction, EnergyWh / capacity
	DeltaWh  float64 // energy change applied this step; 0 at t=0 and once saturated
}

// BatteryTimeSeries is the complete trajectory of one battery simulation run
// together with the fixed parameters that produced it. Steps always contains
// floor(DurationH/TimestepH)+1 entries, the first being the initial condition.
type BatteryTimeSeries struct {
	Steps       []BatteryState
	TimestepH   float64
	DurationH   float64
	CapacityWh  float64
	Efficiency  float64
	DrivePowerW float64
}

// Final returns the last recorded snapshot. The series is never empty: every
// successful simulation records at least the initial condition.
func (ts BatteryTimeSeries) Final() BatteryState {
	return ts.Steps[len(ts.Steps)-1]
}

// FirstFullIndex returns the index of the first snapshot at which the battery
// reached capacity, or -1 if it never filled within the run.
func (ts BatteryTimeSeries) FirstFullIndex() int {
	for i, s := range ts.Steps {
		if s.EnergyWh >= ts.CapacityWh {
			return i
		}
	}
	return -1
}
