package model

// RoutingAllocation is the outcome of one routing decision: how a quantity of
// excess power was split across the four EPS sinks. All power values are in
// Watts. Whenever ExcessPowerW is positive the four sink values sum back to
// it exactly; when it is zero or negative all sinks are zero.
//
// PayloadW and SupercapW are reserved sinks with no demand model yet. They
// are kept as explicit fields, always zero, so a future extension changes a
// value instead of the record shape.
type RoutingAllocation struct {
	ExcessPowerW   float64
	BatteryChargeW float64
	PayloadW       float64 // reserved, always 0
	SupercapW      float64 // reserved, always 0
	ShuntW         float64
	BatteryFull    bool // state of charge had reached the configured ceiling
}
