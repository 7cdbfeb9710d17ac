package model

// BusLoad describes one regulated power bus and the load current it carries.
type BusLoad struct {
	Name     string  // e.g. "28V"
	VoltageV float64 // regulated bus voltage, Volts
	CurrentA float64 // load current drawn from the bus, Amperes
}

// Power returns the electrical power drawn from the bus in Watts.
func (b BusLoad) Power() float64 {
	return b.VoltageV * b.CurrentA
}

// NominalPowerResult holds per-bus powers and their sum, in input order.
type NominalPowerResult struct {
	PerBusW []float64
	TotalW  float64
}

// PowerMargin is the headroom between an EPS capability and a system load.
// A negative margin means the load exceeds what the EPS can supply.
type PowerMargin struct {
	MarginW   float64
	Compliant bool
}
