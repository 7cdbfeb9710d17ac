// Package config loads the engineering constants and execution parameters of
// the power budget tool from a YAML or JSON file, with optional environment
// overrides. Constants are read once before any simulation runs; nothing in
// here is mutated afterwards.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/chetan0021/spacecraft-eps-power-budget/core/metrics"
	"github.com/chetan0021/spacecraft-eps-power-budget/core/model"
)

type Config struct {
	Buses      []BusConfig      `json:"buses"`
	EPS        EPSConfig        `json:"eps"`
	Solar      SolarConfig      `json:"solar"`
	Battery    BatteryConfig    `json:"battery"`
	Simulation SimulationConfig `json:"simulation"`
	Plot       PlotConfig       `json:"plot"`
	Logging    LoggingConfig    `json:"logging"`
	Metrics    metrics.Config   `json:"metrics"`
}

// Load reads the configuration file, applies EPS_-prefixed environment
// overrides (EPS_BATTERY__CAPACITY_WH=120 overrides battery.capacity_wh),
// fills defaults and validates every section.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// The provider delimiter must be the koanf delimiter, not the "__" of
	// the raw variable names: the callback already returns dotted keys, and
	// those have to unflatten into the nested map the file produced or the
	// override lands on a dead flat key.
	if err := k.Load(env.Provider("EPS_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "eps_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	// Zero is a valid value for these three, so an explicit zero in the file
	// or environment must survive defaulting.
	if k.Exists("eps.degradation_factor") {
		cfg.EPS.DegradationFactor = k.Float64("eps.degradation_factor")
	}
	if k.Exists("solar.array_power_w") {
		cfg.Solar.ArrayPowerW = k.Float64("solar.array_power_w")
	}
	if k.Exists("battery.initial_soc") {
		cfg.Battery.InitialSoC = k.Float64("battery.initial_soc")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the reference configuration from the power budget
// analysis: four regulated buses, a 150 W EPS, a 180 W array and a 100 Wh
// battery at 70% SoC with 90% charging efficiency.
func Default() *Config {
	cfg := &Config{
		Buses: []BusConfig{
			{Name: "28V", VoltageV: 28.0, CurrentA: 1.2},
			{Name: "12V", VoltageV: 12.0, CurrentA: 0.8},
			{Name: "5V", VoltageV: 5.0, CurrentA: 2.5},
			{Name: "3V3", VoltageV: 3.3, CurrentA: 1.5},
		},
	}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills every unset section with the reference values.
func (c *Config) SetDefaults() {
	c.EPS.SetDefaults()
	c.Solar.SetDefaults()
	c.Battery.SetDefaults()
	c.Simulation.SetDefaults()
	c.Plot.SetDefaults()
	c.Logging.SetDefaults()
	c.Metrics.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if len(c.Buses) == 0 {
		return fmt.Errorf("at least one power bus is required")
	}
	for i, b := range c.Buses {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("bus %d: %w", i, err)
		}
	}
	if err := c.EPS.Validate(); err != nil {
		return err
	}
	if err := c.Solar.Validate(); err != nil {
		return err
	}
	if err := c.Battery.Validate(); err != nil {
		return err
	}
	if err := c.Simulation.Validate(); err != nil {
		return err
	}
	if err := c.Plot.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// BusLoads converts the configured buses into domain records.
func (c *Config) BusLoads() []model.BusLoad {
	buses := make([]model.BusLoad, len(c.Buses))
	for i, b := range c.Buses {
		buses[i] = model.BusLoad{Name: b.Name, VoltageV: b.VoltageV, CurrentA: b.CurrentA}
	}
	return buses
}

// BusConfig describes one regulated bus entry.
type BusConfig struct {
	Name     string  `json:"name"`
	VoltageV float64 `json:"voltage_v"`
	CurrentA float64 `json:"current_a"`
}

// Validate checks the bus entry.
func (b BusConfig) Validate() error {
	if b.VoltageV <= 0 {
		return fmt.Errorf("bus voltage must be positive, got %v", b.VoltageV)
	}
	if b.CurrentA < 0 {
		return fmt.Errorf("bus current must not be negative, got %v", b.CurrentA)
	}
	return nil
}

// EPSConfig holds the EPS capability limits.
type EPSConfig struct {
	// MaxPowerW is the maximum continuous EPS output power.
	MaxPowerW float64 `json:"max_power_w"`
	// DegradationFactor is the fractional end-of-life load increase (alpha).
	DegradationFactor float64 `json:"degradation_factor"`
}

func (c *EPSConfig) SetDefaults() {
	if c.MaxPowerW == 0 {
		c.MaxPowerW = 150.0
	}
	if c.DegradationFactor == 0 {
		c.DegradationFactor = 0.25
	}
}

func (c EPSConfig) Validate() error {
	if c.MaxPowerW <= 0 {
		return fmt.Errorf("eps max power must be positive, got %v", c.MaxPowerW)
	}
	if c.DegradationFactor < 0 {
		return fmt.Errorf("degradation factor must not be negative, got %v", c.DegradationFactor)
	}
	return nil
}

// SolarConfig holds the solar array parameters.
type SolarConfig struct {
	ArrayPowerW float64 `json:"array_power_w"`
}

func (c *SolarConfig) SetDefaults() {
	if c.ArrayPowerW == 0 {
		c.ArrayPowerW = 180.0
	}
}

func (c SolarConfig) Validate() error {
	if c.ArrayPowerW < 0 {
		return fmt.Errorf("solar array power must not be negative, got %v", c.ArrayPowerW)
	}
	return nil
}

// BatteryConfig holds the battery pack parameters.
type BatteryConfig struct {
	CapacityWh         float64 `json:"capacity_wh"`
	InitialSoC         float64 `json:"initial_soc"`
	ChargingEfficiency float64 `json:"charging_efficiency"`
	// SoCUpperLimit is the charge ceiling used by the router; 1.0 charges
	// to full.
	SoCUpperLimit float64 `json:"soc_upper_limit"`
}

func (c *BatteryConfig) SetDefaults() {
	if c.CapacityWh == 0 {
		c.CapacityWh = 100.0
	}
	if c.InitialSoC == 0 {
		c.InitialSoC = 0.70
	}
	if c.ChargingEfficiency == 0 {
		c.ChargingEfficiency = 0.90
	}
	if c.SoCUpperLimit == 0 {
		c.SoCUpperLimit = 1.0
	}
}

// Validate performs file-level sanity checks. The core constructors enforce
// the exact domain ranges again and are the authority on them.
func (c BatteryConfig) Validate() error {
	if c.CapacityWh <= 0 {
		return fmt.Errorf("battery capacity must be positive, got %v", c.CapacityWh)
	}
	if c.InitialSoC < 0 || c.InitialSoC > 1 {
		return fmt.Errorf("initial SoC must be in [0, 1], got %v", c.InitialSoC)
	}
	if c.ChargingEfficiency <= 0 || c.ChargingEfficiency > 1 {
		return fmt.Errorf("charging efficiency must be in (0, 1], got %v", c.ChargingEfficiency)
	}
	if c.SoCUpperLimit <= 0 || c.SoCUpperLimit > 1 {
		return fmt.Errorf("soc upper limit must be in (0, 1], got %v", c.SoCUpperLimit)
	}
	return nil
}

// SimulationConfig holds the integration grid.
type SimulationConfig struct {
	TimestepH float64 `json:"timestep_h"`
	DurationH float64 `json:"duration_h"`
}

func (c *SimulationConfig) SetDefaults() {
	if c.TimestepH == 0 {
		c.TimestepH = 1.0 / 60.0
	}
	if c.DurationH == 0 {
		c.DurationH = 0.5
	}
}

func (c SimulationConfig) Validate() error {
	if c.TimestepH <= 0 {
		return fmt.Errorf("simulation timestep must be positive, got %v", c.TimestepH)
	}
	if c.DurationH <= 0 {
		return fmt.Errorf("simulation duration must be positive, got %v", c.DurationH)
	}
	if c.TimestepH > c.DurationH {
		return fmt.Errorf("simulation timestep %v exceeds duration %v", c.TimestepH, c.DurationH)
	}
	return nil
}

// PlotConfig controls PNG chart rendering.
type PlotConfig struct {
	Enabled   bool   `json:"enabled"`
	OutputDir string `json:"output_dir"`
}

func (c *PlotConfig) SetDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
}

func (c PlotConfig) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("plot output directory is required")
	}
	return nil
}

// LoggingConfig controls log verbosity and output format.
type LoggingConfig struct {
	// Level is the minimum severity emitted: debug, info, warn or error.
	Level string `json:"level"`
	// Console switches to human-readable console output instead of JSON.
	Console bool `json:"console"`
}

func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

func (c LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("unknown log level %q", c.Level)
}
