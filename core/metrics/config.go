package metrics

// Config defines settings for metrics sinks. Both sinks are disabled by
// default; the tool then records through NopSink.
type Config struct {
	PrometheusEnabled bool `json:"prometheus_enabled"`
	// PushGatewayURL is where Prometheus metrics are pushed after a run.
	// A one-shot CLI cannot usefully be scraped, so the push gateway is the
	// export path.
	PushGatewayURL string `json:"push_gateway_url"`
	PushJobName    string `json:"push_job_name"`

	InfluxEnabled bool   `json:"influx_enabled"`
	InfluxURL     string `json:"influx_url"`
	InfluxToken   string `json:"influx_token"`
	InfluxOrg     string `json:"influx_org"`
	InfluxBucket  string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PushJobName == "" {
		c.PushJobName = "eps_power_budget"
	}
}
