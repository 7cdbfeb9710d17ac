package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/chetan0021/spacecraft-eps-power-budget/core/logger"
	coremetrics "github.com/chetan0021/spacecraft-eps-power-budget/core/metrics"
	infralogger "github.com/chetan0021/spacecraft-eps-power-budget/infra/logger"
)

// InfluxSink writes run summaries to an InfluxDB instance using the official
// client. Per-step series are never exported, only end-of-run summaries.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	client := influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      infralogger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink when the health check fails, so a missing database never blocks a
// simulation run.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordBudget writes the static budget as a single point.
func (s *InfluxSink) RecordBudget(report coremetrics.BudgetReport) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("eps_budget").
		AddTag("run_id", report.RunID).
		AddField("nominal_w", round3(report.NominalW)).
		AddField("eol_w", round3(report.EOLW)).
		AddField("margin_nominal_w", round3(report.MarginNominalW)).
		AddField("margin_eol_w", round3(report.MarginEOLW)).
		AddField("nominal_compliant", report.NominalCompliant).
		AddField("eol_compliant", report.EOLCompliant).
		AddField("solar_w", round3(report.SolarW)).
		AddField("excess_w", round3(report.ExcessW)).
		AddField("remaining_wh", round3(report.RemainingWh)).
		AddField("charge_time_h", round3(report.ChargeTimeH)).
		SetTime(report.Timestamp)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordRunSummary writes one point per finished simulation run.
func (s *InfluxSink) RecordRunSummary(summary coremetrics.RunSummary) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("eps_run").
		AddTag("run_id", summary.RunID).
		AddTag("kind", summary.Kind).
		AddTag("reached_full", strconv.FormatBool(summary.TimeToFullH >= 0)).
		AddField("steps", summary.Steps).
		AddField("timestep_h", summary.TimestepH).
		AddField("duration_h", summary.DurationH).
		AddField("final_energy_wh", round3(summary.FinalEnergyWh)).
		AddField("final_soc", round3(summary.FinalSoC)).
		AddField("time_to_full_h", round3(summary.TimeToFullH)).
		AddField("final_shunt_w", round3(summary.FinalShuntW)).
		SetTime(summary.Timestamp)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying HTTP client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
