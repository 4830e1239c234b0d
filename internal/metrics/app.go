// Package metrics emits application metrics through the gofulmen telemetry
// system. All emitters are nil-safe so CLI runs without an exporter stay
// silent.
package metrics

import (
	"time"

	"github.com/luminoshq/luminos/internal/observability"
)

// Metric names following Prometheus conventions
var (
	DiagnosesTotal    = "app_diagnoses_total"
	DiagnosisDuration = "app_diagnosis_duration_ms"

	HealthCheckTotal    = "app_health_check_total"
	HealthCheckDuration = "app_health_check_duration_ms"

	ServerStartTime = "app_server_start_time_seconds"
)

// RecordDiagnosis records one finished diagnosis run.
func RecordDiagnosis(pro bool, success bool, elapsed time.Duration) {
	if observability.TelemetrySystem == nil {
		return
	}

	tier := "free"
	if pro {
		tier = "pro"
	}
	status := "success"
	if !success {
		status = "failure"
	}

	_ = observability.TelemetrySystem.Counter(
		DiagnosesTotal,
		1,
		map[string]string{
			"tier":   tier,
			"status": status,
		},
	)

	if success {
		_ = observability.TelemetrySystem.Histogram(
			DiagnosisDuration,
			elapsed,
			map[string]string{
				"tier": tier,
			},
		)
	}
}

// RecordHealthCheck records a health check execution
func RecordHealthCheck(checkName string, healthy bool, duration time.Duration) {
	if observability.TelemetrySystem == nil {
		return
	}

	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}

	_ = observability.TelemetrySystem.Counter(
		HealthCheckTotal,
		1,
		map[string]string{
			"check":  checkName,
			"status": status,
		},
	)

	_ = observability.TelemetrySystem.Histogram(
		HealthCheckDuration,
		duration,
		map[string]string{
			"check": checkName,
		},
	)
}

// SetServerStartTime records the server start time (Unix timestamp)
func SetServerStartTime(timestamp int64) {
	if observability.TelemetrySystem == nil {
		return
	}

	_ = observability.TelemetrySystem.Gauge(
		ServerStartTime,
		float64(timestamp),
		nil,
	)
}
