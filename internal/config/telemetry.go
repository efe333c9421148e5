package config

import "sync"

type TelemetryConfig struct {
	CollectorURL string
	ServiceName  string
}

var (
	telemetryConfig *TelemetryConfig
	telemetryOnce   sync.Once
)

func LoadTelemetryConfig() *TelemetryConfig {
	telemetryOnce.Do(func() {
		telemetryConfig = &TelemetryConfig{
			CollectorURL: getEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName:  getEnvString("OTEL_SERVICE_NAME", "job-portal"),
		}
	})
	return telemetryConfig
}
