package config

import "strings"

// ObservabilityConfig groups configuration that controls metrics and tracing.
type ObservabilityConfig struct {
	Metrics ObservabilityMetricsConfig
	Tracing ObservabilityTracingConfig
}

// Sanitize applies guardrails to observability sub-configs.
func (c *ObservabilityConfig) Sanitize() {
	c.Metrics.Sanitize()
	c.Tracing.Sanitize()
}

// ObservabilityMetricsConfig controls emission of metrics to a StatsD sink.
type ObservabilityMetricsConfig struct {
	Enabled       bool   `env:"OBSERVABILITY_METRICS_ENABLED"        envDefault:"false"`
	StatsdAddress string `env:"OBSERVABILITY_METRICS_STATSD_ADDRESS" envDefault:"127.0.0.1:8125"`
	Prefix        string `env:"OBSERVABILITY_METRICS_PREFIX"         envDefault:"megabox_web"`
}

// Sanitize normalises derived fields and enforces safe defaults.
func (c *ObservabilityMetricsConfig) Sanitize() {
	c.StatsdAddress = strings.TrimSpace(c.StatsdAddress)
	if c.StatsdAddress == "" {
		c.Enabled = false
	}
}

// IsEnabled returns true when metrics emission is active after sanitisation.
func (c *ObservabilityMetricsConfig) IsEnabled() bool {
	return c.Enabled && c.StatsdAddress != ""
}

// ObservabilityTracingConfig controls OpenTelemetry trace export over OTLP/gRPC.
type ObservabilityTracingConfig struct {
	Enabled     bool    `env:"OBSERVABILITY_TRACING_ENABLED"      envDefault:"false"`
	Endpoint    string  `env:"OBSERVABILITY_TRACING_ENDPOINT"     envDefault:"localhost:4317"`
	ServiceName string  `env:"OBSERVABILITY_TRACING_SERVICE_NAME" envDefault:"megabox-web"`
	SampleRatio float64 `env:"OBSERVABILITY_TRACING_SAMPLE_RATIO" envDefault:"1.0"`
	Insecure    bool    `env:"OBSERVABILITY_TRACING_INSECURE"     envDefault:"true"`
}

// Sanitize normalises tracing configuration values.
func (c *ObservabilityTracingConfig) Sanitize() {
	c.Endpoint = strings.TrimSpace(c.Endpoint)
	if c.Endpoint == "" {
		c.Enabled = false
	}
	if c.ServiceName == "" {
		c.ServiceName = "megabox-web"
	}
	if c.SampleRatio < 0 {
		c.SampleRatio = 0
	}
	if c.SampleRatio > 1 {
		c.SampleRatio = 1
	}
}
