// Package observability sets up OpenTelemetry tracing and metrics export
// over OTLP/HTTP and hands out the beankit tracer and meter.
//
// # Configuration
//
//	telemetry:
//	  enabled: true
//	  endpoint: "localhost:4318"
//	  insecure: true
//	  sample_rate: 1.0
//	  interval: 15s
package observability
