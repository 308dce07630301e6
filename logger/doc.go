// Package logger provides structured logging for beankit using zerolog.
//
// It supports JSON and console output, per-logger levels, component-scoped
// loggers and trace correlation from OpenTelemetry span contexts.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("bean")
//	log.Debug("found in context scope", logger.Fields("bean", "Repo"))
package logger
