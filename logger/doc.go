// Package logger provides structured logging for seiskit streaming
// components using zerolog.
//
// It supports multiple output formats (JSON, console), log level
// configuration, and component-scoped loggers with structured fields.
// The realtime accumulator uses it for discontinuity warnings and
// verbose append diagnostics.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("realtime")
//	log.Warn("gap detected", logger.Fields(logger.FieldChannel, "BW.RJOB..EHZ"))
package logger
