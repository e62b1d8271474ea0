// Package logger provides structured logging for envguard using zerolog.
//
// It supports JSON and console output, log level configuration and
// component-scoped loggers with structured fields. Reporters use it to
// surface validation failures; the envguard CLI configures it from flags.
//
// # Usage
//
//	log := logger.New(&logger.Config{Level: "info", Format: "json"}, "envguard")
//	log.Error("invalid environment", logger.Fields("key", "PORT"))
package logger
