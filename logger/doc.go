// Package logger provides structured logging for the Ruwler client using
// zerolog.
//
// The client only depends on the small Sink interface, so any logging
// library can be plugged in; *Logger is the zerolog-backed implementation
// and Nop discards everything.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.NewDefault("ruwler")
//	client, err := ruwler.New(cfg, ruwler.WithLogger(log))
package logger
