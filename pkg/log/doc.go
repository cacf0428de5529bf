// Package log provides structured power-event capture for powersave.
//
// This package defines the Logger interface and Event types for recording
// power arbitration activity (requests, decisions, transitions, state
// changes). It is separate from operational logging (slog) - event capture
// provides a complete machine-readable trace for debugging battery and
// latency regressions after the fact.
//
// # Basic Usage
//
// Applications configure capture by providing a Logger implementation:
//
//	// For development: log to console via slog
//	mgr.SetEventLogger(log.NewSlogAdapter(slog.Default()), deviceID)
//
//	// For production: write to binary file
//	fl, _ := log.NewFileLogger("/var/log/powersave/device.plog")
//	mgr.SetEventLogger(fl, deviceID)
//
//	// Both: use MultiLogger
//	mgr.SetEventLogger(log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fl,
//	), deviceID)
//
// # Event Types
//
// Events are captured per arbitration concern:
//   - Request: high-performance obligations acquired/released (RequestEvent)
//   - Decision: evaluation outcomes, including no-change passes (DecisionEvent)
//   - Transition: successful hardware mode switches (TransitionEvent)
//   - State: commissioning/connectivity/provisioning changes (StateChangeEvent)
//
// Errors during transitions have a dedicated event type.
//
// # File Format
//
// Log files use CBOR encoding with .plog extension. The powersave-log CLI
// tool provides viewing, filtering, and export capabilities.
package log
