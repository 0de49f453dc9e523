// Package logger builds the zap logger shared by the CLI and the HTTP server.
//
// Config carries two settings, both bound from the LOG_ section:
//   - Level: debug, info, warn or error. Debug selects zap's development
//     config (ISO8601 timestamps); any other level the production config.
//     Unknown levels are rejected by New.
//   - Format: json (default) or console with colored levels and no stack traces.
//
// WithRayID attaches the request id stored by the rayid middleware, so every
// line logged while serving a request can be correlated.
//
// # Usage
//
//	log, err := logger.New(&logger.Config{Level: "info", Format: "json"})
//	if err != nil {
//	    return err
//	}
//	log.Info("Server started")
//
//	// In a request handler:
//	logger.WithRayID(log, c).Error("Comparison failed", zap.Error(err))
package logger
