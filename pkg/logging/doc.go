// Package logging configures the slog default logger used by the sapsysinfo
// binaries.
//
// Both sapsysinfo and sapsysinfod log JSON to stderr so that stdout stays free
// for snapshot output. Every record carries the module name and build version:
//
//	{"time":"...","level":"INFO","msg":"snapshot collected","module":"sapsysinfo","version":"v0.3.0","sid":"S4H"}
//
// Levels are read from LOG_LEVEL (debug, info, warn or warning, error) unless the
// CLI --log-level flag sets one explicitly. Unknown values fall back to info.
// Debug loggers add the source location to each record.
//
// Typical setup in a main package:
//
//	logging.SetDefaultStructuredLogger("sapsysinfod", version)
//	slog.Info("server starting", "port", cfg.Server.Port)
//
// Components that need a logger as a dependency, such as the collector in
// pkg/sap, take a *slog.Logger and are handed slog.Default() once this package
// has configured it. NewLogLogger bridges libraries that only accept a
// *log.Logger, like http.Server.ErrorLog.
package logging
