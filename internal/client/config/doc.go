// Package config loads runtime configuration for the healthcomp CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJSON) selected via flags: -c or -config.
//  3. Environment variables prefixed with HEALTHCOMP_ (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string   backend base address, e.g. http://localhost:8000
//	-f string   frontend address used for the Strava link page
//	-d string   sqlite file holding the credentials ("" keeps them in memory)
//	-l string   log level: debug, info, warn, error
//	-o string   OTLP/HTTP endpoint for error telemetry ("" disables it)
//	-s          share concurrent identical reads (single-flight)
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either a
// string like "15s" or integer nanoseconds:
//
//	{
//	  "backend_url": "http://localhost:8000",
//	  "frontend_url": "http://localhost:3000",
//	  "database_path": "healthcomp.db",
//	  "log_level": "info",
//	  "otel_endpoint": "localhost:4318",
//	  "single_flight": false,
//	  "request_timeout": "15s"
//	}
//
// # Environment
//
//	HEALTHCOMP_BACKEND_URL, HEALTHCOMP_FRONTEND_URL, HEALTHCOMP_DATABASE_PATH,
//	HEALTHCOMP_LOG_LEVEL, HEALTHCOMP_OTEL_ENDPOINT, HEALTHCOMP_SINGLE_FLIGHT,
//	HEALTHCOMP_REQUEST_TIMEOUT
package config
