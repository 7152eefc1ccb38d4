// Package config loads the process configuration from the environment.
//
// # Sources
//
// Configuration is read in this order of precedence:
//
//	1. Environment variables (highest priority)
//	2. A .env file in the working directory, if present
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// The process-level variables keep their conventional bare names:
//
//	NODE_ENV=development     environment name; "development" selects the console log format
//	PORT=5000                listen port; non-numeric values fall back to 5000
//	LOG_LEVEL=silly          error, warn, info, http, verbose, debug or silly
//
// Server, rate limiting, telemetry and CORS settings are grouped by prefix:
//
//	SERVER_READ_TIMEOUT=15s
//	SERVER_REQUEST_TIMEOUT=30s
//	RATE_LIMIT_ENABLED=true
//	OTEL_TRACES_EXPORTER=stdout
//	CORS_ALLOWED_ORIGINS=https://app.example.com,https://admin.example.com
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	srv := &http.Server{Addr: cfg.Address()}
package config
