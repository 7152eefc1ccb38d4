// Package app wires the service together and runs it.
//
// NewApplication builds, in order: the process logger, OpenTelemetry
// providers and HTTP instruments, the central error handler, the services,
// the controllers and the chi router, and finally the http.Server.
//
// # Router
//
//	RequestID → RealIP → OTel → StructuredLogger → Recoverer →
//	SecurityHeaders → CORS → RateLimiter (optional) → Timeout
//
//	GET  /api/health       readiness, 503 while a probe fails
//	GET  /api/health/live  liveness
//	GET  /api/version      build information
//	POST /api/logs         client log entries
//	GET  /metrics          Prometheus exposition
//
// Unknown routes and methods are answered by the error handler with the same
// JSON error body as every other failure.
//
// # Usage
//
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
//
// # Graceful Shutdown
//
// Run returns after SIGINT, SIGTERM or cancellation of its context. Stop marks
// the readiness probe as failing, drains in-flight requests within
// SERVER_SHUTDOWN_TIMEOUT and flushes telemetry. The package never calls
// os.Exit.
package app
