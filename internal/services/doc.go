// Package services implements the use cases the service ships with.
//
// Each exported method with the signature
//
//	func(ctx context.Context, req Req) (core.Result[T], error)
//
// is a use case: wrap it in core.UseCaseFunc and hand it to a controller.
//
//	health := services.NewHealthService(contracts.Version, logger)
//	uc := core.UseCaseFunc[core.NoRequest, core.Result[api.HealthStatus]](health.HealthCheck)
//
// # Available Use Cases
//
//	- HealthService.HealthCheck: runs the registered readiness probes
//	- HealthService.LivenessCheck: reports the process as alive
//	- HealthService.Version: returns build information
//	- ClientLogService.LogClientEvent: validates and records a client log entry
//
// # Error Handling
//
// Expected failures are returned as a failed Result holding a
// *core.UseCaseError (ValidationError, ServiceUnavailableError). A non-nil
// error return is reserved for unexpected failures such as a cancelled
// request context.
package services
