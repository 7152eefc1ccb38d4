package api

import "time"

// Health status values
const (
	StatusOK       = "ok"
	StatusAlive    = "alive"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
)

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   *RuntimeInfo             `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// RuntimeInfo describes the running process.
type RuntimeInfo struct {
	UptimeSeconds float64 `json:"uptime_seconds"`
	GoVersion     string  `json:"go_version"`
	Goroutines    int     `json:"goroutines"`
}

// ServiceHealth is the outcome of one readiness probe.
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is the body of every status helper response.
type MessageResponse struct {
	Message string `json:"message"`
}
