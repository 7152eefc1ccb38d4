// Package api contains the request and response contracts of the HTTP API.
// Version v1 represents the current stable API version.
package api

// ClientLogRequest is a log entry posted by a client application.
type ClientLogRequest struct {
	Level   string         `json:"level" validate:"omitempty,oneof=error warn info http verbose debug silly"`
	Message string         `json:"message" validate:"required,max=4096"`
	Source  string         `json:"source,omitempty" validate:"omitempty,max=256"`
	Data    map[string]any `json:"data,omitempty"`
}
