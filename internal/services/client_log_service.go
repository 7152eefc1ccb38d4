package services

import (
	"context"
	"log/slog"

	"cleanapi/internal/core"
	"cleanapi/internal/infrastructure"
	api "cleanapi/pkg/contracts/api/v1"
)

// ClientLogService forwards log entries posted by client applications into
// the process log.
type ClientLogService struct {
	logger    *slog.Logger
	validator *Validator
}

// NewClientLogService creates a new client log service
func NewClientLogService(logger *slog.Logger, validator *Validator) *ClientLogService {
	if validator == nil {
		validator = NewValidator()
	}
	return &ClientLogService{
		logger:    infrastructure.WithComponent(logger, "client"),
		validator: validator,
	}
}

var clientLevels = map[string]slog.Level{
	"error":   infrastructure.LevelError,
	"warn":    infrastructure.LevelWarn,
	"info":    infrastructure.LevelInfo,
	"http":    infrastructure.LevelHTTP,
	"verbose": infrastructure.LevelVerbose,
	"debug":   infrastructure.LevelDebug,
	"silly":   infrastructure.LevelSilly,
}

// LogClientEvent validates req and logs it at the requested level. An empty
// level logs at info.
func (s *ClientLogService) LogClientEvent(ctx context.Context, req api.ClientLogRequest) (core.Result[struct{}], error) {
	if err := s.validator.Struct(req); err != nil {
		if ucErr, ok := core.AsUseCaseError(err); ok {
			return core.Fail[struct{}](ucErr), nil
		}
		return core.Result[struct{}]{}, err
	}

	level, ok := clientLevels[req.Level]
	if !ok {
		level = infrastructure.LevelInfo
	}

	attrs := []slog.Attr{slog.String("client_source", req.Source)}
	if req.Data != nil {
		attrs = append(attrs, slog.Any("data", req.Data))
	}

	s.logger.LogAttrs(ctx, level, req.Message, attrs...)
	return core.Ok(struct{}{}), nil
}
