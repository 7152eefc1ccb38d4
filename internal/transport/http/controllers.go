package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"cleanapi/internal/core"
	api "cleanapi/pkg/contracts/api/v1"
)

// QueryController answers a GET with the value of a use case that takes no
// input. Health, liveness and version are all served by it.
type QueryController[T any] struct {
	BaseController[core.UseCase[core.NoRequest, core.Result[T]]]
}

// NewQueryController creates a QueryController for usecase.
func NewQueryController[T any](name string, usecase core.UseCase[core.NoRequest, core.Result[T]], logger *slog.Logger) *QueryController[T] {
	return &QueryController[T]{
		BaseController: NewBaseController(name, usecase, logger),
	}
}

// ProcessRequest executes the use case and writes its value, or the status
// of its failure.
func (c *QueryController[T]) ProcessRequest(w http.ResponseWriter, r *http.Request) error {
	result, err := c.UseCase().Execute(r.Context(), core.NoRequest{})
	if err != nil {
		return err
	}

	if result.IsError() {
		return c.DomainError(w, r, result.Err())
	}

	return c.OK(w, r, result.Value())
}

// ClientLogController accepts log entries posted by client applications.
type ClientLogController struct {
	BaseController[core.UseCase[api.ClientLogRequest, core.Result[struct{}]]]
}

// NewClientLogController creates a new client log controller
func NewClientLogController(usecase core.UseCase[api.ClientLogRequest, core.Result[struct{}]], logger *slog.Logger) *ClientLogController {
	return &ClientLogController{
		BaseController: NewBaseController("ClientLogController", usecase, logger),
	}
}

// ProcessRequest decodes the entry and hands it to the use case. A body that
// is not JSON gets the default bad request message.
func (c *ClientLogController) ProcessRequest(w http.ResponseWriter, r *http.Request) error {
	var req api.ClientLogRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		c.Logger().DebugContext(r.Context(), "malformed client log body", slog.Any("error", err))
		return c.BadRequest(w, r, "")
	}

	result, err := c.UseCase().Execute(r.Context(), req)
	if err != nil {
		return err
	}

	if result.IsError() {
		return c.DomainError(w, r, result.Err())
	}

	return c.OK(w, r, nil)
}
