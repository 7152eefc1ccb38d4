package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"cleanapi/internal/core"
	"cleanapi/internal/infrastructure"
)

// ErrorHandler is the single place where failures that escape a controller
// are logged and turned into a response.
type ErrorHandler struct {
	logger  *slog.Logger
	metrics *infrastructure.HTTPMetrics
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: infrastructure.WithComponent(logger, "error_handler"),
	}
}

// WithMetrics makes the handler count the errors it answers.
func (h *ErrorHandler) WithMetrics(m *infrastructure.HTTPMetrics) *ErrorHandler {
	h.metrics = m
	return h
}

// statusWriter is satisfied by chi's WrapResponseWriter and the OTel writer.
type statusWriter interface {
	Status() int
}

// HandleError logs err and answers it with a JSON body. When the response has
// already been started it only logs.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	ctx := r.Context()
	apiErr := Classify(err)
	reqID := middleware.GetReqID(ctx)

	level := slog.LevelWarn
	if apiErr.StatusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	attrs := []slog.Attr{
		slog.Any("error", err),
		slog.Int("status", apiErr.StatusCode),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	}
	if kind := core.KindOf(err); kind != "" {
		attrs = append(attrs, slog.String("kind", string(kind)))
	}

	infrastructure.RecordError(ctx, err)
	h.record(ctx, apiErr, err)

	if sw, ok := w.(statusWriter); ok && sw.Status() != 0 {
		h.logger.LogAttrs(ctx, level, "request failed after response was written", attrs...)
		return
	}

	h.logger.LogAttrs(ctx, level, "request failed", attrs...)
	render.Render(w, r, NewErrorResponse(apiErr, reqID))
}

// HandlePanic answers a recovered panic as an internal error.
func (h *ErrorHandler) HandlePanic(w http.ResponseWriter, r *http.Request, recovered any) {
	h.HandleError(w, r, NewPanicError(recovered))
}

// NotFound answers requests that match no route.
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, NewErrorResponse(ErrNotFound, middleware.GetReqID(r.Context())))
}

// MethodNotAllowed answers requests whose route exists for other methods.
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, NewErrorResponse(ErrMethodNotAllowed, middleware.GetReqID(r.Context())))
}

func (h *ErrorHandler) record(ctx context.Context, apiErr *APIError, err error) {
	if h.metrics == nil {
		return
	}
	h.metrics.ErrorsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", strconv.Itoa(apiErr.StatusCode)),
		attribute.String("kind", string(core.KindOf(err))),
	))
}

// Classify resolves any error to the APIError it is answered with. Messages of
// unexpected errors never reach the client.
func Classify(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if ucErr, ok := core.AsUseCaseError(err); ok {
		return New(StatusForKind(ucErr.Kind()), string(ucErr.Kind()), ucErr.Message())
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrRequestTimeout
	}

	return ErrInternalServer
}

// StatusFor returns the HTTP status err is answered with.
func StatusFor(err error) int {
	return Classify(err).StatusCode
}

// StatusForKind maps a use case error kind to an HTTP status. Kinds without a
// dedicated status are client errors.
func StatusForKind(kind core.Kind) int {
	switch kind {
	case core.KindValidation:
		return http.StatusBadRequest
	case core.KindUnauthorized:
		return http.StatusUnauthorized
	case core.KindForbidden:
		return http.StatusForbidden
	case core.KindNotFound:
		return http.StatusNotFound
	case core.KindConflict:
		return http.StatusConflict
	case core.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}
