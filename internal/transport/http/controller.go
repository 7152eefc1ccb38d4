package http

import (
	"log/slog"
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"cleanapi/internal/core"
	apierrors "cleanapi/internal/errors"
	"cleanapi/internal/infrastructure"
	api "cleanapi/pkg/contracts/api/v1"
)

// Default messages of the status helpers.
const (
	DefaultBadRequestMessage   = "bad requst"
	DefaultUnauthorizedMessage = "Unauthorized"
	DefaultForbiddenMessage    = "Forbidden"
	DefaultNotFoundMessage     = "Not found"
)

// NextFunc is the centralized error channel a controller forwards unexpected
// failures to. (*errors.ErrorHandler).HandleError satisfies it.
type NextFunc func(w http.ResponseWriter, r *http.Request, err error)

// Controller adapts one request/response exchange to a use case.
//
// ProcessRequest must write exactly one response unless it returns an error,
// in which case nothing should have been written and the error is answered by
// the NextFunc the controller is mounted with.
type Controller interface {
	Name() string
	ProcessRequest(w http.ResponseWriter, r *http.Request) error
}

// RequestHandler returns the http.HandlerFunc that runs c. An error returned by
// ProcessRequest, or a panic raised inside it, is passed to next exactly once
// and goes no further. The writer is wrapped so next can tell whether the
// response has already started.
func RequestHandler(c Controller, next NextFunc) http.HandlerFunc {
	if next == nil {
		panic("http: RequestHandler called with nil next")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ww, ok := w.(middleware.WrapResponseWriter)
		if !ok {
			ww = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		}
		if err := process(c, ww, r); err != nil {
			next(ww, r, err)
		}
	}
}

func process(c Controller, w http.ResponseWriter, r *http.Request) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			err = apierrors.NewPanicError(rvr)
		}
	}()

	return c.ProcessRequest(w, r)
}

// BaseController holds what every controller shares: its name, the use case
// it drives and a logger scoped with controller=<name>. Embed it and
// implement ProcessRequest.
type BaseController[U any] struct {
	name    string
	usecase U
	logger  *slog.Logger
}

// NewBaseController creates a BaseController bound to usecase.
func NewBaseController[U any](name string, usecase U, logger *slog.Logger) BaseController[U] {
	return BaseController[U]{
		name:    name,
		usecase: usecase,
		logger:  infrastructure.WithController(logger, name),
	}
}

// Name returns the controller name.
func (c BaseController[U]) Name() string {
	return c.name
}

// UseCase returns the bound use case.
func (c BaseController[U]) UseCase() U {
	return c.usecase
}

// Logger returns the controller's scoped logger.
func (c BaseController[U]) Logger() *slog.Logger {
	return c.logger
}

// JSONResponse writes payload as JSON with status code.
func (c BaseController[U]) JSONResponse(w http.ResponseWriter, r *http.Request, code int, payload any) error {
	render.Status(r, code)
	render.JSON(w, r, payload)
	return nil
}

// OK writes 200 with payload, or an empty 200 when payload is omitted.
func (c BaseController[U]) OK(w http.ResponseWriter, r *http.Request, payload any) error {
	return c.payloadOrStatus(w, r, http.StatusOK, payload)
}

// Created writes 201 with payload, or an empty 201 when payload is omitted.
func (c BaseController[U]) Created(w http.ResponseWriter, r *http.Request, payload any) error {
	return c.payloadOrStatus(w, r, http.StatusCreated, payload)
}

// Fail writes 500 with the error text as message.
func (c BaseController[U]) Fail(w http.ResponseWriter, r *http.Request, err error) error {
	message := http.StatusText(http.StatusInternalServerError)
	if err != nil {
		message = err.Error()
	}
	c.logger.ErrorContext(r.Context(), "request failed", slog.Any("error", err))
	return c.message(w, r, http.StatusInternalServerError, message, "")
}

// BadRequest writes 400. An empty message sends the default.
func (c BaseController[U]) BadRequest(w http.ResponseWriter, r *http.Request, message string) error {
	return c.message(w, r, http.StatusBadRequest, message, DefaultBadRequestMessage)
}

// Unauthorized writes 401. An empty message sends the default.
func (c BaseController[U]) Unauthorized(w http.ResponseWriter, r *http.Request, message string) error {
	return c.message(w, r, http.StatusUnauthorized, message, DefaultUnauthorizedMessage)
}

// Forbidden writes 403. An empty message sends the default.
func (c BaseController[U]) Forbidden(w http.ResponseWriter, r *http.Request, message string) error {
	return c.message(w, r, http.StatusForbidden, message, DefaultForbiddenMessage)
}

// NotFound writes 404. An empty message sends the default.
func (c BaseController[U]) NotFound(w http.ResponseWriter, r *http.Request, message string) error {
	return c.message(w, r, http.StatusNotFound, message, DefaultNotFoundMessage)
}

// DomainError answers the error carried by a failed Result. Use case errors
// get the status of their kind with their message; anything else is a Fail.
func (c BaseController[U]) DomainError(w http.ResponseWriter, r *http.Request, err error) error {
	ucErr, ok := core.AsUseCaseError(err)
	if !ok {
		return c.Fail(w, r, err)
	}

	c.logger.Log(r.Context(), infrastructure.LevelVerbose, "use case failed",
		slog.String("kind", string(ucErr.Kind())),
		slog.String("message", ucErr.Message()))

	switch ucErr.Kind() {
	case core.KindValidation:
		return c.BadRequest(w, r, ucErr.Message())
	case core.KindUnauthorized:
		return c.Unauthorized(w, r, ucErr.Message())
	case core.KindForbidden:
		return c.Forbidden(w, r, ucErr.Message())
	case core.KindNotFound:
		return c.NotFound(w, r, ucErr.Message())
	default:
		return c.message(w, r, apierrors.StatusForKind(ucErr.Kind()), ucErr.Message(), DefaultBadRequestMessage)
	}
}

func (c BaseController[U]) payloadOrStatus(w http.ResponseWriter, r *http.Request, code int, payload any) error {
	if isOmitted(payload) {
		w.WriteHeader(code)
		return nil
	}
	return c.JSONResponse(w, r, code, payload)
}

func (c BaseController[U]) message(w http.ResponseWriter, r *http.Request, code int, message, fallback string) error {
	if message == "" {
		message = fallback
	}
	return c.JSONResponse(w, r, code, api.MessageResponse{Message: message})
}

// isOmitted reports whether payload is nil or a nil pointer, map, slice or
// interface.
func isOmitted(payload any) bool {
	if payload == nil {
		return true
	}
	v := reflect.ValueOf(payload)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return v.IsNil()
	}
	return false
}
