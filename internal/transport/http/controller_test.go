package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanapi/internal/core"
	apierrors "cleanapi/internal/errors"
	"cleanapi/internal/shared/testutil"
)

type item struct {
	ID int `json:"id"`
}

type itemRequest struct{}

type itemUseCase = core.UseCase[itemRequest, core.Result[item]]

// itemController answers a domain failure with 404, like a lookup endpoint.
type itemController struct {
	BaseController[itemUseCase]
}

func (c *itemController) ProcessRequest(w http.ResponseWriter, r *http.Request) error {
	result, err := c.UseCase().Execute(r.Context(), itemRequest{})
	if err != nil {
		return err
	}
	if result.IsError() {
		return c.NotFound(w, r, result.Err().Error())
	}
	return c.OK(w, r, result.Value())
}

func newItemController(t *testing.T, fn func(context.Context, itemRequest) (core.Result[item], error)) (*itemController, *testutil.BufferedSlogHandler) {
	t.Helper()
	logger, logs := testutil.NewTestLogger(t)
	uc := core.UseCaseFunc[itemRequest, core.Result[item]](fn)
	return &itemController{BaseController: NewBaseController[itemUseCase]("ItemController", uc, logger)}, logs
}

// recordingNext counts calls to the error channel.
type recordingNext struct {
	calls int
	err   error
}

func (n *recordingNext) next(w http.ResponseWriter, r *http.Request, err error) {
	n.calls++
	n.err = err
	w.WriteHeader(http.StatusTeapot)
}

func serve(h http.Handler) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/1", nil))
	return w
}

func TestRequestHandler_OkResult(t *testing.T) {
	c, _ := newItemController(t, func(context.Context, itemRequest) (core.Result[item], error) {
		return core.Ok(item{ID: 1}), nil
	})
	next := &recordingNext{}

	w := serve(RequestHandler(c, next.next))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())
	assert.Zero(t, next.calls)
}

func TestRequestHandler_FailedResult(t *testing.T) {
	c, _ := newItemController(t, func(context.Context, itemRequest) (core.Result[item], error) {
		return core.Fail[item](core.NewUseCaseError("not found")), nil
	})
	next := &recordingNext{}

	w := serve(RequestHandler(c, next.next))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"not found"}`, w.Body.String())
	assert.Zero(t, next.calls)
}

func TestRequestHandler_ReturnedErrorGoesToNext(t *testing.T) {
	boom := errors.New("connection refused")
	c, _ := newItemController(t, func(context.Context, itemRequest) (core.Result[item], error) {
		return core.Result[item]{}, boom
	})
	next := &recordingNext{}

	w := serve(RequestHandler(c, next.next))

	assert.Equal(t, 1, next.calls)
	assert.Same(t, boom, next.err)
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestRequestHandler_PanicGoesToNext(t *testing.T) {
	c, _ := newItemController(t, func(context.Context, itemRequest) (core.Result[item], error) {
		panic("use case exploded")
	})
	next := &recordingNext{}

	var w *httptest.ResponseRecorder
	require.NotPanics(t, func() {
		w = serve(RequestHandler(c, next.next))
	})

	require.Equal(t, 1, next.calls)
	var pe *apierrors.PanicError
	require.ErrorAs(t, next.err, &pe)
	assert.Equal(t, "use case exploded", pe.Value)
	assert.Contains(t, pe.StackTrace(), "goroutine")
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestRequestHandler_ContractViolationIsContained(t *testing.T) {
	c, _ := newItemController(t, func(context.Context, itemRequest) (core.Result[item], error) {
		failed := core.Fail[item](core.NewUseCaseError("gone"))
		return core.Ok(failed.Value()), nil
	})
	next := &recordingNext{}

	require.NotPanics(t, func() { serve(RequestHandler(c, next.next)) })

	require.Equal(t, 1, next.calls)
	var pe *apierrors.PanicError
	require.ErrorAs(t, next.err, &pe)
	assert.ErrorIs(t, pe, core.ErrValueOfFailedResult)
}

func TestRequestHandler_WithErrorHandler(t *testing.T) {
	c, _ := newItemController(t, func(context.Context, itemRequest) (core.Result[item], error) {
		return core.Result[item]{}, errors.New("secret dsn in message")
	})
	logger, logs := testutil.NewTestLogger(t)

	w := serve(RequestHandler(c, apierrors.NewErrorHandler(logger).HandleError))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
	assert.Equal(t, 1, logs.Count())
}

// halfWrittenController answers and then fails.
type halfWrittenController struct {
	BaseController[struct{}]
	fail func()
	err  error
}

func (c *halfWrittenController) ProcessRequest(w http.ResponseWriter, r *http.Request) error {
	if err := c.OK(w, r, map[string]int{"a": 1}); err != nil {
		return err
	}
	if c.fail != nil {
		c.fail()
	}
	return c.err
}

func TestRequestHandler_FailureAfterWriteIsOnlyLogged(t *testing.T) {
	tests := []struct {
		name string
		fail func()
		err  error
	}{
		{name: "panic", fail: func() { panic("late failure") }},
		{name: "returned error", err: errors.New("late failure")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			c := &halfWrittenController{
				BaseController: NewBaseController("HalfWrittenController", struct{}{}, logger),
				fail:           tt.fail,
				err:            tt.err,
			}

			// A bare recorder, no router middleware in front
			w := httptest.NewRecorder()
			RequestHandler(c, apierrors.NewErrorHandler(logger).HandleError).
				ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/1", nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"a":1}`, w.Body.String())
			assert.NotContains(t, w.Body.String(), "INTERNAL_SERVER_ERROR")
			assert.True(t, logs.ContainsMessage("request failed after response was written"))
		})
	}
}

func TestRequestHandler_NilNextPanics(t *testing.T) {
	c, _ := newItemController(t, nil)
	assert.Panics(t, func() { RequestHandler(c, nil) })
}

func TestNewBaseController_ScopedLogger(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	c := NewBaseController("Foo", struct{}{}, logger)

	c.Logger().Info("from controller")
	logger.Info("from parent")

	records := logs.GetRecords()
	require.Len(t, records, 2)
	assert.Equal(t, "Foo", records[0].Attrs["controller"])
	_, ok := records[1].Attr("controller")
	assert.False(t, ok)
	assert.Equal(t, "Foo", c.Name())
	assert.Equal(t, struct{}{}, c.UseCase())
}

func TestResponseHelpers(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	c := NewBaseController("Helpers", struct{}{}, logger)

	var nilItem *item
	var nilMap map[string]int

	tests := []struct {
		name       string
		write      func(w http.ResponseWriter, r *http.Request) error
		wantStatus int
		wantBody   string
	}{
		{"ok with payload", func(w http.ResponseWriter, r *http.Request) error { return c.OK(w, r, item{ID: 3}) }, 200, `{"id":3}`},
		{"ok without payload", func(w http.ResponseWriter, r *http.Request) error { return c.OK(w, r, nil) }, 200, ""},
		{"ok with nil pointer", func(w http.ResponseWriter, r *http.Request) error { return c.OK(w, r, nilItem) }, 200, ""},
		{"ok with nil map", func(w http.ResponseWriter, r *http.Request) error { return c.OK(w, r, nilMap) }, 200, ""},
		{"ok with empty slice", func(w http.ResponseWriter, r *http.Request) error { return c.OK(w, r, []int{}) }, 200, `[]`},
		{"ok with zero value", func(w http.ResponseWriter, r *http.Request) error { return c.OK(w, r, 0) }, 200, `0`},
		{"created with payload", func(w http.ResponseWriter, r *http.Request) error { return c.Created(w, r, item{ID: 9}) }, 201, `{"id":9}`},
		{"created without payload", func(w http.ResponseWriter, r *http.Request) error { return c.Created(w, r, nil) }, 201, ""},
		{"fail", func(w http.ResponseWriter, r *http.Request) error { return c.Fail(w, r, errors.New("db down")) }, 500, `{"message":"db down"}`},
		{"bad request default", func(w http.ResponseWriter, r *http.Request) error { return c.BadRequest(w, r, "") }, 400, `{"message":"bad requst"}`},
		{"bad request message", func(w http.ResponseWriter, r *http.Request) error { return c.BadRequest(w, r, "name is required") }, 400, `{"message":"name is required"}`},
		{"unauthorized default", func(w http.ResponseWriter, r *http.Request) error { return c.Unauthorized(w, r, "") }, 401, `{"message":"Unauthorized"}`},
		{"unauthorized message", func(w http.ResponseWriter, r *http.Request) error { return c.Unauthorized(w, r, "token expired") }, 401, `{"message":"token expired"}`},
		{"forbidden default", func(w http.ResponseWriter, r *http.Request) error { return c.Forbidden(w, r, "") }, 403, `{"message":"Forbidden"}`},
		{"not found default", func(w http.ResponseWriter, r *http.Request) error { return c.NotFound(w, r, "") }, 404, `{"message":"Not found"}`},
		{"not found message", func(w http.ResponseWriter, r *http.Request) error { return c.NotFound(w, r, "no user 7") }, 404, `{"message":"no user 7"}`},
		{"json response", func(w http.ResponseWriter, r *http.Request) error { return c.JSONResponse(w, r, 202, item{ID: 2}) }, 202, `{"id":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			require.NoError(t, tt.write(w, r))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody == "" {
				assert.Empty(t, w.Body.String())
				return
			}
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}

func TestDomainError(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	c := NewBaseController("Domain", struct{}{}, logger)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", core.KindValidation.New("email is required"), 400, `{"message":"email is required"}`},
		{"unauthorized", core.KindUnauthorized.New("login first"), 401, `{"message":"login first"}`},
		{"forbidden", core.KindForbidden.New(""), 403, `{"message":"Forbidden"}`},
		{"not found", core.KindNotFound.New("no such order"), 404, `{"message":"no such order"}`},
		{"conflict", core.KindConflict.New("already exists"), 409, `{"message":"already exists"}`},
		{"unavailable", core.KindUnavailable.New("service unavailable: db"), 503, `{"message":"service unavailable: db"}`},
		{"base kind", core.NewUseCaseError("rule broken"), 400, `{"message":"rule broken"}`},
		{"custom kind", core.Kind("QuotaError").New("quota exceeded"), 400, `{"message":"quota exceeded"}`},
		{"plain error", errors.New("boom"), 500, `{"message":"boom"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			require.NoError(t, c.DomainError(w, httptest.NewRequest(http.MethodGet, "/", nil), tt.err))
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
