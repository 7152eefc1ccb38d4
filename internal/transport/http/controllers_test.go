package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanapi/internal/core"
	apierrors "cleanapi/internal/errors"
	"cleanapi/internal/services"
	"cleanapi/internal/shared/testutil"
	"cleanapi/pkg/contracts"
	api "cleanapi/pkg/contracts/api/v1"
)

func TestQueryController(t *testing.T) {
	tests := []struct {
		name       string
		result     core.Result[api.HealthStatus]
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "value",
			result:     core.Ok(api.HealthStatus{Status: api.StatusOK, Version: "1.0.0"}),
			wantStatus: http.StatusOK,
		},
		{
			name:       "unavailable",
			result:     core.Fail[api.HealthStatus](core.KindUnavailable.New("service unavailable: db")),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"message":"service unavailable: db"}`,
		},
		{
			name:       "unexpected error",
			err:        errors.New("probe registry corrupted"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			uc := core.UseCaseFunc[core.NoRequest, core.Result[api.HealthStatus]](
				func(context.Context, core.NoRequest) (core.Result[api.HealthStatus], error) {
					return tt.result, tt.err
				})
			c := NewQueryController[api.HealthStatus]("HealthController", uc, logger)
			assert.Equal(t, "HealthController", c.Name())

			w := serve(RequestHandler(c, apierrors.NewErrorHandler(logger).HandleError))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				var got api.HealthStatus
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, "1.0.0", got.Version)
			}
		})
	}
}

func TestQueryController_HealthServiceProbeFails(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hs := services.NewHealthService("2.0.0", logger)
	hs.RegisterProbe("db", func(context.Context) error { return errors.New("refused") })

	c := NewQueryController[api.HealthStatus]("HealthController",
		core.UseCaseFunc[core.NoRequest, core.Result[api.HealthStatus]](hs.HealthCheck), logger)

	w := serve(RequestHandler(c, apierrors.NewErrorHandler(logger).HandleError))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"message":"service unavailable: db"}`, w.Body.String())
}

func newClientLogController(t *testing.T) (*ClientLogController, *testutil.BufferedSlogHandler) {
	t.Helper()
	logger, logs := testutil.NewTestLogger(t)
	svc := services.NewClientLogService(logger, nil)
	uc := core.UseCaseFunc[api.ClientLogRequest, core.Result[struct{}]](svc.LogClientEvent)
	return NewClientLogController(uc, logger), logs
}

func TestClientLogController(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
		wantLogged string
	}{
		{
			name:       "accepted",
			body:       `{"level":"warn","message":"slow render","source":"web"}`,
			wantStatus: http.StatusOK,
			wantLogged: "slow render",
		},
		{
			name:       "validation failure",
			body:       `{"level":"loud","message":"x"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"level must be one of: error, warn, info, http, verbose, debug, silly"}`,
		},
		{
			name:       "malformed json",
			body:       `{"level":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"bad requst"}`,
		},
		{
			name:       "empty body",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"bad requst"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, logs := newClientLogController(t)
			next := &recordingNext{}

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/logs", strings.NewReader(tt.body))
			RequestHandler(c, next.next).ServeHTTP(w, r)

			assert.Zero(t, next.calls)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody == "" {
				assert.Empty(t, w.Body.String())
			} else {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
			if tt.wantLogged != "" {
				assert.True(t, logs.ContainsMessage(tt.wantLogged))
			}
		})
	}
}

func TestAPIControllers_Routes(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hs := services.NewHealthService("3.1.4", logger)
	clientLog, _ := newClientLogController(t)

	controllers := APIControllers{
		Health:    NewQueryController[api.HealthStatus]("HealthController", core.UseCaseFunc[core.NoRequest, core.Result[api.HealthStatus]](hs.HealthCheck), logger),
		Liveness:  NewQueryController[api.HealthStatus]("LivenessController", core.UseCaseFunc[core.NoRequest, core.Result[api.HealthStatus]](hs.LivenessCheck), logger),
		Version:   NewQueryController[contracts.VersionInfo]("VersionController", core.UseCaseFunc[core.NoRequest, core.Result[contracts.VersionInfo]](hs.Version), logger),
		ClientLog: clientLog,
	}

	router := chi.NewRouter()
	router.Mount("/api", controllers.Routes(apierrors.NewErrorHandler(logger).HandleError))

	tests := []struct {
		method      string
		path        string
		contentType string
		body        string
		wantStatus  int
		wantContain string
	}{
		{http.MethodGet, "/api/health", "", "", http.StatusOK, `"status":"ok"`},
		{http.MethodGet, "/api/health/live", "", "", http.StatusOK, `"status":"alive"`},
		{http.MethodGet, "/api/version", "", "", http.StatusOK, `"version"`},
		{http.MethodPost, "/api/logs", "application/json", `{"message":"hi"}`, http.StatusOK, ""},
		{http.MethodPost, "/api/logs", "text/plain", `{"message":"hi"}`, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path+" "+tt.contentType, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantContain)
		})
	}
}
