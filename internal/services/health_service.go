package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"cleanapi/internal/core"
	"cleanapi/internal/infrastructure"
	"cleanapi/pkg/contracts"
	api "cleanapi/pkg/contracts/api/v1"
)

// DefaultProbeTimeout bounds a single readiness probe.
const DefaultProbeTimeout = 2 * time.Second

// Probe reports whether a dependency is ready to serve. A nil error means ready.
type Probe func(ctx context.Context) error

// HealthService implements the operational use cases: readiness, liveness and
// version reporting.
type HealthService struct {
	version      string
	startTime    time.Time
	probeTimeout time.Duration
	logger       *slog.Logger

	mu     sync.RWMutex
	probes map[string]Probe
}

// NewHealthService creates a new health service
func NewHealthService(version string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	return &HealthService{
		version:      version,
		startTime:    time.Now(),
		probeTimeout: DefaultProbeTimeout,
		logger:       infrastructure.WithComponent(logger, "health_service"),
		probes:       make(map[string]Probe),
	}
}

// RegisterProbe adds a named readiness probe. Registering a name twice
// replaces the earlier probe.
func (hs *HealthService) RegisterProbe(name string, probe Probe) {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	hs.probes[name] = probe
}

// SetProbeTimeout changes the per-probe timeout.
func (hs *HealthService) SetProbeTimeout(d time.Duration) {
	hs.probeTimeout = d
}

// HealthCheck runs every readiness probe concurrently. It fails with a
// ServiceUnavailableError naming the probes that did not pass.
func (hs *HealthService) HealthCheck(ctx context.Context, _ core.NoRequest) (core.Result[api.HealthStatus], error) {
	hs.mu.RLock()
	names := make([]string, 0, len(hs.probes))
	for name := range hs.probes {
		names = append(names, name)
	}
	probes := make([]Probe, len(names))
	sort.Strings(names)
	for i, name := range names {
		probes[i] = hs.probes[name]
	}
	hs.mu.RUnlock()

	results := make([]error, len(probes))
	var g errgroup.Group
	for i, probe := range probes {
		g.Go(func() error {
			pctx, cancel := context.WithTimeout(ctx, hs.probeTimeout)
			defer cancel()
			results[i] = runProbe(pctx, probe)
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return core.Result[api.HealthStatus]{}, err
	}

	status := api.HealthStatus{
		Status:    api.StatusOK,
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  make(map[string]api.ServiceHealth, len(names)),
	}

	var failed []string
	for i, name := range names {
		if results[i] != nil {
			failed = append(failed, name)
			status.Services[name] = api.ServiceHealth{Status: api.StatusNotReady, Message: results[i].Error()}
			hs.logger.WarnContext(ctx, "readiness probe failed",
				slog.String("probe", name),
				slog.Any("error", results[i]))
			continue
		}
		status.Services[name] = api.ServiceHealth{Status: api.StatusReady}
	}

	if len(failed) > 0 {
		return core.Fail[api.HealthStatus](
			core.KindUnavailable.New(fmt.Sprintf("service unavailable: %s", strings.Join(failed, ", "))),
		), nil
	}

	hs.logger.Log(ctx, infrastructure.LevelSilly, "health check passed", slog.Int("probes", len(names)))
	return core.Ok(status), nil
}

// runProbe calls probe, treating a panic or an overrun deadline as a failure.
func runProbe(ctx context.Context, probe Probe) error {
	done := make(chan error, 1)
	go func() {
		defer func() {
			if rvr := recover(); rvr != nil {
				done <- fmt.Errorf("probe panicked: %v", rvr)
			}
		}()
		done <- probe(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("probe timed out: %w", ctx.Err())
	}
}

// LivenessCheck always succeeds while the process can serve requests.
func (hs *HealthService) LivenessCheck(_ context.Context, _ core.NoRequest) (core.Result[api.HealthStatus], error) {
	return core.Ok(api.HealthStatus{
		Status:    api.StatusAlive,
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: &api.RuntimeInfo{
			UptimeSeconds: time.Since(hs.startTime).Seconds(),
			GoVersion:     runtime.Version(),
			Goroutines:    runtime.NumGoroutine(),
		},
	}), nil
}

// Version returns build information.
func (hs *HealthService) Version(_ context.Context, _ core.NoRequest) (core.Result[contracts.VersionInfo], error) {
	return core.Ok(contracts.GetVersionInfo()), nil
}
