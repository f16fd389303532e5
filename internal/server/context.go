package server

import (
	"context"
	"sync"

	"github.com/finnvale/drivescout/internal/auth"
	"github.com/finnvale/drivescout/internal/drive"
	"github.com/finnvale/drivescout/internal/instrumentation"
)

// ServerContext holds the process-wide state behind the MCP server: the
// credential manager and the lazily built Drive client. Constructed once at
// process start, torn down at exit; there is no other cross-call state.
type ServerContext struct {
	ctx     context.Context
	cancel  context.CancelFunc
	auth    *auth.Manager
	metrics *instrumentation.Metrics

	mu       sync.Mutex
	api      drive.API
	shutdown bool
}

// NewServerContext creates a server context around the credential manager.
func NewServerContext(ctx context.Context, mgr *auth.Manager) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)
	return &ServerContext{
		ctx:    shutdownCtx,
		cancel: cancel,
		auth:   mgr,
	}
}

// Context returns the server's lifetime context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// AuthManager returns the credential manager.
func (sc *ServerContext) AuthManager() *auth.Manager {
	return sc.auth
}

// AuthorizedAPI returns a Drive API bound to a valid credential. The
// credential check happens up front so a dead or unrefreshable credential
// fails here, classified, before any Drive call is attempted. The underlying
// client is built once; its transport pulls tokens from the manager, so
// later refreshes need no rebuild.
func (sc *ServerContext) AuthorizedAPI(ctx context.Context) (drive.API, error) {
	if _, err := sc.auth.Token(ctx); err != nil {
		return nil, err
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.api == nil {
		client, err := drive.NewClient(sc.ctx, sc.auth.HTTPClient(sc.ctx))
		if err != nil {
			return nil, err
		}
		sc.api = client
		if sc.metrics != nil {
			sc.api = newInstrumentedAPI(client, sc.metrics)
		}
	}
	return sc.api, nil
}

// SetAPI injects a Drive API, replacing the lazily built client. Used by
// tests.
func (sc *ServerContext) SetAPI(api drive.API) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.api = api
}

// Metrics returns the metric recorders, or nil when instrumentation is off.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// SetMetrics attaches metric recorders for tool instrumentation.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.metrics = m
}

// IsShutdown reports whether the context has been shut down.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.shutdown
}

// Shutdown cancels the server context. Safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.shutdown {
		return nil
	}
	sc.shutdown = true
	sc.cancel()
	return nil
}
