package auth

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/finnvale/drivescout/internal/fault"
	"github.com/finnvale/drivescout/internal/logging"
)

// AuthorizationPrompter obtains a brand-new credential through the
// interactive consent flow. The browser/redirect mechanics live behind this
// interface; the manager only ever asks for "a new credential".
type AuthorizationPrompter interface {
	ObtainCredential(ctx context.Context) (*Credential, error)
}

// Manager owns the process-wide credential: it loads the persisted copy on
// first use, hands out access tokens while they are valid, and refreshes
// expired ones. Refreshes are single-flight: when N callers observe an
// expired credential concurrently, exactly one token exchange happens and
// every caller shares its outcome. Some providers invalidate refresh tokens
// that are redeemed twice, so the duplicate exchange is not merely wasteful.
type Manager struct {
	store    *Store
	config   *oauth2.Config
	prompter AuthorizationPrompter
	logger   *slog.Logger
	now      func() time.Time

	// onRefresh, when set, observes the outcome of every refresh exchange.
	onRefresh func(err error)

	mu     sync.Mutex
	cred   *Credential
	loaded bool

	group singleflight.Group
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithPrompter lets the manager drive interactive authorization itself when
// the credential is dead. Without it, a dead credential is a hard failure.
func WithPrompter(p AuthorizationPrompter) ManagerOption {
	return func(m *Manager) { m.prompter = p }
}

// WithLogger sets the logger used for refresh lifecycle events.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) { m.logger = logger }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// WithRefreshObserver registers a hook called after every refresh exchange
// with its outcome. Used to feed refresh metrics without coupling this
// package to the instrumentation layer.
func WithRefreshObserver(fn func(err error)) ManagerOption {
	return func(m *Manager) { m.onRefresh = fn }
}

// NewManager creates a credential manager bound to a store and the OAuth2
// application identity. Construct one per process, at startup.
func NewManager(store *Store, config *oauth2.Config, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		config: config,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Token returns a currently valid access token, refreshing if necessary.
// A valid in-memory credential is returned without any I/O.
func (m *Manager) Token(ctx context.Context) (*oauth2.Token, error) {
	cred, err := m.current()
	if err != nil {
		if m.prompter == nil {
			return nil, err
		}
		return m.authorize(ctx)
	}

	switch cred.Status(m.now()) {
	case StatusValid:
		return cred.Token(), nil
	case StatusRefreshable:
		return m.refresh(ctx)
	default:
		if m.prompter != nil {
			return m.authorize(ctx)
		}
		return nil, fault.New(fault.KindNoCredential,
			"stored credential has expired and cannot be refreshed; run `drivescout auth` to re-authorize")
	}
}

// HTTPClient returns an HTTP client whose requests carry a valid access
// token. Token renewal flows through this manager, so the single-flight
// refresh discipline applies to every request the client makes.
func (m *Manager) HTTPClient(ctx context.Context) *http.Client {
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(nil, &managerTokenSource{ctx: ctx, m: m}))
}

// Scopes returns the granted scope set of the loaded credential, if any.
func (m *Manager) Scopes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cred == nil {
		return nil
	}
	return m.cred.Scopes
}

// current returns the in-memory credential, loading the persisted copy on
// first use.
func (m *Manager) current() (*Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded {
		cred, err := m.store.Load()
		if err != nil && err != ErrNoCredential {
			return nil, fault.Wrap(fault.KindNoCredential, err, "failed to load stored credential")
		}
		m.cred = cred
		m.loaded = true
	}
	if m.cred == nil {
		return nil, fault.New(fault.KindNoCredential,
			"no stored credential; run `drivescout auth` to authorize access")
	}
	return m.cred, nil
}

// refresh exchanges the refresh token for a new access token, exactly once
// per expiry regardless of caller concurrency. The refreshed credential is
// written back through the store before any caller proceeds. A failed
// exchange is not retried: refresh-token failures are not transient.
func (m *Manager) refresh(ctx context.Context) (*oauth2.Token, error) {
	v, err, shared := m.group.Do("refresh", func() (any, error) {
		return m.doRefresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		m.logger.Debug("reused in-flight token refresh")
	}
	return v.(*Credential).Token(), nil
}

func (m *Manager) doRefresh(ctx context.Context) (*Credential, error) {
	m.mu.Lock()
	cred := m.cred
	m.mu.Unlock()

	// A caller that queued behind a completed refresh sees the fresh
	// credential here and skips the exchange.
	if cred.Status(m.now()) == StatusValid {
		return cred, nil
	}

	start := m.now()
	tok, err := m.config.TokenSource(ctx, cred.Token()).Token()
	if m.onRefresh != nil {
		m.onRefresh(err)
	}
	if err != nil {
		m.logger.Warn("token refresh failed", logging.Err(err))
		return nil, fault.Wrap(fault.KindRefreshFailed, err,
			"token refresh was rejected; run `drivescout auth` to re-authorize")
	}

	next := FromToken(tok, cred, cred.Scopes)
	if err := m.store.Save(next); err != nil {
		// The new token is usable either way; losing the write costs a
		// refresh on next startup, not correctness.
		m.logger.Warn("failed to persist refreshed credential", logging.Err(err))
	}

	m.mu.Lock()
	m.cred = next
	m.mu.Unlock()

	m.logger.Debug("refreshed access token",
		slog.Duration(logging.KeyDuration, time.Since(start)),
		slog.Time("expiry", next.Expiry),
		slog.String("access_token", logging.SanitizeToken(next.AccessToken)))
	return next, nil
}

// authorize runs the interactive flow via the injected prompter and persists
// the result. Serialized through the same single-flight group so concurrent
// callers share one consent flow.
func (m *Manager) authorize(ctx context.Context) (*oauth2.Token, error) {
	v, err, _ := m.group.Do("authorize", func() (any, error) {
		cred, err := m.prompter.ObtainCredential(ctx)
		if err != nil {
			return nil, fault.Wrap(fault.KindNoCredential, err, "interactive authorization failed")
		}
		if err := m.store.Save(cred); err != nil {
			return nil, fault.Wrap(fault.KindNoCredential, err, "failed to persist new credential")
		}
		m.mu.Lock()
		m.cred = cred
		m.loaded = true
		m.mu.Unlock()
		return cred, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Credential).Token(), nil
}

// managerTokenSource adapts the manager to oauth2.TokenSource.
type managerTokenSource struct {
	ctx context.Context
	m   *Manager
}

func (ts *managerTokenSource) Token() (*oauth2.Token, error) {
	return ts.m.Token(ts.ctx)
}
