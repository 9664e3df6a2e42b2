package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/goganux/texas-career-path-explorer/internal/logging"
	"github.com/goganux/texas-career-path-explorer/pkg/domain"
	"github.com/goganux/texas-career-path-explorer/pkg/pathway"
	"github.com/goganux/texas-career-path-explorer/pkg/ports"
	"github.com/google/uuid"
)

// DefaultLockTTL bounds how long a distributed session lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates explorer session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store ports.SessionStore
	repo  ports.PathwayRepository

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	hooks   domain.EngineHooks
	newID   func() string
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the expiry of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager and the engines it builds.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithHooks registers engine hooks on every engine the Manager builds.
func WithHooks(hooks domain.EngineHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// WithIDGenerator replaces the random session id source.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.newID = fn
	}
}

// NewManager creates a new Session Manager over a session store and a pathway repository.
func NewManager(store ports.SessionStore, repo ports.PathwayRepository, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		repo:    repo,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		newID:   uuid.NewString,
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return // Should not happen if paired correctly
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Result is the outcome of a session operation.
type Result struct {
	Session *domain.ExplorerSession `json:"session"`
	View    pathway.View            `json:"view"`
}

// Open starts a new explorer on interestID and persists it.
func (m *Manager) Open(ctx context.Context, interestID int) (Result, error) {
	sessionID := m.newID()
	var res Result
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		e, err := m.engine(ctx, interestID)
		if err != nil {
			return err
		}
		res, err = m.commit(ctx, sessionID, e)
		return err
	})
	if err != nil {
		return Result{}, err
	}
	m.logger.Info("Explorer session opened", "session_id", sessionID, "interest_id", interestID)
	return res, nil
}

// Load retrieves an existing session from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.ExplorerSession, error) {
	var session *domain.ExplorerSession
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		session, err = m.store.Load(ctx, sessionID)
		return err
	})
	return session, err
}

// View projects the session without modifying it.
func (m *Manager) View(ctx context.Context, sessionID string) (Result, error) {
	var res Result
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		session, e, err := m.restore(ctx, sessionID)
		if err != nil {
			return err
		}
		res = Result{Session: session, View: e.View()}
		return nil
	})
	return res, err
}

// Apply restores the session's engine, runs fn and persists the resulting state.
// Nothing is saved when fn fails.
func (m *Manager) Apply(ctx context.Context, sessionID string, fn func(ctx context.Context, e *pathway.Engine) error) (Result, error) {
	var res Result
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		_, e, err := m.restore(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := fn(ctx, e); err != nil {
			return err
		}
		res, err = m.commit(ctx, sessionID, e)
		return err
	})
	return res, err
}

// Selection is the result of Select.
type Selection struct {
	Result
	Node    domain.PathwayNode `json:"node"`
	Outcome pathway.Outcome    `json:"outcome"`
}

// Select clicks node nodeID in the session's explorer.
// Returns domain.ErrNodeNotFound when the node is not part of the session's interest.
func (m *Manager) Select(ctx context.Context, sessionID string, nodeID int) (Selection, error) {
	var sel Selection
	res, err := m.Apply(ctx, sessionID, func(_ context.Context, e *pathway.Engine) error {
		node, outcome, err := e.SelectByID(nodeID)
		sel.Node, sel.Outcome = node, outcome
		return err
	})
	if err != nil {
		return Selection{}, err
	}
	sel.Result = res
	return sel, nil
}

// Reset clears the highlight (background click).
func (m *Manager) Reset(ctx context.Context, sessionID string) (Result, error) {
	return m.Apply(ctx, sessionID, func(_ context.Context, e *pathway.Engine) error {
		e.ResetHighlights()
		return nil
	})
}

// ToggleFilter flips status in the session's filter.
func (m *Manager) ToggleFilter(ctx context.Context, sessionID string, status domain.Status) (Result, bool, error) {
	var active bool
	res, err := m.Apply(ctx, sessionID, func(_ context.Context, e *pathway.Engine) error {
		var err error
		active, err = e.ToggleFilter(status)
		return err
	})
	return res, active, err
}

// ClearFilters empties the session's filter.
func (m *Manager) ClearFilters(ctx context.Context, sessionID string) (Result, error) {
	return m.Apply(ctx, sessionID, func(_ context.Context, e *pathway.Engine) error {
		e.ClearFilters()
		return nil
	})
}

// ChangeInterest switches the session to another interest's node set.
func (m *Manager) ChangeInterest(ctx context.Context, sessionID string, interestID int) (Result, error) {
	return m.Apply(ctx, sessionID, func(ctx context.Context, e *pathway.Engine) error {
		set, err := m.repo.List(ctx, interestID)
		if err != nil {
			return fmt.Errorf("failed to list pathways for interest %d: %w", interestID, err)
		}
		e.ChangeInterest(set)
		return nil
	})
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		if _, err := m.store.Load(ctx, sessionID); err != nil {
			return err
		}
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying session store.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	// Distributed Locking
	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			// Release even when the request was cancelled mid-flight.
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

func (m *Manager) engine(ctx context.Context, interestID int) (*pathway.Engine, error) {
	set, err := m.repo.List(ctx, interestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pathways for interest %d: %w", interestID, err)
	}
	return pathway.NewEngine(set,
		pathway.WithLogger(m.logger),
		pathway.WithHooks(m.hooks),
	), nil
}

func (m *Manager) restore(ctx context.Context, sessionID string) (*domain.ExplorerSession, *pathway.Engine, error) {
	session, err := m.store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrSessionNotFound)
		}
		return nil, nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	e, err := m.engine(ctx, session.InterestID)
	if err != nil {
		return nil, nil, err
	}
	e.Restore(session)
	return session, e, nil
}

func (m *Manager) commit(ctx context.Context, sessionID string, e *pathway.Engine) (Result, error) {
	snap := e.Snapshot(sessionID)
	if err := m.store.Save(ctx, snap); err != nil {
		return Result{}, fmt.Errorf("failed to save session %s: %w", sessionID, err)
	}
	return Result{Session: snap, View: e.View()}, nil
}
