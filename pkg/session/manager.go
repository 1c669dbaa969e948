package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/algoscope/internal/logging"
	"github.com/aretw0/algoscope/pkg/domain"
	"github.com/aretw0/algoscope/pkg/editor"
	"github.com/aretw0/algoscope/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed replica can hold a workspace lock.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates workspace access, serializing read-modify-write cycles per workspace.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.WorkspaceStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	now     func() time.Time
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

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithClock replaces time.Now for UpdatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a workspace Manager over the given store.
func NewManager(store ports.WorkspaceStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		now:     time.Now,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST lock entry.mu, and then call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// Load retrieves an existing workspace.
func (m *Manager) Load(ctx context.Context, id string) (*domain.Workspace, error) {
	var ws *domain.Workspace
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		ws, err = m.store.Load(ctx, id)
		return err
	})
	return ws, err
}

// LoadOrCreate loads a workspace, creating and persisting an empty one if it does not exist.
func (m *Manager) LoadOrCreate(ctx context.Context, id string) (*domain.Workspace, error) {
	var ws *domain.Workspace
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		ws, err = m.loadOrCreate(ctx, id)
		return err
	})
	return ws, err
}

func (m *Manager) loadOrCreate(ctx context.Context, id string) (*domain.Workspace, error) {
	ws, err := m.store.Load(ctx, id)
	if err == nil {
		return ws, nil
	}
	if !errors.Is(err, domain.ErrWorkspaceNotFound) {
		return nil, fmt.Errorf("failed to check workspace existence: %w", err)
	}

	ws = domain.NewWorkspace(id)
	ws.UpdatedAt = m.now()
	if err := m.store.Save(ctx, ws); err != nil {
		return nil, fmt.Errorf("failed to initialize workspace: %w", err)
	}
	m.logger.Debug("workspace created", "workspace_id", id)
	return ws, nil
}

// Save stamps and persists the workspace.
func (m *Manager) Save(ctx context.Context, ws *domain.Workspace) error {
	return m.WithLock(ctx, ws.ID, func(ctx context.Context) error {
		ws.UpdatedAt = m.now()
		return m.store.Save(ctx, ws)
	})
}

// Delete removes the workspace from the store.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Delete(ctx, id)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying workspace store.
func (m *Manager) Store() ports.WorkspaceStore {
	return m.store
}

// Edit loads (or creates) the workspace, rebuilds an editor over it, applies fn and
// persists the result. Nothing is saved when fn fails. fn may also change the fields the
// editor does not own (algorithm, target, goal, heuristic) through ws.
func (m *Manager) Edit(ctx context.Context, id string, fn func(ws *domain.Workspace, ed *editor.Editor) error, opts ...editor.Option) (*domain.Workspace, error) {
	var out *domain.Workspace
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		ws, err := m.loadOrCreate(ctx, id)
		if err != nil {
			return err
		}
		ed, err := editor.FromWorkspace(ws, opts...)
		if err != nil {
			return fmt.Errorf("restore workspace %s: %w", id, err)
		}
		if err := fn(ws, ed); err != nil {
			return err
		}

		next := ed.Workspace(id)
		next.Algorithm = ws.Algorithm
		next.Input.Target = ws.Input.Target
		next.Input.Goal = ws.Input.Goal
		next.Input.Heuristic = ws.Input.Heuristic
		if !next.Input.Graph.HasNode(next.Input.Goal) {
			next.Input.Goal = ""
		}
		next.UpdatedAt = m.now()

		if err := m.store.Save(ctx, next); err != nil {
			return fmt.Errorf("save workspace %s: %w", id, err)
		}
		out = next
		return nil
	})
	return out, err
}

// WithLock executes fn while holding the lock for the workspace.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"workspace_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
