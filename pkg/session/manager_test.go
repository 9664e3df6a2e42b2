package session_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/goganux/texas-career-path-explorer/pkg/adapters/memory"
	"github.com/goganux/texas-career-path-explorer/pkg/domain"
	"github.com/goganux/texas-career-path-explorer/pkg/pathway"
	"github.com/goganux/texas-career-path-explorer/pkg/ports"
	"github.com/goganux/texas-career-path-explorer/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	data map[string]*domain.ExplorerSession
	mu   sync.Mutex
}

func (s *SlowStore) Save(ctx context.Context, session *domain.ExplorerSession) error {
	time.Sleep(5 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string]*domain.ExplorerSession)
	}
	s.data[session.SessionID] = session.Snapshot()
	return nil
}

func (s *SlowStore) Load(ctx context.Context, sessionID string) (*domain.ExplorerSession, error) {
	time.Sleep(5 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.data[sessionID]; ok {
		return session.Snapshot(), nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *SlowStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

func newRepo(t *testing.T) ports.PathwayRepository {
	t.Helper()
	repo, err := memory.NewFromNodes(
		domain.PathwayNode{ID: 1, InterestID: 1, PathwayType: domain.PathwayCourse, Title: "Introduction to Robotics", Status: domain.StatusCompleted},
		domain.PathwayNode{ID: 2, InterestID: 1, PathwayType: domain.PathwayCourse, Title: "Engineering Principles II", Status: domain.StatusInProgress},
		domain.PathwayNode{ID: 3, InterestID: 1, PathwayType: domain.PathwayCertification, Title: "Arduino Certification", Status: domain.StatusAvailable},
		domain.PathwayNode{
			ID: 4, InterestID: 1, PathwayType: domain.PathwayCareer, Title: "Robotics Engineer", Status: domain.StatusRecommended,
			AdditionalInfo: &domain.AdditionalInfo{RequiredSteps: []domain.RequiredStep{{ID: 2, Name: "Engineering Principles"}}},
		},
		domain.PathwayNode{ID: 10, InterestID: 2, PathwayType: domain.PathwayCourse, Title: "Culinary Foundations", Status: domain.StatusAvailable},
	)
	require.NoError(t, err)
	return repo
}

func sequentialIDs() func() string {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("sess-%d", n)
	}
}

func TestManager_OpenSelectReset(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(memory.NewStore(), newRepo(t), session.WithIDGenerator(sequentialIDs()))

	opened, err := mgr.Open(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", opened.Session.SessionID)
	assert.Equal(t, 4, opened.View.Len())
	assert.True(t, opened.Session.Selection.Idle())

	sel, err := mgr.Select(ctx, "sess-1", 4)
	require.NoError(t, err)
	assert.Equal(t, pathway.OutcomeHighlighted, sel.Outcome)
	assert.Equal(t, []int{2}, sel.Session.Selection.HighlightedIDs)

	// The highlight survives the round trip through the store.
	viewed, err := mgr.View(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, viewed.View.SelectedCareerID)
	assert.Equal(t, 4, *viewed.View.SelectedCareerID)
	assert.True(t, viewed.View.Courses[1].IsActivePath)

	detail, err := mgr.Select(ctx, "sess-1", 3)
	require.NoError(t, err)
	assert.Equal(t, pathway.OutcomeDetail, detail.Outcome)
	assert.Equal(t, "Arduino Certification", detail.Node.Title)
	assert.Equal(t, []int{2}, detail.Session.Selection.HighlightedIDs, "detail clicks keep the selection")

	reset, err := mgr.Reset(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, reset.Session.Selection.Idle())
}

func TestManager_SelectUnknownNode(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(memory.NewStore(), newRepo(t), session.WithIDGenerator(sequentialIDs()))
	_, err := mgr.Open(ctx, 1)
	require.NoError(t, err)

	// Node 10 exists, but in another interest.
	_, err = mgr.Select(ctx, "sess-1", 10)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
}

func TestManager_FiltersAndInterestChange(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(memory.NewStore(), newRepo(t), session.WithIDGenerator(sequentialIDs()))
	_, err := mgr.Open(ctx, 1)
	require.NoError(t, err)

	res, active, err := mgr.ToggleFilter(ctx, "sess-1", domain.StatusAvailable)
	require.NoError(t, err)
	assert.True(t, active)
	assert.Equal(t, 1, res.View.Len())

	_, _, err = mgr.ToggleFilter(ctx, "sess-1", "bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = mgr.Select(ctx, "sess-1", 4)
	require.NoError(t, err)

	changed, err := mgr.ChangeInterest(ctx, "sess-1", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, changed.Session.InterestID)
	assert.True(t, changed.Session.Selection.Idle())
	assert.Empty(t, changed.Session.Filter.ActiveStatuses)
	assert.Equal(t, 1, changed.View.Len())

	_, _, err = mgr.ToggleFilter(ctx, "sess-1", domain.StatusOption)
	require.NoError(t, err)
	cleared, err := mgr.ClearFilters(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, cleared.View.ActiveFilters)
}

func TestManager_MissingSession(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(memory.NewStore(), newRepo(t))

	_, err := mgr.View(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = mgr.Reset(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, mgr.Delete(ctx, "ghost"), domain.ErrSessionNotFound)
}

func TestManager_DeleteRemovesSession(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(memory.NewStore(), newRepo(t), session.WithIDGenerator(sequentialIDs()))
	_, err := mgr.Open(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, mgr.Delete(ctx, "sess-1"))

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestManager_FailedApplyDoesNotSave(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(memory.NewStore(), newRepo(t), session.WithIDGenerator(sequentialIDs()))
	_, err := mgr.Open(ctx, 1)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = mgr.Apply(ctx, "sess-1", func(_ context.Context, e *pathway.Engine) error {
		_, _ = e.ToggleFilter(domain.StatusCompleted)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	loaded, err := mgr.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, loaded.Filter.ActiveStatuses)
}

func TestManager_Locking(t *testing.T) {
	store := &SlowStore{}
	mgr := session.NewManager(store, newRepo(t), session.WithIDGenerator(sequentialIDs()))
	ctx := context.Background()

	_, err := mgr.Open(ctx, 1)
	require.NoError(t, err)

	// Each goroutine does read-modify-write on a different status.
	// Without per-session locking, concurrent toggles would overwrite each other.
	var wg sync.WaitGroup
	for _, status := range domain.Statuses {
		wg.Add(1)
		go func(s domain.Status) {
			defer wg.Done()
			_, _, err := mgr.ToggleFilter(ctx, "sess-1", s)
			assert.NoError(t, err)
		}(status)
	}
	wg.Wait()

	loaded, err := mgr.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, domain.Statuses, loaded.Filter.ActiveStatuses)
}

type countingLocker struct {
	mu      sync.Mutex
	locks   int
	unlocks int
	lockErr error
	lastTTL time.Duration
	// unlockErrs records ctx.Err() as seen by each unlock call.
	unlockErrs []error
}

func (l *countingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lockErr != nil {
		return nil, l.lockErr
	}
	l.locks++
	l.lastTTL = ttl
	return func(ctx context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.unlocks++
		l.unlockErrs = append(l.unlockErrs, ctx.Err())
		return nil
	}, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	ctx := context.Background()

	t.Run("Lock Is Paired With Unlock", func(t *testing.T) {
		locker := &countingLocker{}
		mgr := session.NewManager(memory.NewStore(), newRepo(t),
			session.WithIDGenerator(sequentialIDs()),
			session.WithLocker(locker),
			session.WithLockTTL(5*time.Second),
		)

		_, err := mgr.Open(ctx, 1)
		require.NoError(t, err)
		_, err = mgr.Reset(ctx, "sess-1")
		require.NoError(t, err)

		assert.Equal(t, 2, locker.locks)
		assert.Equal(t, 2, locker.unlocks)
		assert.Equal(t, 5*time.Second, locker.lastTTL)
	})

	t.Run("Unlock Survives Cancelled Request", func(t *testing.T) {
		locker := &countingLocker{}
		mgr := session.NewManager(memory.NewStore(), newRepo(t), session.WithLocker(locker))
		reqCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		err := mgr.WithLock(reqCtx, "sess-1", func(context.Context) error {
			cancel()
			return nil
		})
		require.NoError(t, err)

		require.Len(t, locker.unlockErrs, 1)
		assert.NoError(t, locker.unlockErrs[0], "unlock must not inherit the request cancellation")
	})

	t.Run("Lock Failure Aborts", func(t *testing.T) {
		locker := &countingLocker{lockErr: errors.New("redis down")}
		mgr := session.NewManager(memory.NewStore(), newRepo(t), session.WithLocker(locker))

		_, err := mgr.Open(ctx, 1)
		assert.ErrorContains(t, err, "failed to acquire distributed lock")
	})
}

func TestManager_HooksFireOncePerOperation(t *testing.T) {
	ctx := context.Background()
	var highlights int
	mgr := session.NewManager(memory.NewStore(), newRepo(t),
		session.WithIDGenerator(sequentialIDs()),
		session.WithHooks(domain.EngineHooks{
			OnHighlight: func(*domain.HighlightEvent) { highlights++ },
		}),
	)
	_, err := mgr.Open(ctx, 1)
	require.NoError(t, err)

	_, err = mgr.Select(ctx, "sess-1", 4)
	require.NoError(t, err)
	_, err = mgr.View(ctx, "sess-1")
	require.NoError(t, err)
	_, _, err = mgr.ToggleFilter(ctx, "sess-1", domain.StatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, 1, highlights, "restoring a session must not re-emit highlight events")
}
