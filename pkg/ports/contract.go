package ports

import (
	"context"
	"testing"
	"time"

	"github.com/goganux/texas-career-path-explorer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore implementation
// adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		session := domain.NewExplorerSession(sessionID, 2)
		career := 12
		session.Selection.SelectedCareerID = &career
		session.Selection.HighlightedIDs = []int{5, 6, 17}
		session.Filter.ActiveStatuses = []domain.Status{domain.StatusCompleted, domain.StatusInProgress}

		err := store.Save(ctx, session)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.SessionID)
		assert.Equal(t, 2, loaded.InterestID)
		require.NotNil(t, loaded.Selection.SelectedCareerID)
		assert.Equal(t, 12, *loaded.Selection.SelectedCareerID)
		assert.Equal(t, []int{5, 6, 17}, loaded.Selection.HighlightedIDs)
		assert.Equal(t, []domain.Status{domain.StatusCompleted, domain.StatusInProgress}, loaded.Filter.ActiveStatuses)
	})

	t.Run("Load Is Isolated From Caller Mutation", func(t *testing.T) {
		session := domain.NewExplorerSession(sessionID+"-iso", 1)
		session.Selection.HighlightedIDs = []int{1}
		require.NoError(t, store.Save(ctx, session))
		defer func() { _ = store.Delete(ctx, session.SessionID) }()

		session.Selection.HighlightedIDs[0] = 99

		loaded, err := store.Load(ctx, session.SessionID)
		require.NoError(t, err)
		assert.Equal(t, []int{1}, loaded.Selection.HighlightedIDs)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, domain.NewExplorerSession(sessionID, 1))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, domain.NewExplorerSession(id1, 1))
		_ = store.Save(ctx, domain.NewExplorerSession(id2, 3))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
