package ports

import (
	"context"

	"github.com/goganux/texas-career-path-explorer/pkg/domain"
)

// SessionStore defines the interface for persisting explorer sessions.
// It lets stateless surfaces (HTTP, MCP) drive one explorer across requests.
type SessionStore interface {
	// Save persists the session under its SessionID.
	Save(ctx context.Context, session *domain.ExplorerSession) error

	// Load retrieves the session for a given ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.ExplorerSession, error)

	// Delete removes the session for a given ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of stored sessions.
	List(ctx context.Context) ([]string, error)
}
