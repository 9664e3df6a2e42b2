package ports

import (
	"context"

	"github.com/goganux/texas-career-path-explorer/pkg/domain"
)

// PathwayRepository is the node store provider.
// Implementations hand out value snapshots: callers may not observe later
// writes through a previously returned NodeSet, and writes to a returned
// NodeSet never reach the repository.
type PathwayRepository interface {
	// Get returns a single node by id.
	// Returns domain.ErrNodeNotFound if the id is unknown.
	Get(ctx context.Context, id int) (domain.PathwayNode, error)

	// List returns the interest's nodes grouped by column.
	// An interest with no nodes yields an empty NodeSet, not an error.
	List(ctx context.Context, interestID int) (domain.NodeSet, error)

	// Upsert inserts the node (assigning an id when ID is 0) or replaces it.
	Upsert(ctx context.Context, node domain.PathwayNode) (domain.PathwayNode, error)
}

// PathwayLister enumerates every stored node across interests.
// Used by tooling such as graph validation; the engine never needs it.
// Sources that skip undecodable records return the decoded nodes together
// with the joined *domain.DocumentError values.
type PathwayLister interface {
	All(ctx context.Context) ([]domain.PathwayNode, error)
}

// CatalogRepository serves the dashboard records around the pathway graph.
type CatalogRepository interface {
	ListInterests(ctx context.Context) ([]domain.Interest, error)
	GetInterest(ctx context.Context, id int) (domain.Interest, error)

	GetStudent(ctx context.Context, id int) (domain.Student, error)

	// GetProgress returns domain.ErrProgressNotFound when the pair has no record.
	GetProgress(ctx context.Context, studentID, interestID int) (domain.Progress, error)
	UpsertProgress(ctx context.Context, progress domain.Progress) (domain.Progress, error)

	ListSimilarPathways(ctx context.Context, interestID int) ([]domain.SimilarPathway, error)
}
