package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/goganux/texas-career-path-explorer/pkg/domain"
)

type progressKey struct {
	studentID  int
	interestID int
}

// Repository implements ports.PathwayRepository and ports.CatalogRepository in memory.
// Safe for concurrent use. Values are copied on the way in and out.
type Repository struct {
	mu sync.RWMutex

	nodes  map[int]domain.PathwayNode
	order  []int
	nextID int

	interests []domain.Interest
	students  map[int]domain.Student

	progress       map[progressKey]domain.Progress
	nextProgressID int

	similar []domain.SimilarPathway
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{
		nodes:          make(map[int]domain.PathwayNode),
		nextID:         1,
		students:       make(map[int]domain.Student),
		progress:       make(map[progressKey]domain.Progress),
		nextProgressID: 1,
	}
}

// NewFromSeed creates a repository holding the seed's records.
// Nodes keep their ids; nodes without one are assigned the next free id.
func NewFromSeed(seed Seed) (*Repository, error) {
	r := NewRepository()
	ctx := context.Background()

	r.interests = append(r.interests, seed.Interests...)
	for _, s := range seed.Students {
		r.students[s.ID] = s
	}
	for _, n := range seed.Pathways {
		if _, err := r.Upsert(ctx, n); err != nil {
			return nil, err
		}
	}
	for _, p := range seed.Progress {
		if _, err := r.UpsertProgress(ctx, p); err != nil {
			return nil, err
		}
	}
	r.similar = append(r.similar, seed.SimilarPathways...)
	return r, nil
}

// NewSeeded creates a repository preloaded with DefaultSeed.
func NewSeeded() (*Repository, error) {
	seed, err := DefaultSeed()
	if err != nil {
		return nil, err
	}
	return NewFromSeed(seed)
}

// NewFromNodes creates a repository from domain objects.
// Useful for tests that only need a pathway graph.
func NewFromNodes(nodes ...domain.PathwayNode) (*Repository, error) {
	return NewFromSeed(Seed{Pathways: nodes})
}

// Get returns a node by id.
func (r *Repository) Get(ctx context.Context, id int) (domain.PathwayNode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.nodes[id]
	if !ok {
		return domain.PathwayNode{}, fmt.Errorf("node %d: %w", id, domain.ErrNodeNotFound)
	}
	return n.Clone(), nil
}

// List returns the interest's nodes grouped by column, in insertion order.
func (r *Repository) List(ctx context.Context, interestID int) (domain.NodeSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nodes := make([]domain.PathwayNode, 0)
	for _, id := range r.order {
		n := r.nodes[id]
		if n.InterestID == interestID {
			nodes = append(nodes, n.Clone())
		}
	}
	return domain.Partition(interestID, nodes), nil
}

// All returns every node in insertion order, regardless of interest.
func (r *Repository) All(ctx context.Context) ([]domain.PathwayNode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nodes := make([]domain.PathwayNode, 0, len(r.order))
	for _, id := range r.order {
		nodes = append(nodes, r.nodes[id].Clone())
	}
	return nodes, nil
}

// Upsert stores the node, assigning an id when ID is 0.
func (r *Repository) Upsert(ctx context.Context, node domain.PathwayNode) (domain.PathwayNode, error) {
	if err := node.Validate(); err != nil {
		return domain.PathwayNode{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if node.ID == 0 {
		node.ID = r.nextID
	}
	if node.ID >= r.nextID {
		r.nextID = node.ID + 1
	}
	if _, exists := r.nodes[node.ID]; !exists {
		r.order = append(r.order, node.ID)
	}
	r.nodes[node.ID] = node.Clone()
	return node.Clone(), nil
}

// ListInterests returns every career interest.
func (r *Repository) ListInterests(ctx context.Context) ([]domain.Interest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Interest{}, r.interests...), nil
}

// GetInterest returns a career interest by id.
func (r *Repository) GetInterest(ctx context.Context, id int) (domain.Interest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, in := range r.interests {
		if in.ID == id {
			return in, nil
		}
	}
	return domain.Interest{}, fmt.Errorf("interest %d: %w", id, domain.ErrInterestNotFound)
}

// GetStudent returns a student profile by id.
func (r *Repository) GetStudent(ctx context.Context, id int) (domain.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.students[id]
	if !ok {
		return domain.Student{}, fmt.Errorf("student %d: %w", id, domain.ErrStudentNotFound)
	}
	if s.ImageURL != nil {
		url := *s.ImageURL
		s.ImageURL = &url
	}
	return s, nil
}

// GetProgress returns the student's progress on an interest.
func (r *Repository) GetProgress(ctx context.Context, studentID, interestID int) (domain.Progress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.progress[progressKey{studentID, interestID}]
	if !ok {
		return domain.Progress{}, fmt.Errorf("student %d interest %d: %w", studentID, interestID, domain.ErrProgressNotFound)
	}
	return cloneProgress(p), nil
}

// UpsertProgress creates or updates the record for the (student, interest) pair.
// An existing record keeps its id; only percentage and steps are replaced.
func (r *Repository) UpsertProgress(ctx context.Context, progress domain.Progress) (domain.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := progressKey{progress.StudentID, progress.InterestID}
	if existing, ok := r.progress[key]; ok {
		existing.Percentage = progress.Percentage
		existing.CompletedSteps = progress.CompletedSteps
		r.progress[key] = cloneProgress(existing)
		return cloneProgress(existing), nil
	}

	if progress.ID == 0 {
		progress.ID = r.nextProgressID
	}
	if progress.ID >= r.nextProgressID {
		r.nextProgressID = progress.ID + 1
	}
	r.progress[key] = cloneProgress(progress)
	return cloneProgress(progress), nil
}

// ListSimilarPathways returns the suggestions attached to an interest.
func (r *Repository) ListSimilarPathways(ctx context.Context, interestID int) ([]domain.SimilarPathway, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.SimilarPathway, 0)
	for _, s := range r.similar {
		if s.InterestID == interestID {
			s.Tags = append([]string(nil), s.Tags...)
			out = append(out, s)
		}
	}
	return out, nil
}

func cloneProgress(p domain.Progress) domain.Progress {
	p.CompletedSteps = append([]domain.ProgressItem(nil), p.CompletedSteps...)
	return p
}
