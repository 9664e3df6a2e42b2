package dsl

import (
	"errors"
	"fmt"

	"github.com/goganux/texas-career-path-explorer/pkg/adapters/memory"
	"github.com/goganux/texas-career-path-explorer/pkg/domain"
)

// Builder collects the nodes of one career interest.
type Builder struct {
	interestID int
	order      []int
	nodes      map[int]*NodeBuilder
}

// New creates a builder for interestID.
func New(interestID int) *Builder {
	return &Builder{
		interestID: interestID,
		nodes:      make(map[int]*NodeBuilder),
	}
}

// Course adds a course node.
func (b *Builder) Course(id int, title string) *NodeBuilder {
	return b.add(id, domain.PathwayCourse, title, domain.StatusAvailable)
}

// Certification adds a certification node.
func (b *Builder) Certification(id int, title string) *NodeBuilder {
	return b.add(id, domain.PathwayCertification, title, domain.StatusAvailable)
}

// Major adds a major node.
func (b *Builder) Major(id int, title string) *NodeBuilder {
	return b.add(id, domain.PathwayMajor, title, domain.StatusRecommended)
}

// Career adds a career node.
func (b *Builder) Career(id int, title string) *NodeBuilder {
	return b.add(id, domain.PathwayCareer, title, domain.StatusOption)
}

// add registers a node. Re-adding an id returns the existing builder unchanged.
func (b *Builder) add(id int, t domain.PathwayType, title string, status domain.Status) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node: domain.PathwayNode{
			ID:          id,
			InterestID:  b.interestID,
			PathwayType: t,
			Title:       title,
			Status:      status,
		},
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Nodes returns the nodes in the order they were added.
func (b *Builder) Nodes() []domain.PathwayNode {
	out := make([]domain.PathwayNode, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.nodes[id].Build())
	}
	return out
}

// Build validates every node and groups them into columns.
func (b *Builder) Build() (domain.NodeSet, error) {
	nodes := b.Nodes()
	var errs []error
	for _, n := range nodes {
		if err := n.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return domain.NodeSet{}, err
	}
	return domain.Partition(b.interestID, nodes), nil
}

// Repository loads the nodes into an in-memory pathway repository.
func (b *Builder) Repository() (*memory.Repository, error) {
	repo, err := memory.NewFromNodes(b.Nodes()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory repository: %w", err)
	}
	return repo, nil
}
