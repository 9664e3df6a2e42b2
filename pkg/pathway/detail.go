package pathway

import "github.com/goganux/texas-career-path-explorer/pkg/domain"

// DetailView is the collaborator that presents course, certification and
// major details. The engine hands the node over and is done with it.
type DetailView interface {
	OpenDetail(node domain.PathwayNode)
}

// DetailViewFunc adapts a function to DetailView.
type DetailViewFunc func(node domain.PathwayNode)

// OpenDetail calls f(node).
func (f DetailViewFunc) OpenDetail(node domain.PathwayNode) {
	f(node)
}

type noopDetailView struct{}

func (noopDetailView) OpenDetail(domain.PathwayNode) {}
