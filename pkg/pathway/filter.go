package pathway

import (
	"slices"

	"github.com/goganux/texas-career-path-explorer/pkg/domain"
)

// Filter is a multi-select predicate over node status.
// It never interacts with highlighting: a node can be active and filtered out at once.
type Filter struct {
	active map[domain.Status]struct{}
}

// NewFilter creates a filter with the given statuses active.
func NewFilter(statuses ...domain.Status) *Filter {
	f := &Filter{active: make(map[domain.Status]struct{}, len(statuses))}
	for _, s := range statuses {
		f.active[s] = struct{}{}
	}
	return f
}

// Toggle adds the status if absent and removes it if present.
// It returns whether the status is active afterwards.
func (f *Filter) Toggle(status domain.Status) bool {
	if _, ok := f.active[status]; ok {
		delete(f.active, status)
		return false
	}
	f.active[status] = struct{}{}
	return true
}

// Add activates status; already active statuses are left alone.
func (f *Filter) Add(status domain.Status) {
	f.active[status] = struct{}{}
}

// Clear empties the active set.
func (f *Filter) Clear() {
	f.active = make(map[domain.Status]struct{})
}

// Contains reports whether status is active.
func (f *Filter) Contains(status domain.Status) bool {
	_, ok := f.active[status]
	return ok
}

// Len is the number of active statuses.
func (f *Filter) Len() int {
	return len(f.active)
}

// Active lists the active statuses in filter-menu order, followed by any
// unknown values sorted lexically.
func (f *Filter) Active() []domain.Status {
	out := make([]domain.Status, 0, len(f.active))
	for _, s := range domain.Statuses {
		if _, ok := f.active[s]; ok {
			out = append(out, s)
		}
	}
	if len(out) == len(f.active) {
		return out
	}
	var extra []domain.Status
	for s := range f.active {
		if !s.Valid() {
			extra = append(extra, s)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

// State returns the serializable filter state.
func (f *Filter) State() domain.FilterState {
	return domain.FilterState{ActiveStatuses: f.Active()}
}

// Apply returns the nodes whose status is active, preserving order.
// With no active statuses the input slice itself is returned.
func (f *Filter) Apply(nodes []domain.PathwayNode) []domain.PathwayNode {
	if len(f.active) == 0 {
		return nodes
	}
	out := make([]domain.PathwayNode, 0, len(nodes))
	for _, n := range nodes {
		if _, ok := f.active[n.Status]; ok {
			out = append(out, n)
		}
	}
	return out
}

// ApplyFilter is the stateless form of Filter.Apply.
func ApplyFilter(nodes []domain.PathwayNode, activeStatuses []domain.Status) []domain.PathwayNode {
	return NewFilter(activeStatuses...).Apply(nodes)
}
