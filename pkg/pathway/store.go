package pathway

import "github.com/goganux/texas-career-path-explorer/pkg/domain"

// NodeStore holds the node collection of the active interest.
// It is built from a snapshot and never modified afterwards.
type NodeStore struct {
	interestID int
	nodes      []domain.PathwayNode
	index      map[int]int
}

// NewNodeStore copies the set into a new store.
// When ids collide the first node wins the index; all nodes stay listed.
func NewNodeStore(set domain.NodeSet) *NodeStore {
	nodes := set.Clone().All()
	index := make(map[int]int, len(nodes))
	for i, n := range nodes {
		if _, dup := index[n.ID]; !dup {
			index[n.ID] = i
		}
	}
	return &NodeStore{
		interestID: set.InterestID,
		nodes:      nodes,
		index:      index,
	}
}

// InterestID is the interest this store was loaded for.
func (s *NodeStore) InterestID() int {
	return s.interestID
}

// All returns the nodes in load order. The slice must not be modified.
func (s *NodeStore) All() []domain.PathwayNode {
	return s.nodes
}

// Candidates returns the course, certification and major nodes, minus excludeID.
func (s *NodeStore) Candidates(excludeID int) []domain.PathwayNode {
	out := make([]domain.PathwayNode, 0, len(s.nodes))
	for _, n := range s.nodes {
		if n.ID == excludeID || !n.PathwayType.Valid() || n.PathwayType.Highlightable() {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Lookup finds a node by id.
func (s *NodeStore) Lookup(id int) (domain.PathwayNode, bool) {
	i, ok := s.index[id]
	if !ok {
		return domain.PathwayNode{}, false
	}
	return s.nodes[i], true
}

// Contains reports whether the id belongs to this store.
func (s *NodeStore) Contains(id int) bool {
	_, ok := s.index[id]
	return ok
}

// Len is the number of nodes held.
func (s *NodeStore) Len() int {
	return len(s.nodes)
}
