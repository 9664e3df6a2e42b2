package domain

// NodeSet is the snapshot of an interest's pathway graph, one slice per column.
// It is the value handed over by the node store provider.
type NodeSet struct {
	InterestID     int           `json:"interestId"`
	Courses        []PathwayNode `json:"courses"`
	Certifications []PathwayNode `json:"certifications"`
	Majors         []PathwayNode `json:"majors"`
	Careers        []PathwayNode `json:"careers"`
}

// All returns every node in column order (courses, certifications, majors, careers).
func (s NodeSet) All() []PathwayNode {
	all := make([]PathwayNode, 0, s.Len())
	all = append(all, s.Courses...)
	all = append(all, s.Certifications...)
	all = append(all, s.Majors...)
	all = append(all, s.Careers...)
	return all
}

// Len is the total node count.
func (s NodeSet) Len() int {
	return len(s.Courses) + len(s.Certifications) + len(s.Majors) + len(s.Careers)
}

// Clone deep-copies the set.
func (s NodeSet) Clone() NodeSet {
	return NodeSet{
		InterestID:     s.InterestID,
		Courses:        cloneNodes(s.Courses),
		Certifications: cloneNodes(s.Certifications),
		Majors:         cloneNodes(s.Majors),
		Careers:        cloneNodes(s.Careers),
	}
}

// Partition groups nodes into columns by their PathwayType, preserving order.
// Nodes of an unknown type are dropped.
func Partition(interestID int, nodes []PathwayNode) NodeSet {
	set := NodeSet{
		InterestID:     interestID,
		Courses:        []PathwayNode{},
		Certifications: []PathwayNode{},
		Majors:         []PathwayNode{},
		Careers:        []PathwayNode{},
	}
	for _, n := range nodes {
		switch n.PathwayType {
		case PathwayCourse:
			set.Courses = append(set.Courses, n)
		case PathwayCertification:
			set.Certifications = append(set.Certifications, n)
		case PathwayMajor:
			set.Majors = append(set.Majors, n)
		case PathwayCareer:
			set.Careers = append(set.Careers, n)
		}
	}
	return set
}

func cloneNodes(nodes []PathwayNode) []PathwayNode {
	if nodes == nil {
		return []PathwayNode{}
	}
	out := make([]PathwayNode, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}
