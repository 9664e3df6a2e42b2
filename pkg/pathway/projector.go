package pathway

import "github.com/goganux/texas-career-path-explorer/pkg/domain"

// ActivePath exposes the highlight state the projector needs.
type ActivePath interface {
	IsActive(id int) bool
	Selected() (int, bool)
}

// ProjectedNode is a node decorated with its view state.
type ProjectedNode struct {
	domain.PathwayNode
	IsActivePath bool `json:"isActivePath"`
	// Dimmed marks nodes off the active path while a career is selected.
	Dimmed bool `json:"dimmed"`
}

// View is the renderable output: one filtered column per pathway type.
type View struct {
	InterestID       int             `json:"interestId"`
	SelectedCareerID *int            `json:"selectedCareerId,omitempty"`
	ActiveFilters    []domain.Status `json:"activeFilters"`
	Courses          []ProjectedNode `json:"courses"`
	Certifications   []ProjectedNode `json:"certifications"`
	Majors           []ProjectedNode `json:"majors"`
	Careers          []ProjectedNode `json:"careers"`
}

// Column returns the column for a pathway type, or nil for unknown types.
func (v View) Column(t domain.PathwayType) []ProjectedNode {
	switch t {
	case domain.PathwayCourse:
		return v.Courses
	case domain.PathwayCertification:
		return v.Certifications
	case domain.PathwayMajor:
		return v.Majors
	case domain.PathwayCareer:
		return v.Careers
	}
	return nil
}

// Len is the number of projected nodes across all columns.
func (v View) Len() int {
	return len(v.Courses) + len(v.Certifications) + len(v.Majors) + len(v.Careers)
}

// Project partitions the store by pathway type, filters each column
// independently and decorates nodes with their active-path state.
// Relative order within a column follows the store. Inputs are not modified.
func Project(store *NodeStore, active ActivePath, filter *Filter) View {
	selectedID, careerSelected := active.Selected()

	view := View{
		InterestID:     store.InterestID(),
		ActiveFilters:  filter.Active(),
		Courses:        []ProjectedNode{},
		Certifications: []ProjectedNode{},
		Majors:         []ProjectedNode{},
		Careers:        []ProjectedNode{},
	}
	if careerSelected {
		view.SelectedCareerID = &selectedID
	}

	buckets := domain.Partition(store.InterestID(), store.All())
	decorate := func(nodes []domain.PathwayNode) []ProjectedNode {
		filtered := filter.Apply(nodes)
		out := make([]ProjectedNode, 0, len(filtered))
		for _, n := range filtered {
			isActive := active.IsActive(n.ID)
			out = append(out, ProjectedNode{
				PathwayNode:  n.Clone(),
				IsActivePath: isActive,
				Dimmed:       careerSelected && !isActive,
			})
		}
		return out
	}

	view.Courses = decorate(buckets.Courses)
	view.Certifications = decorate(buckets.Certifications)
	view.Majors = decorate(buckets.Majors)
	view.Careers = decorate(buckets.Careers)
	return view
}
