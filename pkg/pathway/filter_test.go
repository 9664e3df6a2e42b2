package pathway_test

import (
	"testing"

	"github.com/goganux/texas-career-path-explorer/pkg/domain"
	"github.com/goganux/texas-career-path-explorer/pkg/pathway"
	"github.com/stretchr/testify/assert"
)

func ids(nodes []domain.PathwayNode) []int {
	out := make([]int, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

// Scenario C: only the active statuses survive, in input order.
func TestApplyFilter_KeepsActiveInOrder(t *testing.T) {
	nodes := []domain.PathwayNode{
		course(1, "A", domain.StatusCompleted),
		course(2, "B", domain.StatusAvailable),
		course(3, "C", domain.StatusInProgress),
		course(4, "D", domain.StatusOption),
	}

	got := pathway.ApplyFilter(nodes, []domain.Status{domain.StatusCompleted, domain.StatusInProgress})

	assert.Equal(t, []int{1, 3}, ids(got))
}

func TestApplyFilter_EmptyIsIdentity(t *testing.T) {
	nodes := roboticsSet().All()

	assert.Equal(t, nodes, pathway.ApplyFilter(nodes, nil))
	assert.Equal(t, nodes, pathway.ApplyFilter(nodes, []domain.Status{}))
}

func TestApplyFilter_Exclusivity(t *testing.T) {
	nodes := roboticsSet().All()
	active := []domain.Status{domain.StatusAvailable, domain.StatusEligible}

	got := pathway.ApplyFilter(nodes, active)

	for _, n := range got {
		assert.Contains(t, active, n.Status, "node %d leaked through the filter", n.ID)
	}
	var expected int
	for _, n := range nodes {
		if n.Status == domain.StatusAvailable || n.Status == domain.StatusEligible {
			expected++
		}
	}
	assert.Len(t, got, expected)
}

func TestApplyFilter_NoMatches(t *testing.T) {
	nodes := []domain.PathwayNode{course(1, "A", domain.StatusCompleted)}

	got := pathway.ApplyFilter(nodes, []domain.Status{domain.StatusOption})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter_Toggle(t *testing.T) {
	f := pathway.NewFilter()

	assert.True(t, f.Toggle(domain.StatusCompleted))
	assert.True(t, f.Toggle(domain.StatusOption))
	assert.True(t, f.Contains(domain.StatusCompleted))
	assert.Equal(t, 2, f.Len())

	assert.False(t, f.Toggle(domain.StatusCompleted))
	assert.False(t, f.Contains(domain.StatusCompleted))
	assert.Equal(t, []domain.Status{domain.StatusOption}, f.Active())

	f.Add(domain.StatusOption)
	assert.Equal(t, 1, f.Len(), "Add is idempotent")

	f.Clear()
	assert.Empty(t, f.Active())
}

func TestFilter_Active_MenuOrder(t *testing.T) {
	f := pathway.NewFilter(domain.StatusOption, "zeta", domain.StatusCompleted, "alpha", domain.StatusEligible)

	assert.Equal(t, []domain.Status{
		domain.StatusCompleted,
		domain.StatusEligible,
		domain.StatusOption,
		"alpha",
		"zeta",
	}, f.Active())
}
