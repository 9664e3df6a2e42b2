package pathway_test

import (
	"testing"

	"github.com/goganux/texas-career-path-explorer/pkg/domain"
	"github.com/goganux/texas-career-path-explorer/pkg/pathway"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type columnState struct {
	ID     int
	Active bool
	Dimmed bool
}

func columnStates(nodes []pathway.ProjectedNode) []columnState {
	out := make([]columnState, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, columnState{ID: n.ID, Active: n.IsActivePath, Dimmed: n.Dimmed})
	}
	return out
}

func TestProject_Idle(t *testing.T) {
	e := pathway.NewEngine(roboticsSet())

	v := e.View()

	assert.Nil(t, v.SelectedCareerID)
	assert.Equal(t, 1, v.InterestID)
	assert.Equal(t, 11, v.Len())
	for _, col := range [][]pathway.ProjectedNode{v.Courses, v.Certifications, v.Majors, v.Careers} {
		for _, n := range col {
			assert.False(t, n.IsActivePath)
			assert.False(t, n.Dimmed, "nothing is dimmed while idle")
		}
	}
}

func TestProject_HighlightedColumns(t *testing.T) {
	e := pathway.NewEngine(roboticsSet())
	_, _, err := e.SelectByID(101)
	require.NoError(t, err)

	v := e.View()

	want := map[domain.PathwayType][]columnState{
		domain.PathwayCourse: {
			{ID: 1, Dimmed: true}, {ID: 2, Dimmed: true}, {ID: 3, Dimmed: true}, {ID: 4, Dimmed: true},
		},
		domain.PathwayCertification: {
			{ID: 20, Dimmed: true}, {ID: 21, Active: true},
		},
		domain.PathwayMajor: {
			{ID: 30, Dimmed: true}, {ID: 31, Dimmed: true},
		},
		domain.PathwayCareer: {
			{ID: 100, Dimmed: true}, {ID: 101, Active: true}, {ID: 102, Dimmed: true},
		},
	}
	for _, typ := range domain.PathwayTypes {
		if diff := cmp.Diff(want[typ], columnStates(v.Column(typ))); diff != "" {
			t.Errorf("%s column mismatch (-want +got):\n%s", typ, diff)
		}
	}
	require.NotNil(t, v.SelectedCareerID)
	assert.Equal(t, 101, *v.SelectedCareerID)
}

func TestProject_FilterAndHighlightAreOrthogonal(t *testing.T) {
	e := pathway.NewEngine(roboticsSet())
	_, _, err := e.SelectByID(100)
	require.NoError(t, err)
	_, err = e.ToggleFilter(domain.StatusAvailable)
	require.NoError(t, err)

	v := e.View()

	// Course 2 is active but filtered out; course 3 is active and available.
	assert.Equal(t, []columnState{
		{ID: 3, Active: true},
		{ID: 4, Dimmed: true},
	}, columnStates(v.Courses))
	assert.Empty(t, v.Careers, "no career is available")
	assert.True(t, e.IsActive(2), "filtering never changes highlight state")
	assert.Equal(t, []domain.Status{domain.StatusAvailable}, v.ActiveFilters)
}

func TestProject_DoesNotAliasStore(t *testing.T) {
	e := pathway.NewEngine(roboticsSet())
	v := e.View()

	v.Careers[0].AdditionalInfo.RequiredSteps[0].ID = 999
	v.Courses[0].Title = "changed"

	again := e.View()
	if diff := cmp.Diff(e.Store().All()[len(e.Store().All())-3], again.Careers[0].PathwayNode); diff != "" {
		t.Errorf("store mutated through view (-store +view):\n%s", diff)
	}
	assert.Equal(t, "Introduction to Robotics", again.Courses[0].Title)
}

func TestProject_UnknownTypeDropped(t *testing.T) {
	set := roboticsSet()
	set.Courses = append(set.Courses, domain.PathwayNode{ID: 50, PathwayType: "internship", Title: "Odd"})
	e := pathway.NewEngine(set)

	v := e.View()

	for _, typ := range domain.PathwayTypes {
		for _, n := range v.Column(typ) {
			assert.NotEqual(t, 50, n.ID)
		}
	}
	assert.Nil(t, v.Column("internship"))
}

func TestProject_StableAcrossCalls(t *testing.T) {
	e := pathway.NewEngine(roboticsSet())
	_, _, _ = e.SelectByID(100)
	_, _ = e.ToggleFilter(domain.StatusRecommended)

	first, second := e.View(), e.View()

	if diff := cmp.Diff(first, second, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("projection is not deterministic (-first +second):\n%s", diff)
	}
}
