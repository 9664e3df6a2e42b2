package pathway_test

import (
	"testing"

	"github.com/goganux/texas-career-path-explorer/pkg/domain"
	"github.com/goganux/texas-career-path-explorer/pkg/pathway"
	"github.com/stretchr/testify/assert"
)

func TestMatchPrerequisites(t *testing.T) {
	tests := []struct {
		name   string
		target domain.PathwayNode
		all    []domain.PathwayNode
		want   map[int]pathway.Rule
	}{
		{
			name:   "No Required Steps",
			target: career(1, "Chef"),
			all:    []domain.PathwayNode{course(2, "Chef Basics", domain.StatusCompleted)},
			want:   map[int]pathway.Rule{},
		},
		{
			name:   "Rule A: Candidate ID Is Required",
			target: career(1, "Engineer", step(2, "Something Else")),
			all:    []domain.PathwayNode{course(2, "Physics", domain.StatusCompleted), course(3, "Chemistry", domain.StatusCompleted)},
			want:   map[int]pathway.Rule{2: pathway.RuleID},
		},
		{
			name:   "Rule B: Candidate Declares A Shared Step",
			target: career(1, "Engineer", step(50, "Capstone")),
			all: []domain.PathwayNode{
				func() domain.PathwayNode {
					m := major(7, "Mechanical Engineering", domain.StatusRecommended)
					m.AdditionalInfo = &domain.AdditionalInfo{RequiredSteps: []domain.RequiredStep{step(50, "Capstone")}}
					return m
				}(),
			},
			want: map[int]pathway.Rule{7: pathway.RuleStepID},
		},
		{
			name:   "Rule C: Title Contains Step Name Case-Insensitively",
			target: career(1, "Chef", step(999, "servsafe food handler")),
			all:    []domain.PathwayNode{cert(17, "ServSafe Food Handler", domain.StatusAvailable)},
			want:   map[int]pathway.Rule{17: pathway.RuleTitleFallback},
		},
		{
			name:   "Rule C False Positive Is Preserved",
			target: career(1, "Marketer", step(999, "Marketing")),
			all:    []domain.PathwayNode{major(40, "Marketing", domain.StatusOption), course(41, "Digital Marketing Lab", domain.StatusAvailable)},
			want:   map[int]pathway.Rule{40: pathway.RuleTitleFallback, 41: pathway.RuleTitleFallback},
		},
		{
			name:   "Rule C Uses The Target's Step Names Only",
			target: career(1, "Chef", step(999, "Food Handler")),
			all: []domain.PathwayNode{
				func() domain.PathwayNode {
					c := cert(17, "Food Handler Permit", domain.StatusAvailable)
					c.AdditionalInfo = &domain.AdditionalInfo{RequiredSteps: []domain.RequiredStep{step(300, "Orientation")}}
					return c
				}(),
				func() domain.PathwayNode {
					c := course(18, "Knife Skills", domain.StatusAvailable)
					c.AdditionalInfo = &domain.AdditionalInfo{RequiredSteps: []domain.RequiredStep{step(301, "Food Handler")}}
					return c
				}(),
			},
			want: map[int]pathway.Rule{17: pathway.RuleTitleFallback},
		},
		{
			name:   "Rule A Wins Over Title",
			target: career(1, "Engineer", step(2, "Engineering Principles")),
			all:    []domain.PathwayNode{course(2, "Engineering Principles II", domain.StatusInProgress)},
			want:   map[int]pathway.Rule{2: pathway.RuleID},
		},
		{
			name:   "Careers And Target Are Never Candidates",
			target: career(1, "Engineer", step(1, "Engineer"), step(5, "Engineer")),
			all:    []domain.PathwayNode{career(1, "Engineer"), career(5, "Senior Engineer")},
			want:   map[int]pathway.Rule{},
		},
		{
			name:   "Malformed Steps Are Skipped",
			target: career(1, "Engineer", step(0, ""), step(-3, "   "), step(4, "Robotics")),
			all: []domain.PathwayNode{
				course(0, "Zero Id Course", domain.StatusAvailable),
				course(4, "Unrelated", domain.StatusAvailable),
				course(6, "Intro", domain.StatusAvailable),
			},
			want: map[int]pathway.Rule{4: pathway.RuleID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pathway.MatchPrerequisites(tt.target, tt.all)

			rules := make(map[int]pathway.Rule, len(got))
			for id, m := range got {
				rules[id] = m.Rule
				assert.Equal(t, id, m.NodeID)
			}
			assert.Equal(t, tt.want, rules)
		})
	}
}

func TestMatchSet_Fallbacks(t *testing.T) {
	target := career(1, "Chef", step(5, "Culinary Basics"), step(99, "Food Safety"))
	all := []domain.PathwayNode{
		course(5, "Culinary Basics (Grade 9)", domain.StatusCompleted),
		course(6, "Food Safety & Sanitation", domain.StatusCompleted),
	}

	got := pathway.MatchPrerequisites(target, all)

	assert.Equal(t, []int{5, 6}, got.IDs())
	fallbacks := got.Fallbacks()
	if assert.Len(t, fallbacks, 1) {
		assert.Equal(t, 6, fallbacks[0].NodeID)
		assert.Equal(t, "Food Safety", fallbacks[0].StepName, "step name is reported as authored")
	}
}
