package pathway

import (
	"slices"
	"strings"

	"github.com/goganux/texas-career-path-explorer/pkg/domain"
)

// Rule identifies how a candidate was linked to the target's required steps.
type Rule string

const (
	// RuleID: the candidate's id is one of the required step ids.
	RuleID Rule = "id"
	// RuleStepID: the candidate declares a step that shares an id with the target's steps.
	RuleStepID Rule = "step_id"
	// RuleTitleFallback: the candidate's title contains a required step name.
	// Weak heuristic kept for sources with incomplete id links; may produce false positives.
	// The names come from the selected career's steps, not the candidate's own, so a
	// candidate that declares no steps can still match. This is broader than checking
	// only candidates with declared steps against their own step names.
	RuleTitleFallback Rule = "title_fallback"
)

// Match records why a node was selected as a prerequisite.
type Match struct {
	NodeID int  `json:"nodeId"`
	Rule   Rule `json:"rule"`
	// StepName is the required step whose name matched (RuleTitleFallback only).
	StepName string `json:"stepName,omitempty"`
}

// MatchSet is the result of MatchPrerequisites keyed by node id.
type MatchSet map[int]Match

// IDs returns the matched node ids in ascending order.
func (m MatchSet) IDs() []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Has reports whether id matched.
func (m MatchSet) Has(id int) bool {
	_, ok := m[id]
	return ok
}

// Fallbacks returns matches made only by the title fallback, ordered by node id.
func (m MatchSet) Fallbacks() []Match {
	var out []Match
	for _, id := range m.IDs() {
		if m[id].Rule == RuleTitleFallback {
			out = append(out, m[id])
		}
	}
	return out
}

// MatchPrerequisites decides which nodes of all are prerequisites of target.
//
// Candidates are the course, certification and major nodes other than target.
// A candidate matches when its id is a required step id, when one of its own
// steps carries a required step id, or when its title contains a required
// step name (case-insensitive). A target without steps matches nothing.
// Steps with a non-positive id are ignored by the id rules and steps with a
// blank name by the title rule.
func MatchPrerequisites(target domain.PathwayNode, all []domain.PathwayNode) MatchSet {
	matches := make(MatchSet)

	steps := target.RequiredSteps()
	if len(steps) == 0 {
		return matches
	}

	requiredIDs := make(map[int]struct{}, len(steps))
	names := make([]stepName, 0, len(steps))
	for _, step := range steps {
		if step.ID > 0 {
			requiredIDs[step.ID] = struct{}{}
		}
		if folded := strings.ToLower(strings.TrimSpace(step.Name)); folded != "" {
			names = append(names, stepName{raw: step.Name, folded: folded})
		}
	}

	for _, n := range all {
		if n.ID == target.ID || !isCandidate(n) {
			continue
		}
		if m, ok := matchCandidate(n, requiredIDs, names); ok {
			matches[n.ID] = m
		}
	}
	return matches
}

type stepName struct {
	raw    string
	folded string
}

func isCandidate(n domain.PathwayNode) bool {
	switch n.PathwayType {
	case domain.PathwayCourse, domain.PathwayCertification, domain.PathwayMajor:
		return true
	}
	return false
}

func matchCandidate(n domain.PathwayNode, requiredIDs map[int]struct{}, names []stepName) (Match, bool) {
	if _, ok := requiredIDs[n.ID]; ok {
		return Match{NodeID: n.ID, Rule: RuleID}, true
	}

	for _, step := range n.RequiredSteps() {
		if step.ID <= 0 {
			continue
		}
		if _, ok := requiredIDs[step.ID]; ok {
			return Match{NodeID: n.ID, Rule: RuleStepID}, true
		}
	}

	title := n.NormalizedTitle()
	for _, name := range names {
		if strings.Contains(title, name.folded) {
			return Match{NodeID: n.ID, Rule: RuleTitleFallback, StepName: name.raw}, true
		}
	}
	return Match{}, false
}
