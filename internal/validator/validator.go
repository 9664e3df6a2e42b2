package validator

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goganux/texas-career-path-explorer/pkg/domain"
	"github.com/goganux/texas-career-path-explorer/pkg/pathway"
	"github.com/goganux/texas-career-path-explorer/pkg/ports"
)

// Severity grades an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single finding about a pathway node, or about a stored document
// that never became one (Document set, node fields zero).
type Issue struct {
	Severity   Severity `json:"severity"`
	Document   string   `json:"document,omitempty"`
	InterestID int      `json:"interestId"`
	NodeID     int      `json:"nodeId"`
	Message    string   `json:"message"`
}

func (i Issue) String() string {
	if i.Document != "" {
		return fmt.Sprintf("[%s] document %s: %s", i.Severity, i.Document, i.Message)
	}
	return fmt.Sprintf("[%s] interest %d, node %d: %s", i.Severity, i.InterestID, i.NodeID, i.Message)
}

// Report collects the findings of ValidatePathways.
type Report struct {
	Nodes     int     `json:"nodes"`
	Interests int     `json:"interests"`
	Issues    []Issue `json:"issues"`
}

func (r Report) filter(sev Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == sev {
			out = append(out, i)
		}
	}
	return out
}

// Errors returns the issues that make the graph unusable.
func (r Report) Errors() []Issue { return r.filter(SeverityError) }

// Warnings returns data-quality findings.
func (r Report) Warnings() []Issue { return r.filter(SeverityWarning) }

// Err summarizes the errors, or returns nil when there are none.
func (r Report) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.String()
	}
	return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(lines, "\n- "))
}

// ValidateLister validates everything the lister can enumerate. Documents the
// lister reports as undecodable (*domain.DocumentError) become error issues
// next to the findings for the decoded nodes; any other error is returned.
func ValidateLister(ctx context.Context, lister ports.PathwayLister) (Report, error) {
	nodes, err := lister.All(ctx)
	docErrs, err := splitDocumentErrors(err)
	if err != nil {
		return Report{}, err
	}

	report := ValidatePathways(nodes)
	issues := make([]Issue, 0, len(docErrs)+len(report.Issues))
	for _, de := range docErrs {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Document: de.Document,
			Message:  de.Err.Error(),
		})
	}
	report.Issues = append(issues, report.Issues...)
	return report, nil
}

// splitDocumentErrors walks a (possibly joined) error tree and separates the
// document errors from everything else.
func splitDocumentErrors(err error) ([]*domain.DocumentError, error) {
	if err == nil {
		return nil, nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var (
			docs []*domain.DocumentError
			rest []error
		)
		for _, e := range joined.Unwrap() {
			d, r := splitDocumentErrors(e)
			docs = append(docs, d...)
			if r != nil {
				rest = append(rest, r)
			}
		}
		return docs, errors.Join(rest...)
	}

	var de *domain.DocumentError
	if errors.As(err, &de) {
		return []*domain.DocumentError{de}, nil
	}
	return nil, err
}

// ValidatePathways checks a full node dump, grouped per interest.
//
// Errors:
//   - a node fails domain validation (unknown type, missing interest);
//   - a career step has neither a positive id nor a name.
//
// Warnings:
//   - a step id resolves to no node at all;
//   - a step id points into another interest (the engine ignores it);
//   - a career declares no steps, or its steps match no prerequisite;
//   - a prerequisite is linked only by the title fallback;
//   - two nodes in one column share a title.
func ValidatePathways(nodes []domain.PathwayNode) Report {
	report := Report{Nodes: len(nodes)}
	add := func(sev Severity, n domain.PathwayNode, format string, args ...any) {
		report.Issues = append(report.Issues, Issue{
			Severity:   sev,
			InterestID: n.InterestID,
			NodeID:     n.ID,
			Message:    fmt.Sprintf(format, args...),
		})
	}

	byID := make(map[int]domain.PathwayNode, len(nodes))
	byInterest := make(map[int][]domain.PathwayNode)
	for _, n := range nodes {
		if err := n.Validate(); err != nil {
			add(SeverityError, n, "%v", err)
			continue
		}
		byID[n.ID] = n
		byInterest[n.InterestID] = append(byInterest[n.InterestID], n)
	}
	report.Interests = len(byInterest)

	interests := make([]int, 0, len(byInterest))
	for id := range byInterest {
		interests = append(interests, id)
	}
	slices.Sort(interests)

	for _, interestID := range interests {
		members := byInterest[interestID]
		checkTitles(members, add)

		for _, career := range members {
			if career.PathwayType != domain.PathwayCareer {
				continue
			}
			steps := career.RequiredSteps()
			if len(steps) == 0 {
				add(SeverityWarning, career, "career %q declares no required steps", career.Title)
				continue
			}
			for _, st := range steps {
				switch {
				case st.ID <= 0 && strings.TrimSpace(st.Name) == "":
					add(SeverityError, career, "required step has neither id nor name")
				case st.ID <= 0:
					// name-only steps are matched by title
				default:
					target, ok := byID[st.ID]
					if !ok {
						add(SeverityWarning, career, "step %d (%q) does not resolve to any node", st.ID, st.Name)
					} else if target.InterestID != interestID {
						add(SeverityWarning, career, "step %d (%q) points into interest %d", st.ID, st.Name, target.InterestID)
					}
				}
			}

			matches := pathway.MatchPrerequisites(career, members)
			if len(matches) == 0 {
				add(SeverityWarning, career, "career %q has no reachable prerequisites", career.Title)
			}
			for _, m := range matches.Fallbacks() {
				add(SeverityWarning, career, "node %d matched step %q by title only", m.NodeID, m.StepName)
			}
		}
	}

	slices.SortStableFunc(report.Issues, func(a, b Issue) int {
		return cmp.Or(cmp.Compare(a.InterestID, b.InterestID), cmp.Compare(a.NodeID, b.NodeID))
	})
	return report
}

func checkTitles(members []domain.PathwayNode, add func(Severity, domain.PathwayNode, string, ...any)) {
	type key struct {
		kind  domain.PathwayType
		title string
	}
	first := make(map[key]int)
	for _, n := range members {
		k := key{n.PathwayType, strings.ToLower(strings.TrimSpace(n.Title))}
		if prev, ok := first[k]; ok {
			add(SeverityWarning, n, "duplicate %s title %q (also node %d)", n.PathwayType, n.Title, prev)
			continue
		}
		first[k] = n.ID
	}
}
