package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goganux/texas-career-path-explorer/pkg/domain"
)

// baseJobCount drives the location split, matching a typical weekly search volume.
const baseJobCount = 250

var queries = map[int]string{
	1: "robotics engineer",
	2: "chef cook culinary restaurant",
	3: "business analyst manager",
	4: "nurse healthcare medical",
	5: "graphic designer artist creative",
}

// skillSets are matched by keyword against the interest query, in order.
var skillSets = []struct {
	keyword string
	skills  []domain.SkillDemand
}{
	{"robotics", []domain.SkillDemand{
		{Skill: "Python Programming", Demand: 1450, Growth: 28},
		{Skill: "ROS (Robot Operating System)", Demand: 890, Growth: 35},
		{Skill: "Computer Vision", Demand: 1120, Growth: 22},
		{Skill: "Machine Learning", Demand: 1340, Growth: 31},
		{Skill: "PLC Programming", Demand: 780, Growth: 15},
	}},
	{"chef", []domain.SkillDemand{
		{Skill: "Menu Development", Demand: 650, Growth: 15},
		{Skill: "Food Safety Certification", Demand: 890, Growth: 18},
		{Skill: "Team Leadership", Demand: 720, Growth: 12},
		{Skill: "Culinary Arts", Demand: 1200, Growth: 10},
		{Skill: "Restaurant Management", Demand: 580, Growth: 14},
	}},
	{"business", []domain.SkillDemand{
		{Skill: "Data Analysis", Demand: 1850, Growth: 24},
		{Skill: "Project Management", Demand: 1650, Growth: 19},
		{Skill: "Business Strategy", Demand: 1200, Growth: 16},
		{Skill: "SQL", Demand: 1450, Growth: 22},
		{Skill: "Leadership", Demand: 1320, Growth: 18},
	}},
}

var genericSkills = []domain.SkillDemand{
	{Skill: "Communication", Demand: 950, Growth: 18},
	{Skill: "Problem Solving", Demand: 850, Growth: 22},
	{Skill: "Leadership", Demand: 650, Growth: 15},
	{Skill: "Teamwork", Demand: 800, Growth: 12},
	{Skill: "Technical Skills", Demand: 750, Growth: 20},
}

var cities = []struct {
	name   string
	share  int // percent of postings
	salary int
	perID  int
}{
	{"Austin, TX", 40, 75000, 2000},
	{"Houston, TX", 30, 68000, 1800},
	{"Dallas, TX", 25, 72000, 1900},
	{"San Antonio, TX", 5, 62000, 1500},
}

// Static implements ports.MarketSource with generated data.
type Static struct {
	now func() time.Time
}

// Option configures Static.
type Option func(*Static)

// WithClock fixes the reference date of the salary trend.
func WithClock(now func() time.Time) Option {
	return func(s *Static) {
		s.now = now
	}
}

// NewStatic creates the generator.
func NewStatic(opts ...Option) *Static {
	s := &Static{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Query returns the search phrase used for an interest, "technology" when unknown.
func Query(interestID int) string {
	if q, ok := queries[interestID]; ok {
		return q
	}
	return "technology"
}

// Trends builds the market snapshot for interestID. It never fails for unknown
// interests; they get the generic technology profile.
func (s *Static) Trends(ctx context.Context, interestID int) (domain.MarketTrends, error) {
	if err := ctx.Err(); err != nil {
		return domain.MarketTrends{}, err
	}
	query := Query(interestID)
	return domain.MarketTrends{
		InterestID:     interestID,
		Query:          query,
		JobPostings:    postings(query),
		SalaryTrends:   salaryTrend(s.now(), interestID),
		SkillsDemand:   SkillsDemand(query),
		LocationData:   locations(interestID),
		IndustryGrowth: industries(interestID),
	}, nil
}

// SkillsDemand picks the skill set whose keyword appears in query.
func SkillsDemand(query string) []domain.SkillDemand {
	for _, set := range skillSets {
		if strings.Contains(query, set.keyword) {
			return append([]domain.SkillDemand(nil), set.skills...)
		}
	}
	return append([]domain.SkillDemand(nil), genericSkills...)
}

func postings(query string) []domain.JobPosting {
	title := strings.Fields(query)[0]
	title = strings.ToUpper(title[:1]) + title[1:]
	out := make([]domain.JobPosting, 0, 3)
	for i, c := range cities[:3] {
		low := 55 + 10*i
		out = append(out, domain.JobPosting{
			ID:          i + 1,
			JobTitle:    fmt.Sprintf("%s Position", title),
			Company:     "Texas Company",
			Location:    c.name,
			SalaryRange: fmt.Sprintf("$%dK - $%dK", low, low+20),
			PostedDate:  fmt.Sprintf("%d days ago", 2+3*i),
			Skills:      []string{"Communication", "Problem Solving", "Teamwork"},
			Trend:       "up",
			Growth:      15 - 3*i,
		})
	}
	return out
}

// salaryTrend covers the six months ending with the reference month.
func salaryTrend(now time.Time, interestID int) []domain.SalaryPoint {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)
	out := make([]domain.SalaryPoint, 0, 6)
	for i := 0; i < 6; i++ {
		out = append(out, domain.SalaryPoint{
			Month:         first.AddDate(0, i, 0).Format("Jan"),
			AverageSalary: 65000 + i*2500 + interestID*1500,
			JobCount:      100 + i*20,
		})
	}
	return out
}

func locations(interestID int) []domain.LocationStat {
	out := make([]domain.LocationStat, 0, len(cities))
	for _, c := range cities {
		out = append(out, domain.LocationStat{
			Location:      c.name,
			JobCount:      baseJobCount * c.share / 100,
			AverageSalary: c.salary + interestID*c.perID,
		})
	}
	return out
}

func industries(interestID int) []domain.IndustryGrowth {
	bonus := func(id, extra int) int {
		if interestID == id {
			return extra
		}
		return 0
	}
	return []domain.IndustryGrowth{
		{Industry: "Technology", Growth: 15 + bonus(1, 10), Color: "#3b82f6"},
		{Industry: "Healthcare", Growth: 12 + bonus(4, 8), Color: "#10b981"},
		{Industry: "Finance", Growth: 8 + bonus(3, 6), Color: "#f59e0b"},
		{Industry: "Hospitality", Growth: 6 + bonus(2, 7), Color: "#8b5cf6"},
	}
}
