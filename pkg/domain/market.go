package domain

// JobPosting is one entry of the job market panel.
type JobPosting struct {
	ID          int      `json:"id"`
	JobTitle    string   `json:"jobTitle"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	SalaryRange string   `json:"salaryRange"`
	PostedDate  string   `json:"postedDate"`
	Skills      []string `json:"skills"`
	Trend       string   `json:"trend"`
	Growth      int      `json:"growth"`
}

// SalaryPoint is one month of the salary trend chart.
type SalaryPoint struct {
	Month         string `json:"month"`
	AverageSalary int    `json:"averageSalary"`
	JobCount      int    `json:"jobCount"`
}

// SkillDemand ranks a skill by posting volume.
type SkillDemand struct {
	Skill  string `json:"skill"`
	Demand int    `json:"demand"`
	Growth int    `json:"growth"`
}

// LocationStat aggregates postings per city.
type LocationStat struct {
	Location      string `json:"location"`
	JobCount      int    `json:"jobCount"`
	AverageSalary int    `json:"averageSalary"`
}

// IndustryGrowth is one bar of the industry growth chart.
type IndustryGrowth struct {
	Industry string `json:"industry"`
	Growth   int    `json:"growth"`
	Color    string `json:"color"`
}

// MarketTrends is the job market snapshot for one interest.
type MarketTrends struct {
	InterestID     int              `json:"interestId"`
	Query          string           `json:"query"`
	JobPostings    []JobPosting     `json:"jobPostings"`
	SalaryTrends   []SalaryPoint    `json:"salaryTrends"`
	SkillsDemand   []SkillDemand    `json:"skillsDemand"`
	LocationData   []LocationStat   `json:"locationData"`
	IndustryGrowth []IndustryGrowth `json:"industryGrowth"`
}
