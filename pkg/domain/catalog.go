package domain

// Interest is a top-level career interest scoping one pathway graph.
type Interest struct {
	ID   int    `json:"id" yaml:"id" mapstructure:"id"`
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	Icon string `json:"icon" yaml:"icon" mapstructure:"icon"`
}

// Student is the profile shown in the dashboard header.
type Student struct {
	ID        int     `json:"id" yaml:"id" mapstructure:"id"`
	UserID    int     `json:"userId" yaml:"userId" mapstructure:"userId"`
	Name      string  `json:"name" yaml:"name" mapstructure:"name"`
	Grade     int     `json:"grade" yaml:"grade" mapstructure:"grade"`
	School    string  `json:"school" yaml:"school" mapstructure:"school"`
	StudentID string  `json:"studentId" yaml:"studentId" mapstructure:"studentId"`
	GPA       string  `json:"gpa" yaml:"gpa" mapstructure:"gpa"`
	ImageURL  *string `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty" mapstructure:"imageUrl"`
}

// ProgressItem is one step of a student's progress timeline.
type ProgressItem struct {
	ID     int    `json:"id" yaml:"id" mapstructure:"id"`
	Name   string `json:"name" yaml:"name" mapstructure:"name"`
	Status string `json:"status" yaml:"status" mapstructure:"status"`
}

// Progress tracks a student's completion of one interest's pathway.
type Progress struct {
	ID             int            `json:"id" yaml:"id" mapstructure:"id"`
	StudentID      int            `json:"studentId" yaml:"studentId" mapstructure:"studentId"`
	InterestID     int            `json:"interestId" yaml:"interestId" mapstructure:"interestId"`
	Percentage     int            `json:"percentage" yaml:"percentage" mapstructure:"percentage"`
	CompletedSteps []ProgressItem `json:"completedSteps" yaml:"completedSteps" mapstructure:"completedSteps"`
}

// SimilarPathway suggests a neighbouring interest.
type SimilarPathway struct {
	ID          int      `json:"id" yaml:"id" mapstructure:"id"`
	InterestID  int      `json:"interestId" yaml:"interestId" mapstructure:"interestId"`
	Title       string   `json:"title" yaml:"title" mapstructure:"title"`
	Description string   `json:"description" yaml:"description" mapstructure:"description"`
	Icon        string   `json:"icon" yaml:"icon" mapstructure:"icon"`
	IconBg      string   `json:"iconBg" yaml:"iconBg" mapstructure:"iconBg"`
	IconColor   string   `json:"iconColor" yaml:"iconColor" mapstructure:"iconColor"`
	Tags        []string `json:"tags" yaml:"tags" mapstructure:"tags"`
}
