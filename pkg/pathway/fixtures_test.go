package pathway_test

import "github.com/goganux/texas-career-path-explorer/pkg/domain"

func course(id int, title string, status domain.Status) domain.PathwayNode {
	return domain.PathwayNode{ID: id, InterestID: 1, PathwayType: domain.PathwayCourse, Title: title, Status: status}
}

func cert(id int, title string, status domain.Status) domain.PathwayNode {
	return domain.PathwayNode{ID: id, InterestID: 1, PathwayType: domain.PathwayCertification, Title: title, Status: status}
}

func major(id int, title string, status domain.Status) domain.PathwayNode {
	return domain.PathwayNode{ID: id, InterestID: 1, PathwayType: domain.PathwayMajor, Title: title, Status: status}
}

func career(id int, title string, steps ...domain.RequiredStep) domain.PathwayNode {
	n := domain.PathwayNode{ID: id, InterestID: 1, PathwayType: domain.PathwayCareer, Title: title, Status: domain.StatusRecommended}
	if steps != nil {
		n.AdditionalInfo = &domain.AdditionalInfo{RequiredSteps: steps}
	}
	return n
}

func step(id int, name string) domain.RequiredStep {
	return domain.RequiredStep{ID: id, Name: name, Status: "required"}
}

// roboticsSet mirrors the shape of the seeded Robotics & Engineering interest.
func roboticsSet() domain.NodeSet {
	return domain.NodeSet{
		InterestID: 1,
		Courses: []domain.PathwayNode{
			course(1, "Introduction to Robotics", domain.StatusCompleted),
			course(2, "Engineering Principles II", domain.StatusInProgress),
			course(3, "Advanced Robotics", domain.StatusAvailable),
			course(4, "AI for Robotics", domain.StatusAvailable),
		},
		Certifications: []domain.PathwayNode{
			cert(20, "Robotics Programming Level 1", domain.StatusEligible),
			cert(21, "Arduino Certification", domain.StatusAvailable),
		},
		Majors: []domain.PathwayNode{
			major(30, "Mechanical Engineering", domain.StatusRecommended),
			major(31, "Electrical Engineering", domain.StatusRecommended),
		},
		Careers: []domain.PathwayNode{
			career(100, "Robotics Engineer", step(2, "Engineering Principles"), step(3, "Robotics Cert")),
			career(101, "Automation Technician", step(21, "Arduino Certification")),
			career(102, "Field Service Engineer"),
		},
	}
}
