package dataset

import (
	"time"

	"github.com/SAP-F-2025/coaching-service/internal/auth"
	"github.com/SAP-F-2025/coaching-service/internal/models"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// Demo returns the bundled demonstration dataset: three students, two
// advisors, one admin and one external committee member across three
// capstone projects.
func Demo() Data {
	return Data{
		Users: []models.User{
			{ID: "s1", FullName: "Arthit Boonmee", Email: "arthit@student.university.example", Role: models.RoleStudent},
			{ID: "s2", FullName: "Kanya Srisuwan", Email: "kanya@student.university.example", Role: models.RoleStudent},
			{ID: "s3", FullName: "Niran Chaiyo", Email: "niran@student.university.example", Role: models.RoleStudent},
			{ID: "a1", FullName: "Dr. Wichai Somboon", Email: "wichai@university.example", Role: models.RoleAdvisor},
			{ID: "a2", FullName: "Dr. Suda Rattana", Email: "suda@university.example", Role: models.RoleAdvisor},
			{ID: "admin1", FullName: "Dr. Preecha Wongsa", Email: "admin@university.example", Role: models.RoleAdmin},
			{ID: "c1", FullName: "Dr. Malee Thongdee", Email: "malee@evaluator.example", Role: models.RoleCommittee},
		},
		Projects: []models.Project{
			{
				ID:          "p1",
				Name:        "E-Learning Platform",
				Description: "Interactive online learning platform with an AI tutor",
				TeamMembers: []string{"s1", "s2"},
				AdvisorID:   "a1",
				Status:      models.ProjectImplementation,
				Progress:    65,
				StartDate:   date(2024, 8, 1, 0, 0),
				EndDate:     date(2025, 4, 30, 0, 0),
				TechStack:   []string{"React", "Node.js", "PostgreSQL"},
			},
			{
				ID:          "p2",
				Name:        "Smart Campus IoT System",
				Description: "Building management with IoT sensors",
				TeamMembers: []string{"s3"},
				AdvisorID:   "a1",
				Status:      models.ProjectDesign,
				Progress:    40,
				StartDate:   date(2024, 8, 1, 0, 0),
				EndDate:     date(2025, 4, 30, 0, 0),
				TechStack:   []string{"React", "MQTT", "MongoDB"},
			},
			{
				ID:          "p3",
				Name:        "Healthcare Appointment System",
				Description: "Doctor appointment booking and patient history tracking",
				TeamMembers: []string{"s1"},
				AdvisorID:   "a2",
				Status:      models.ProjectTesting,
				Progress:    85,
				StartDate:   date(2024, 8, 1, 0, 0),
				EndDate:     date(2025, 4, 30, 0, 0),
				TechStack:   []string{"Vue.js", "Laravel", "MySQL"},
			},
		},
		Sessions: []models.CoachingSession{
			{
				ID:         "cs1",
				ProjectID:  "p1",
				StudentIDs: []string{"s1", "s2"},
				AdvisorID:  "a1",
				Date:       date(2024, 11, 20, 14, 0),
				Duration:   60,
				Topics:     []string{"Progress Review", "Technical Issues", "Next Sprint Planning"},
				Summary:    "Authentication and dashboard are done; the team is blocked on external API integration.",
				ActionItems: []models.ActionItem{
					{ID: "ai1", Description: "Resolve API rate limiting", AssignedTo: "s1", DueDate: date(2024, 11, 27, 0, 0), Status: models.ActionItemInProgress, Priority: models.PriorityHigh},
					{ID: "ai2", Description: "Unit tests for the authentication module", AssignedTo: "s2", DueDate: date(2024, 11, 25, 0, 0), Status: models.ActionItemCompleted, Priority: models.PriorityMedium},
					{ID: "ai3", Description: "Prepare system design document for mid-term review", AssignedTo: "s1", DueDate: date(2024, 11, 30, 0, 0), Status: models.ActionItemPending, Priority: models.PriorityHigh},
				},
				EvidenceFiles: []models.Evidence{
					{ID: "e1", FileName: "sprint-2-demo.mp4", FileURL: "#", FileType: "video", UploadedBy: "s1", UploadedAt: date(2024, 11, 20, 13, 30), Description: ptr("Authentication system demo")},
					{ID: "e2", FileName: "api-integration-diagram.pdf", FileURL: "#", FileType: "pdf", UploadedBy: "s2", UploadedAt: date(2024, 11, 20, 13, 45)},
				},
				Notes:           "Good progress overall; the API issue must not slip the timeline.",
				NextSessionDate: ptr(date(2024, 11, 27, 14, 0)),
			},
			{
				ID:         "cs2",
				ProjectID:  "p1",
				StudentIDs: []string{"s1", "s2"},
				AdvisorID:  "a1",
				Date:       date(2024, 11, 13, 14, 0),
				Duration:   45,
				Topics:     []string{"Sprint 2 Planning", "Database Schema Review"},
				Summary:    "Planned sprint 2 and reviewed the database schema.",
				ActionItems: []models.ActionItem{
					{ID: "ai4", Description: "Implement user registration API", AssignedTo: "s1", DueDate: date(2024, 11, 18, 0, 0), Status: models.ActionItemCompleted, Priority: models.PriorityHigh},
					{ID: "ai5", Description: "Design dashboard UI mockup", AssignedTo: "s2", DueDate: date(2024, 11, 17, 0, 0), Status: models.ActionItemCompleted, Priority: models.PriorityMedium},
				},
				Notes: "Team is ready to start sprint 2.",
			},
			{
				ID:         "cs3",
				ProjectID:  "p2",
				StudentIDs: []string{"s3"},
				AdvisorID:  "a1",
				Date:       date(2024, 11, 18, 10, 0),
				Duration:   60,
				Topics:     []string{"IoT Architecture Design", "Sensor Selection"},
				Summary:    "Discussed sensor selection and overall system architecture.",
				ActionItems: []models.ActionItem{
					{ID: "ai6", Description: "Research and select temperature and humidity sensors", AssignedTo: "s3", DueDate: date(2024, 11, 25, 0, 0), Status: models.ActionItemInProgress, Priority: models.PriorityHigh},
					{ID: "ai7", Description: "Draw system architecture diagram", AssignedTo: "s3", DueDate: date(2024, 11, 28, 0, 0), Status: models.ActionItemPending, Priority: models.PriorityMedium},
				},
				EvidenceFiles: []models.Evidence{
					{ID: "e3", FileName: "sensor-comparison.xlsx", FileURL: "#", FileType: "excel", UploadedBy: "s3", UploadedAt: date(2024, 11, 18, 9, 30)},
				},
				Notes:           "Student needs more guidance on the messaging protocol.",
				NextSessionDate: ptr(date(2024, 11, 25, 10, 0)),
			},
		},
		Evaluations: []models.Evaluation{
			{
				ID:          "ev1",
				ProjectID:   "p3",
				CommitteeID: "c1",
				Scores: []models.EvaluationScore{
					{Category: "Technical Implementation", Score: 42, MaxScore: 50},
					{Category: "Innovation & Creativity", Score: 18, MaxScore: 20},
					{Category: "Project Management", Score: 14, MaxScore: 15},
					{Category: "Presentation", Score: 13, MaxScore: 15},
				},
				Comments:     "Very complete project with sensible technology choices; the UI could be easier to use.",
				Strengths:    []string{"Strong technical implementation", "Well designed database", "High test coverage"},
				Improvements: []string{"More user-friendly UI", "More detailed documentation"},
				CreatedAt:    date(2024, 11, 15, 0, 0),
			},
		},
		LearningRecords: []models.LearningRecord{
			{
				ID:           "lr1",
				StudentID:    "s1",
				ProjectID:    "p1",
				Skills:       []string{"React", "API Integration", "Authentication", "Team Collaboration"},
				Achievements: []string{"Built the user authentication system", "Integrated the external AI API", "Presented a live demo"},
				Reflections:  "Learned to work in a team and to debug integration problems independently.",
				CreatedAt:    date(2024, 11, 20, 0, 0),
			},
		},
		Portfolios: []models.Portfolio{
			{
				ID:        "pf1",
				StudentID: "s1",
				Projects: []models.PortfolioProject{
					{
						ProjectID:   "p1",
						Title:       "E-Learning Platform with AI Tutor",
						Description: "Interactive online learning platform with AI-powered tutoring",
						Role:        "Full-stack Developer & Team Lead",
						TechStack:   []string{"React", "Node.js", "PostgreSQL"},
						Highlights:  []string{"Implemented secure authentication", "Integrated AI tutoring features", "Led a team of two developers"},
					},
				},
				Skills: []string{"React", "Node.js", "PostgreSQL", "API Integration", "Team Leadership"},
				Bio:    "Final-year software engineering student interested in full-stack development.",
			},
		},
	}
}

// DemoCredentials returns the demo login directory for the static
// authenticator. Passwords here are demonstration fixtures, nothing more.
func DemoCredentials() []auth.Credential {
	passwords := map[string]string{
		"s1":     "Student123!@#",
		"s2":     "Student123!@#",
		"s3":     "Student123!@#",
		"a1":     "Advisor123!@#",
		"a2":     "Advisor123!@#",
		"admin1": "Admin123!@#",
		"c1":     "Committee123!@#",
	}

	data := Demo()
	creds := make([]auth.Credential, 0, len(data.Users))
	for _, u := range data.Users {
		creds = append(creds, auth.Credential{User: u, Password: passwords[u.ID]})
	}
	return creds
}
