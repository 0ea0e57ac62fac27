package models

import "time"

type EvaluationScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
}

// Evaluation is a committee member's scored review of a project.
type Evaluation struct {
	ID           string            `json:"id"`
	ProjectID    string            `json:"project_id"`
	CommitteeID  string            `json:"committee_id"`
	Scores       []EvaluationScore `json:"scores"`
	Comments     string            `json:"comments"`
	Strengths    []string          `json:"strengths"`
	Improvements []string          `json:"improvements"`
	CreatedAt    time.Time         `json:"created_at"`
}

// Totals returns the summed score and the summed maximum across categories.
func (e *Evaluation) Totals() (total, max float64) {
	for _, s := range e.Scores {
		total += s.Score
		max += s.MaxScore
	}
	return total, max
}

type LearningRecord struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"student_id"`
	ProjectID    string    `json:"project_id"`
	Skills       []string  `json:"skills"`
	Achievements []string  `json:"achievements"`
	Reflections  string    `json:"reflections"`
	CreatedAt    time.Time `json:"created_at"`
}

type PortfolioProject struct {
	ProjectID   string   `json:"project_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Role        string   `json:"role"`
	TechStack   []string `json:"tech_stack"`
	Highlights  []string `json:"highlights"`
	DemoURL     *string  `json:"demo_url,omitempty"`
	GithubURL   *string  `json:"github_url,omitempty"`
	Images      []string `json:"images"`
}

type Portfolio struct {
	ID        string             `json:"id"`
	StudentID string             `json:"student_id"`
	Projects  []PortfolioProject `json:"projects"`
	Skills    []string           `json:"skills"`
	Bio       string             `json:"bio"`
	ResumeURL *string            `json:"resume_url,omitempty"`
}
