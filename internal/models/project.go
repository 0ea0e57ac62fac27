package models

import "time"

type ProjectStatus string

const (
	ProjectProposal       ProjectStatus = "proposal"
	ProjectDesign         ProjectStatus = "design"
	ProjectImplementation ProjectStatus = "implementation"
	ProjectTesting        ProjectStatus = "testing"
	ProjectPresentation   ProjectStatus = "presentation"
	ProjectCompleted      ProjectStatus = "completed"
)

var AllProjectStatuses = []ProjectStatus{
	ProjectProposal,
	ProjectDesign,
	ProjectImplementation,
	ProjectTesting,
	ProjectPresentation,
	ProjectCompleted,
}

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectProposal, ProjectDesign, ProjectImplementation,
		ProjectTesting, ProjectPresentation, ProjectCompleted:
		return true
	}
	return false
}

type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	TeamMembers []string      `json:"team_members"`
	AdvisorID   string        `json:"advisor_id"`
	Status      ProjectStatus `json:"status"`
	Progress    int           `json:"progress"` // 0-100
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	TechStack   []string      `json:"tech_stack"`
}

// HasMember reports whether the given user is on the project team.
func (p *Project) HasMember(userID string) bool {
	for _, id := range p.TeamMembers {
		if id == userID {
			return true
		}
	}
	return false
}
