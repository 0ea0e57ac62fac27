package models

import "time"

type ActionItemStatus string

const (
	ActionItemPending    ActionItemStatus = "pending"
	ActionItemInProgress ActionItemStatus = "in-progress"
	ActionItemCompleted  ActionItemStatus = "completed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type ActionItem struct {
	ID          string           `json:"id"`
	Description string           `json:"description"`
	AssignedTo  string           `json:"assigned_to"`
	DueDate     time.Time        `json:"due_date"`
	Status      ActionItemStatus `json:"status"`
	Priority    Priority         `json:"priority"`
}

// Overdue reports whether the item's due date has passed without completion.
func (a *ActionItem) Overdue(now time.Time) bool {
	return a.Status != ActionItemCompleted && a.DueDate.Before(now)
}

type Evidence struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	FileURL     string    `json:"file_url"`
	FileType    string    `json:"file_type"`
	UploadedBy  string    `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
	Description *string   `json:"description,omitempty"`
}

// CoachingSession is a single advisor-led meeting with one or more students
// of a project, together with its outcomes.
type CoachingSession struct {
	ID              string       `json:"id"`
	ProjectID       string       `json:"project_id"`
	StudentIDs      []string     `json:"student_ids"`
	AdvisorID       string       `json:"advisor_id"`
	Date            time.Time    `json:"date"`
	Duration        int          `json:"duration"` // minutes
	Topics          []string     `json:"topics"`
	Summary         string       `json:"summary"`
	ActionItems     []ActionItem `json:"action_items"`
	EvidenceFiles   []Evidence   `json:"evidence_files"`
	Notes           string       `json:"notes"`
	NextSessionDate *time.Time   `json:"next_session_date,omitempty"`
}

// HasStudent reports whether the given student attended the session.
func (cs *CoachingSession) HasStudent(userID string) bool {
	for _, id := range cs.StudentIDs {
		if id == userID {
			return true
		}
	}
	return false
}
