// Package dataset holds the shared in-memory dataset the dashboards project
// from. The repository surface is read-only: every mutation in this system
// is simulated upstream and nothing is persisted.
package dataset

import (
	"context"

	"github.com/SAP-F-2025/coaching-service/internal/models"
)

// UserFilters narrows user listings.
type UserFilters struct {
	Role  *models.UserRole
	Query string // matched against name or email
}

// ProjectFilters narrows project listings.
type ProjectFilters struct {
	Status    *models.ProjectStatus
	AdvisorID string
	MemberID  string
}

// SessionFilters narrows coaching-session listings.
type SessionFilters struct {
	ProjectID string
	AdvisorID string
	StudentID string
}

type Repository interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, filters UserFilters) ([]*models.User, error)

	GetProject(ctx context.Context, id string) (*models.Project, error)
	ListProjects(ctx context.Context, filters ProjectFilters) ([]*models.Project, error)

	ListSessions(ctx context.Context, filters SessionFilters) ([]*models.CoachingSession, error)

	ListEvaluations(ctx context.Context, projectID, committeeID string) ([]*models.Evaluation, error)

	ListLearningRecords(ctx context.Context, studentID string) ([]*models.LearningRecord, error)
	GetPortfolio(ctx context.Context, studentID string) (*models.Portfolio, error)
}
