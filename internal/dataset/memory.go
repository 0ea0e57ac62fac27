package dataset

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/SAP-F-2025/coaching-service/internal/models"
)

// ErrNotFound is returned for lookups of absent records.
var ErrNotFound = fmt.Errorf("dataset: record not found")

// Data is the raw content a MemoryRepository serves.
type Data struct {
	Users           []models.User
	Projects        []models.Project
	Sessions        []models.CoachingSession
	Evaluations     []models.Evaluation
	LearningRecords []models.LearningRecord
	Portfolios      []models.Portfolio
}

// MemoryRepository is an explicitly constructed in-memory dataset. Each
// instance is independent so tests never share state.
type MemoryRepository struct {
	mu   sync.RWMutex
	data Data
}

func NewMemoryRepository(data Data) *MemoryRepository {
	return &MemoryRepository{data: data}
}

func (r *MemoryRepository) GetUser(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.data.Users {
		if r.data.Users[i].ID == id {
			u := r.data.Users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
}

func (r *MemoryRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for i := range r.data.Users {
		if strings.ToLower(r.data.Users[i].Email) == email {
			u := r.data.Users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user by email: %w", ErrNotFound)
}

func (r *MemoryRepository) ListUsers(_ context.Context, filters UserFilters) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.User
	query := strings.ToLower(filters.Query)
	for i := range r.data.Users {
		u := r.data.Users[i]
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(u.FullName), query) &&
			!strings.Contains(strings.ToLower(u.Email), query) {
			continue
		}
		out = append(out, &u)
	}
	return out, nil
}

func (r *MemoryRepository) GetProject(_ context.Context, id string) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.data.Projects {
		if r.data.Projects[i].ID == id {
			p := r.data.Projects[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
}

func (r *MemoryRepository) ListProjects(_ context.Context, filters ProjectFilters) ([]*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Project
	for i := range r.data.Projects {
		p := r.data.Projects[i]
		if filters.Status != nil && p.Status != *filters.Status {
			continue
		}
		if filters.AdvisorID != "" && p.AdvisorID != filters.AdvisorID {
			continue
		}
		if filters.MemberID != "" && !p.HasMember(filters.MemberID) {
			continue
		}
		out = append(out, &p)
	}
	return out, nil
}

func (r *MemoryRepository) ListSessions(_ context.Context, filters SessionFilters) ([]*models.CoachingSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.CoachingSession
	for i := range r.data.Sessions {
		s := r.data.Sessions[i]
		if filters.ProjectID != "" && s.ProjectID != filters.ProjectID {
			continue
		}
		if filters.AdvisorID != "" && s.AdvisorID != filters.AdvisorID {
			continue
		}
		if filters.StudentID != "" && !s.HasStudent(filters.StudentID) {
			continue
		}
		out = append(out, &s)
	}
	return out, nil
}

func (r *MemoryRepository) ListEvaluations(_ context.Context, projectID, committeeID string) ([]*models.Evaluation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Evaluation
	for i := range r.data.Evaluations {
		e := r.data.Evaluations[i]
		if projectID != "" && e.ProjectID != projectID {
			continue
		}
		if committeeID != "" && e.CommitteeID != committeeID {
			continue
		}
		out = append(out, &e)
	}
	return out, nil
}

func (r *MemoryRepository) ListLearningRecords(_ context.Context, studentID string) ([]*models.LearningRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.LearningRecord
	for i := range r.data.LearningRecords {
		lr := r.data.LearningRecords[i]
		if studentID != "" && lr.StudentID != studentID {
			continue
		}
		out = append(out, &lr)
	}
	return out, nil
}

func (r *MemoryRepository) GetPortfolio(_ context.Context, studentID string) (*models.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.data.Portfolios {
		if r.data.Portfolios[i].StudentID == studentID {
			p := r.data.Portfolios[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("portfolio for %s: %w", studentID, ErrNotFound)
}
