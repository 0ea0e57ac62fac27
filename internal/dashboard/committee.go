package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SAP-F-2025/coaching-service/internal/dataset"
	"github.com/SAP-F-2025/coaching-service/internal/models"
	"github.com/SAP-F-2025/coaching-service/internal/policy"
)

// ===== RESPONSE DTOs =====

type CommitteeProjectResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status"`
	Progress    int                  `json:"progress"`
	TeamNames   []string             `json:"team_names"`
	AdvisorName string               `json:"advisor_name"`
	Evaluated   bool                 `json:"evaluated"`
}

type EvaluationSummaryResponse struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	ProjectName string    `json:"project_name"`
	Total       float64   `json:"total"`
	Max         float64   `json:"max"`
	Percentage  float64   `json:"percentage"`
	CreatedAt   time.Time `json:"created_at"`
}

// ===== SERVICE INTERFACE =====

type CommitteeService interface {
	GetProjects(ctx context.Context, viewer models.User) ([]CommitteeProjectResponse, error)
	GetEvaluations(ctx context.Context, viewer models.User) ([]EvaluationSummaryResponse, error)
}

// ===== SERVICE IMPLEMENTATION =====

type committeeService struct {
	repo   dataset.Repository
	logger *slog.Logger
}

func NewCommitteeService(repo dataset.Repository, logger *slog.Logger) CommitteeService {
	return &committeeService{repo: repo, logger: logger}
}

// GetProjects lists what a committee member may review: projects they have
// already evaluated, plus projects that reached the presentation or completed
// stage and are therefore ready for evaluation. The readiness rule widens the
// listing only; record-level access still goes through the policy evaluator
// for evaluated projects.
func (s *committeeService) GetProjects(ctx context.Context, viewer models.User) ([]CommitteeProjectResponse, error) {
	if !policy.HasRole(viewer.Role, models.RoleCommittee) {
		return nil, ErrAccessDenied
	}
	s.logger.Info("Listing committee projects", "user_id", viewer.ID)

	projects, err := s.repo.ListProjects(ctx, dataset.ProjectFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	evaluated, err := s.evaluatedProjects(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}
	names, err := userNames(ctx, s.repo)
	if err != nil {
		return nil, err
	}

	out := make([]CommitteeProjectResponse, 0, len(projects))
	for _, p := range projects {
		var evaluators []string
		if evaluated[p.ID] {
			evaluators = []string{viewer.ID}
		}
		assigned := policy.CanAccessResource(viewer.Role, viewer.ID, projectResource(p, evaluators, viewer.ID))
		ready := p.Status == models.ProjectPresentation || p.Status == models.ProjectCompleted
		if !assigned && !ready {
			continue
		}
		teamNames := make([]string, 0, len(p.TeamMembers))
		for _, id := range p.TeamMembers {
			teamNames = append(teamNames, names[id])
		}
		out = append(out, CommitteeProjectResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Status:      p.Status,
			Progress:    p.Progress,
			TeamNames:   teamNames,
			AdvisorName: names[p.AdvisorID],
			Evaluated:   evaluated[p.ID],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *committeeService) GetEvaluations(ctx context.Context, viewer models.User) ([]EvaluationSummaryResponse, error) {
	if !policy.HasRole(viewer.Role, models.RoleCommittee) {
		return nil, ErrAccessDenied
	}

	evals, err := s.repo.ListEvaluations(ctx, "", viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}

	out := make([]EvaluationSummaryResponse, 0, len(evals))
	for _, e := range evals {
		res := policy.Resource{AssignedEvaluatorIDs: []string{e.CommitteeID}}
		if !policy.CanAccessResource(viewer.Role, viewer.ID, res) {
			continue
		}
		projectName := ""
		if p, err := s.repo.GetProject(ctx, e.ProjectID); err == nil {
			projectName = p.Name
		}
		total, max := e.Totals()
		entry := EvaluationSummaryResponse{
			ID:          e.ID,
			ProjectID:   e.ProjectID,
			ProjectName: projectName,
			Total:       total,
			Max:         max,
			CreatedAt:   e.CreatedAt,
		}
		if max > 0 {
			entry.Percentage = roundFloat(total/max*100, 1)
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *committeeService) evaluatedProjects(ctx context.Context, committeeID string) (map[string]bool, error) {
	evals, err := s.repo.ListEvaluations(ctx, "", committeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	out := make(map[string]bool, len(evals))
	for _, e := range evals {
		out[e.ProjectID] = true
	}
	return out, nil
}
