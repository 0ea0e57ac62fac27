package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SAP-F-2025/coaching-service/internal/dataset"
	"github.com/SAP-F-2025/coaching-service/internal/models"
	"github.com/SAP-F-2025/coaching-service/internal/policy"
)

// atRiskThreshold marks projects whose progress has fallen behind.
const atRiskThreshold = 50

// ===== RESPONSE DTOs =====

type AdminOverviewResponse struct {
	TotalUsers      int                     `json:"total_users"`
	UsersByRole     map[models.UserRole]int `json:"users_by_role"`
	TotalProjects   int                     `json:"total_projects"`
	AverageProgress float64                 `json:"average_progress"`
	AtRiskProjects  []ProjectSummary        `json:"at_risk_projects"`
}

type StatusCountResponse struct {
	Status     models.ProjectStatus `json:"status"`
	Count      int                  `json:"count"`
	Percentage float64              `json:"percentage"`
}

type ProjectReportResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	AdvisorName  string               `json:"advisor_name"`
	Status       models.ProjectStatus `json:"status"`
	Progress     int                  `json:"progress"`
	TeamSize     int                  `json:"team_size"`
	SessionCount int                  `json:"session_count"`
}

type AdminAnalyticsResponse struct {
	StatusDistribution []StatusCountResponse `json:"status_distribution"`
	AverageProgress    float64               `json:"average_progress"`
	AtRiskCount        int                   `json:"at_risk_count"`
	TotalSessions      int                   `json:"total_sessions"`
}

// ===== SERVICE INTERFACE =====

type AdminService interface {
	GetOverview(ctx context.Context, viewer models.User) (*AdminOverviewResponse, error)
	GetProjects(ctx context.Context, viewer models.User) ([]ProjectReportResponse, error)
	GetAnalytics(ctx context.Context, viewer models.User) (*AdminAnalyticsResponse, error)
}

// ===== SERVICE IMPLEMENTATION =====

type adminService struct {
	repo   dataset.Repository
	logger *slog.Logger
}

func NewAdminService(repo dataset.Repository, logger *slog.Logger) AdminService {
	return &adminService{repo: repo, logger: logger}
}

func (s *adminService) GetOverview(ctx context.Context, viewer models.User) (*AdminOverviewResponse, error) {
	if !policy.HasRole(viewer.Role, models.RoleAdmin) {
		return nil, ErrAccessDenied
	}
	s.logger.Info("Building admin overview", "user_id", viewer.ID)

	users, err := s.repo.ListUsers(ctx, dataset.UserFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	projects, err := s.repo.ListProjects(ctx, dataset.ProjectFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	names, err := userNames(ctx, s.repo)
	if err != nil {
		return nil, err
	}

	resp := &AdminOverviewResponse{
		TotalUsers:     len(users),
		UsersByRole:    map[models.UserRole]int{},
		TotalProjects:  len(projects),
		AtRiskProjects: []ProjectSummary{},
	}
	for _, u := range users {
		resp.UsersByRole[u.Role]++
	}

	var progressSum int
	for _, p := range projects {
		progressSum += p.Progress
		if p.Progress < atRiskThreshold {
			resp.AtRiskProjects = append(resp.AtRiskProjects, projectSummary(p, names))
		}
	}
	if len(projects) > 0 {
		resp.AverageProgress = roundFloat(float64(progressSum)/float64(len(projects)), 1)
	}
	sort.Slice(resp.AtRiskProjects, func(i, j int) bool {
		return resp.AtRiskProjects[i].Progress < resp.AtRiskProjects[j].Progress
	})
	return resp, nil
}

func (s *adminService) GetProjects(ctx context.Context, viewer models.User) ([]ProjectReportResponse, error) {
	if !policy.HasRole(viewer.Role, models.RoleAdmin) {
		return nil, ErrAccessDenied
	}

	projects, err := s.repo.ListProjects(ctx, dataset.ProjectFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	names, err := userNames(ctx, s.repo)
	if err != nil {
		return nil, err
	}

	out := make([]ProjectReportResponse, 0, len(projects))
	for _, p := range projects {
		sessions, err := s.repo.ListSessions(ctx, dataset.SessionFilters{ProjectID: p.ID})
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions for project %s: %w", p.ID, err)
		}
		out = append(out, ProjectReportResponse{
			ID:           p.ID,
			Name:         p.Name,
			AdvisorName:  names[p.AdvisorID],
			Status:       p.Status,
			Progress:     p.Progress,
			TeamSize:     len(p.TeamMembers),
			SessionCount: len(sessions),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *adminService) GetAnalytics(ctx context.Context, viewer models.User) (*AdminAnalyticsResponse, error) {
	if !policy.HasRole(viewer.Role, models.RoleAdmin) {
		return nil, ErrAccessDenied
	}

	projects, err := s.repo.ListProjects(ctx, dataset.ProjectFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	sessions, err := s.repo.ListSessions(ctx, dataset.SessionFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	counts := map[models.ProjectStatus]int{}
	var progressSum, atRisk int
	for _, p := range projects {
		counts[p.Status]++
		progressSum += p.Progress
		if p.Progress < atRiskThreshold {
			atRisk++
		}
	}

	resp := &AdminAnalyticsResponse{
		StatusDistribution: make([]StatusCountResponse, 0, len(models.AllProjectStatuses)),
		AtRiskCount:        atRisk,
		TotalSessions:      len(sessions),
	}
	for _, status := range models.AllProjectStatuses {
		entry := StatusCountResponse{Status: status, Count: counts[status]}
		if len(projects) > 0 {
			entry.Percentage = roundFloat(float64(counts[status])/float64(len(projects))*100, 1)
		}
		resp.StatusDistribution = append(resp.StatusDistribution, entry)
	}
	if len(projects) > 0 {
		resp.AverageProgress = roundFloat(float64(progressSum)/float64(len(projects)), 1)
	}
	return resp, nil
}
