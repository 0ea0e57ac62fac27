package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SAP-F-2025/coaching-service/internal/dataset"
	"github.com/SAP-F-2025/coaching-service/internal/models"
	"github.com/SAP-F-2025/coaching-service/internal/policy"
)

// ===== RESPONSE DTOs =====

type StudentOverviewResponse struct {
	Projects         []ProjectSummary `json:"projects"`
	ActiveProjects   int              `json:"active_projects"`
	PendingTasks     int              `json:"pending_tasks"`
	CompletedTasks   int              `json:"completed_tasks"`
	UpcomingSessions []SessionSummary `json:"upcoming_sessions"`
}

type TaskResponse struct {
	ID          string                  `json:"id"`
	Description string                  `json:"description"`
	ProjectID   string                  `json:"project_id"`
	ProjectName string                  `json:"project_name"`
	DueDate     time.Time               `json:"due_date"`
	Status      models.ActionItemStatus `json:"status"`
	Priority    models.Priority         `json:"priority"`
	Overdue     bool                    `json:"overdue"`
}

type StudentTasksResponse struct {
	Items      []TaskResponse `json:"items"`
	Pending    int            `json:"pending"`
	InProgress int            `json:"in_progress"`
	Completed  int            `json:"completed"`
	Overdue    int            `json:"overdue"`
}

type PortfolioResponse struct {
	Portfolio       *models.Portfolio       `json:"portfolio,omitempty"`
	LearningRecords []models.LearningRecord `json:"learning_records"`
}

// ===== SERVICE INTERFACE =====

type StudentService interface {
	GetOverview(ctx context.Context, viewer models.User) (*StudentOverviewResponse, error)
	GetTimeline(ctx context.Context, viewer models.User) ([]TimelineEntryResponse, error)
	GetTasks(ctx context.Context, viewer models.User) (*StudentTasksResponse, error)
	GetPortfolio(ctx context.Context, viewer models.User) (*PortfolioResponse, error)
}

// ===== SERVICE IMPLEMENTATION =====

type studentService struct {
	repo   dataset.Repository
	logger *slog.Logger
	clock  settings
}

func NewStudentService(repo dataset.Repository, logger *slog.Logger, opts ...Option) StudentService {
	return &studentService{
		repo:   repo,
		logger: logger,
		clock:  newSettings(opts...),
	}
}

func (s *studentService) GetOverview(ctx context.Context, viewer models.User) (*StudentOverviewResponse, error) {
	if !policy.HasRole(viewer.Role, models.RoleStudent) {
		return nil, ErrAccessDenied
	}
	s.logger.Info("Building student overview", "user_id", viewer.ID)

	projects, err := s.myProjects(ctx, viewer)
	if err != nil {
		return nil, err
	}
	sessions, err := s.mySessions(ctx, viewer)
	if err != nil {
		return nil, err
	}

	names, err := userNames(ctx, s.repo)
	if err != nil {
		return nil, err
	}

	now := s.clock.now()
	resp := &StudentOverviewResponse{
		Projects:         make([]ProjectSummary, 0, len(projects)),
		UpcomingSessions: []SessionSummary{},
	}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, projectSummary(p, names))
		if p.Status != models.ProjectCompleted {
			resp.ActiveProjects++
		}
	}
	projectNames := projectNameIndex(projects)
	for _, cs := range sessions {
		for _, item := range cs.ActionItems {
			if item.AssignedTo != viewer.ID {
				continue
			}
			if item.Status == models.ActionItemCompleted {
				resp.CompletedTasks++
			} else {
				resp.PendingTasks++
			}
		}
		if cs.Date.After(now) {
			resp.UpcomingSessions = append(resp.UpcomingSessions, SessionSummary{
				ID:          cs.ID,
				ProjectID:   cs.ProjectID,
				ProjectName: projectNames[cs.ProjectID],
				AdvisorName: names[cs.AdvisorID],
				Date:        cs.Date,
				Duration:    cs.Duration,
				Topics:      cs.Topics,
			})
		}
	}
	sort.Slice(resp.UpcomingSessions, func(i, j int) bool {
		return resp.UpcomingSessions[i].Date.Before(resp.UpcomingSessions[j].Date)
	})
	return resp, nil
}

func (s *studentService) GetTimeline(ctx context.Context, viewer models.User) ([]TimelineEntryResponse, error) {
	if !policy.HasRole(viewer.Role, models.RoleStudent) {
		return nil, ErrAccessDenied
	}

	sessions, err := s.mySessions(ctx, viewer)
	if err != nil {
		return nil, err
	}
	projects, err := s.myProjects(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return timelineEntries(sessions, projectNameIndex(projects)), nil
}

func (s *studentService) GetTasks(ctx context.Context, viewer models.User) (*StudentTasksResponse, error) {
	if !policy.HasRole(viewer.Role, models.RoleStudent) {
		return nil, ErrAccessDenied
	}

	sessions, err := s.mySessions(ctx, viewer)
	if err != nil {
		return nil, err
	}
	projects, err := s.myProjects(ctx, viewer)
	if err != nil {
		return nil, err
	}
	projectNames := projectNameIndex(projects)

	now := s.clock.now()
	resp := &StudentTasksResponse{Items: []TaskResponse{}}
	for _, cs := range sessions {
		for _, item := range cs.ActionItems {
			if item.AssignedTo != viewer.ID {
				continue
			}
			overdue := item.Overdue(now)
			resp.Items = append(resp.Items, TaskResponse{
				ID:          item.ID,
				Description: item.Description,
				ProjectID:   cs.ProjectID,
				ProjectName: projectNames[cs.ProjectID],
				DueDate:     item.DueDate,
				Status:      item.Status,
				Priority:    item.Priority,
				Overdue:     overdue,
			})
			switch item.Status {
			case models.ActionItemPending:
				resp.Pending++
			case models.ActionItemInProgress:
				resp.InProgress++
			case models.ActionItemCompleted:
				resp.Completed++
			}
			if overdue {
				resp.Overdue++
			}
		}
	}
	sort.Slice(resp.Items, func(i, j int) bool {
		return resp.Items[i].DueDate.Before(resp.Items[j].DueDate)
	})
	return resp, nil
}

func (s *studentService) GetPortfolio(ctx context.Context, viewer models.User) (*PortfolioResponse, error) {
	if !policy.HasRole(viewer.Role, models.RoleStudent) {
		return nil, ErrAccessDenied
	}

	resp := &PortfolioResponse{LearningRecords: []models.LearningRecord{}}

	portfolio, err := s.repo.GetPortfolio(ctx, viewer.ID)
	switch {
	case errors.Is(err, dataset.ErrNotFound):
		// a student without a portfolio still sees the tab
	case err != nil:
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	default:
		res := policy.Resource{OwnerUserID: portfolio.StudentID}
		if policy.CanAccessResource(viewer.Role, viewer.ID, res) {
			resp.Portfolio = portfolio
		}
	}

	records, err := s.repo.ListLearningRecords(ctx, viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load learning records: %w", err)
	}
	for _, lr := range records {
		res := policy.Resource{OwnerUserID: lr.StudentID}
		if policy.CanAccessResource(viewer.Role, viewer.ID, res) {
			resp.LearningRecords = append(resp.LearningRecords, *lr)
		}
	}
	return resp, nil
}

func (s *studentService) myProjects(ctx context.Context, viewer models.User) ([]*models.Project, error) {
	projects, err := s.repo.ListProjects(ctx, dataset.ProjectFilters{MemberID: viewer.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	var out []*models.Project
	for _, p := range projects {
		if policy.CanAccessResource(viewer.Role, viewer.ID, projectResource(p, nil, viewer.ID)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *studentService) mySessions(ctx context.Context, viewer models.User) ([]*models.CoachingSession, error) {
	sessions, err := s.repo.ListSessions(ctx, dataset.SessionFilters{StudentID: viewer.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	var out []*models.CoachingSession
	for _, cs := range sessions {
		if policy.CanAccessResource(viewer.Role, viewer.ID, sessionResource(cs, viewer.ID)) {
			out = append(out, cs)
		}
	}
	return out, nil
}
