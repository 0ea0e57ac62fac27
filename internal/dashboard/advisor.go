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

type AdvisorOverviewResponse struct {
	Projects           []ProjectSummary `json:"projects"`
	StudentCount       int              `json:"student_count"`
	SessionsThisWeek   int              `json:"sessions_this_week"`
	PendingActionItems int              `json:"pending_action_items"`
	OverdueActionItems int              `json:"overdue_action_items"`
}

type AdvisedStudentResponse struct {
	StudentID    string     `json:"student_id"`
	StudentName  string     `json:"student_name"`
	Projects     []string   `json:"projects"`
	PendingTasks int        `json:"pending_tasks"`
	OverdueTasks int        `json:"overdue_tasks"`
	LastSession  *time.Time `json:"last_session,omitempty"`
}

type SessionDetailResponse struct {
	ID           string              `json:"id"`
	ProjectID    string              `json:"project_id"`
	ProjectName  string              `json:"project_name"`
	StudentNames []string            `json:"student_names"`
	Date         time.Time           `json:"date"`
	Duration     int                 `json:"duration"`
	Topics       []string            `json:"topics"`
	Summary      string              `json:"summary"`
	ActionItems  []models.ActionItem `json:"action_items"`
	NextSession  *time.Time          `json:"next_session,omitempty"`
}

// ===== SERVICE INTERFACE =====

type AdvisorService interface {
	GetOverview(ctx context.Context, viewer models.User) (*AdvisorOverviewResponse, error)
	GetStudents(ctx context.Context, viewer models.User) ([]AdvisedStudentResponse, error)
	GetSessions(ctx context.Context, viewer models.User) ([]SessionDetailResponse, error)
	GetTimeline(ctx context.Context, viewer models.User) ([]TimelineEntryResponse, error)
}

// ===== SERVICE IMPLEMENTATION =====

type advisorService struct {
	repo   dataset.Repository
	logger *slog.Logger
	clock  settings
}

func NewAdvisorService(repo dataset.Repository, logger *slog.Logger, opts ...Option) AdvisorService {
	return &advisorService{
		repo:   repo,
		logger: logger,
		clock:  newSettings(opts...),
	}
}

func (s *advisorService) GetOverview(ctx context.Context, viewer models.User) (*AdvisorOverviewResponse, error) {
	if !policy.HasRole(viewer.Role, models.RoleAdvisor) {
		return nil, ErrAccessDenied
	}
	s.logger.Info("Building advisor overview", "user_id", viewer.ID)

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

	resp := &AdvisorOverviewResponse{Projects: make([]ProjectSummary, 0, len(projects))}
	students := map[string]struct{}{}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, projectSummary(p, names))
		for _, id := range p.TeamMembers {
			students[id] = struct{}{}
		}
	}
	resp.StudentCount = len(students)

	now := s.clock.now()
	weekStart := startOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)
	for _, cs := range sessions {
		if !cs.Date.Before(weekStart) && cs.Date.Before(weekEnd) {
			resp.SessionsThisWeek++
		}
		for _, item := range cs.ActionItems {
			if item.Status != models.ActionItemCompleted {
				resp.PendingActionItems++
			}
			if item.Overdue(now) {
				resp.OverdueActionItems++
			}
		}
	}
	return resp, nil
}

func (s *advisorService) GetStudents(ctx context.Context, viewer models.User) ([]AdvisedStudentResponse, error) {
	if !policy.HasRole(viewer.Role, models.RoleAdvisor) {
		return nil, ErrAccessDenied
	}

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
	byStudent := map[string]*AdvisedStudentResponse{}
	for _, p := range projects {
		for _, id := range p.TeamMembers {
			entry, ok := byStudent[id]
			if !ok {
				entry = &AdvisedStudentResponse{StudentID: id, StudentName: names[id]}
				byStudent[id] = entry
			}
			entry.Projects = append(entry.Projects, p.Name)
		}
	}
	for _, cs := range sessions {
		for _, id := range cs.StudentIDs {
			entry, ok := byStudent[id]
			if !ok {
				continue
			}
			if entry.LastSession == nil || cs.Date.After(*entry.LastSession) {
				d := cs.Date
				entry.LastSession = &d
			}
		}
		for _, item := range cs.ActionItems {
			entry, ok := byStudent[item.AssignedTo]
			if !ok {
				continue
			}
			if item.Status != models.ActionItemCompleted {
				entry.PendingTasks++
			}
			if item.Overdue(now) {
				entry.OverdueTasks++
			}
		}
	}

	out := make([]AdvisedStudentResponse, 0, len(byStudent))
	for _, entry := range byStudent {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out, nil
}

func (s *advisorService) GetSessions(ctx context.Context, viewer models.User) ([]SessionDetailResponse, error) {
	if !policy.HasRole(viewer.Role, models.RoleAdvisor) {
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
	names, err := userNames(ctx, s.repo)
	if err != nil {
		return nil, err
	}
	projectNames := projectNameIndex(projects)

	out := make([]SessionDetailResponse, 0, len(sessions))
	for _, cs := range sessions {
		studentNames := make([]string, 0, len(cs.StudentIDs))
		for _, id := range cs.StudentIDs {
			studentNames = append(studentNames, names[id])
		}
		out = append(out, SessionDetailResponse{
			ID:           cs.ID,
			ProjectID:    cs.ProjectID,
			ProjectName:  projectNames[cs.ProjectID],
			StudentNames: studentNames,
			Date:         cs.Date,
			Duration:     cs.Duration,
			Topics:       cs.Topics,
			Summary:      cs.Summary,
			ActionItems:  cs.ActionItems,
			NextSession:  cs.NextSessionDate,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *advisorService) GetTimeline(ctx context.Context, viewer models.User) ([]TimelineEntryResponse, error) {
	if !policy.HasRole(viewer.Role, models.RoleAdvisor) {
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

func (s *advisorService) myProjects(ctx context.Context, viewer models.User) ([]*models.Project, error) {
	projects, err := s.repo.ListProjects(ctx, dataset.ProjectFilters{AdvisorID: viewer.ID})
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

func (s *advisorService) mySessions(ctx context.Context, viewer models.User) ([]*models.CoachingSession, error) {
	sessions, err := s.repo.ListSessions(ctx, dataset.SessionFilters{AdvisorID: viewer.ID})
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
