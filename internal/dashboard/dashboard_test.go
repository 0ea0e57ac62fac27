package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/coaching-service/internal/dataset"
	"github.com/SAP-F-2025/coaching-service/internal/models"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fixedClock pins "now" to Wednesday 2024-11-20 18:00 UTC, the same week as
// the cs1 and cs3 demo sessions.
func fixedClock() time.Time {
	return time.Date(2024, 11, 20, 18, 0, 0, 0, time.UTC)
}

// lateClock is a week later, after ai1's due date has passed.
func lateClock() time.Time {
	return time.Date(2024, 11, 28, 0, 0, 0, 0, time.UTC)
}

func demoRepo() dataset.Repository {
	return dataset.NewMemoryRepository(dataset.Demo())
}

func demoUser(t *testing.T, repo dataset.Repository, id string) models.User {
	t.Helper()
	u, err := repo.GetUser(context.Background(), id)
	if err != nil {
		t.Fatalf("fixture user %s: %v", id, err)
	}
	return *u
}

func TestStudentService_Overview(t *testing.T) {
	repo := demoRepo()
	svc := NewStudentService(repo, testLogger, WithClock(fixedClock))

	got, err := svc.GetOverview(context.Background(), demoUser(t, repo, "s1"))
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}
	if len(got.Projects) != 2 {
		t.Errorf("projects = %d, want 2", len(got.Projects))
	}
	if got.ActiveProjects != 2 {
		t.Errorf("active projects = %d, want 2", got.ActiveProjects)
	}
	if got.PendingTasks != 2 || got.CompletedTasks != 1 {
		t.Errorf("tasks = %d pending / %d completed, want 2/1", got.PendingTasks, got.CompletedTasks)
	}
	if len(got.UpcomingSessions) != 0 {
		t.Errorf("upcoming sessions = %d, want 0", len(got.UpcomingSessions))
	}
}

func TestStudentService_Tasks(t *testing.T) {
	repo := demoRepo()
	svc := NewStudentService(repo, testLogger, WithClock(lateClock))

	got, err := svc.GetTasks(context.Background(), demoUser(t, repo, "s1"))
	if err != nil {
		t.Fatalf("GetTasks: %v", err)
	}
	if got.Pending != 1 || got.InProgress != 1 || got.Completed != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", got.Pending, got.InProgress, got.Completed)
	}
	if got.Overdue != 1 {
		t.Errorf("overdue = %d, want 1", got.Overdue)
	}
	wantOrder := []string{"ai4", "ai1", "ai3"}
	if len(got.Items) != len(wantOrder) {
		t.Fatalf("items = %d, want %d", len(got.Items), len(wantOrder))
	}
	for i, id := range wantOrder {
		if got.Items[i].ID != id {
			t.Errorf("item[%d] = %s, want %s", i, got.Items[i].ID, id)
		}
	}
	if !got.Items[1].Overdue {
		t.Error("ai1 should be overdue a week after its due date")
	}
}

func TestStudentService_TasksScopedToViewer(t *testing.T) {
	repo := demoRepo()
	svc := NewStudentService(repo, testLogger, WithClock(fixedClock))

	got, err := svc.GetTasks(context.Background(), demoUser(t, repo, "s2"))
	if err != nil {
		t.Fatalf("GetTasks: %v", err)
	}
	if got.Pending != 0 || got.Completed != 2 {
		t.Errorf("s2 sees %d pending / %d completed, want 0/2", got.Pending, got.Completed)
	}
	for _, item := range got.Items {
		if item.ID == "ai1" || item.ID == "ai3" {
			t.Errorf("s2 must not see s1's task %s", item.ID)
		}
	}
}

func TestStudentService_Portfolio(t *testing.T) {
	repo := demoRepo()
	svc := NewStudentService(repo, testLogger)
	ctx := context.Background()

	got, err := svc.GetPortfolio(ctx, demoUser(t, repo, "s1"))
	if err != nil {
		t.Fatalf("GetPortfolio: %v", err)
	}
	if got.Portfolio == nil || got.Portfolio.ID != "pf1" {
		t.Errorf("portfolio = %+v, want pf1", got.Portfolio)
	}
	if len(got.LearningRecords) != 1 {
		t.Errorf("learning records = %d, want 1", len(got.LearningRecords))
	}

	// A student without a portfolio still gets an empty view, not an error.
	got, err = svc.GetPortfolio(ctx, demoUser(t, repo, "s3"))
	if err != nil {
		t.Fatalf("GetPortfolio without portfolio: %v", err)
	}
	if got.Portfolio != nil || len(got.LearningRecords) != 0 {
		t.Errorf("s3 view = %+v, want empty", got)
	}
}

func TestAdvisorService_Overview(t *testing.T) {
	repo := demoRepo()
	svc := NewAdvisorService(repo, testLogger, WithClock(fixedClock))

	got, err := svc.GetOverview(context.Background(), demoUser(t, repo, "a1"))
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}
	if len(got.Projects) != 2 {
		t.Errorf("projects = %d, want 2", len(got.Projects))
	}
	if got.StudentCount != 3 {
		t.Errorf("students = %d, want 3", got.StudentCount)
	}
	if got.SessionsThisWeek != 2 {
		t.Errorf("sessions this week = %d, want 2", got.SessionsThisWeek)
	}
	if got.PendingActionItems != 4 {
		t.Errorf("pending items = %d, want 4", got.PendingActionItems)
	}
	if got.OverdueActionItems != 0 {
		t.Errorf("overdue items = %d, want 0", got.OverdueActionItems)
	}
}

func TestAdvisorService_Students(t *testing.T) {
	repo := demoRepo()
	svc := NewAdvisorService(repo, testLogger, WithClock(fixedClock))

	got, err := svc.GetStudents(context.Background(), demoUser(t, repo, "a1"))
	if err != nil {
		t.Fatalf("GetStudents: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("students = %d, want 3", len(got))
	}
	// Sorted by student id: s1, s2, s3.
	s1 := got[0]
	if s1.StudentID != "s1" || s1.PendingTasks != 2 {
		t.Errorf("s1 entry = %+v, want 2 pending tasks", s1)
	}
	if s1.LastSession == nil || !s1.LastSession.Equal(time.Date(2024, 11, 20, 14, 0, 0, 0, time.UTC)) {
		t.Errorf("s1 last session = %v, want cs1 date", s1.LastSession)
	}
}

func TestAdvisorService_SessionsNewestFirst(t *testing.T) {
	repo := demoRepo()
	svc := NewAdvisorService(repo, testLogger, WithClock(fixedClock))

	got, err := svc.GetSessions(context.Background(), demoUser(t, repo, "a1"))
	if err != nil {
		t.Fatalf("GetSessions: %v", err)
	}
	wantOrder := []string{"cs1", "cs3", "cs2"}
	if len(got) != len(wantOrder) {
		t.Fatalf("sessions = %d, want %d", len(got), len(wantOrder))
	}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("session[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestAdminService_Overview(t *testing.T) {
	repo := demoRepo()
	svc := NewAdminService(repo, testLogger)

	got, err := svc.GetOverview(context.Background(), demoUser(t, repo, "admin1"))
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}
	if got.TotalUsers != 7 || got.TotalProjects != 3 {
		t.Errorf("totals = %d users / %d projects, want 7/3", got.TotalUsers, got.TotalProjects)
	}
	if got.UsersByRole[models.RoleStudent] != 3 || got.UsersByRole[models.RoleAdvisor] != 2 {
		t.Errorf("users by role = %v", got.UsersByRole)
	}
	if got.AverageProgress != 63.3 {
		t.Errorf("average progress = %v, want 63.3", got.AverageProgress)
	}
	if len(got.AtRiskProjects) != 1 || got.AtRiskProjects[0].ID != "p2" {
		t.Errorf("at-risk projects = %v, want [p2]", got.AtRiskProjects)
	}
}

func TestAdminService_Analytics(t *testing.T) {
	repo := demoRepo()
	svc := NewAdminService(repo, testLogger)

	got, err := svc.GetAnalytics(context.Background(), demoUser(t, repo, "admin1"))
	if err != nil {
		t.Fatalf("GetAnalytics: %v", err)
	}
	if got.TotalSessions != 3 || got.AtRiskCount != 1 {
		t.Errorf("sessions = %d, at-risk = %d, want 3/1", got.TotalSessions, got.AtRiskCount)
	}
	byStatus := map[models.ProjectStatus]StatusCountResponse{}
	for _, entry := range got.StatusDistribution {
		byStatus[entry.Status] = entry
	}
	if byStatus[models.ProjectDesign].Count != 1 || byStatus[models.ProjectDesign].Percentage != 33.3 {
		t.Errorf("design distribution = %+v", byStatus[models.ProjectDesign])
	}
	if byStatus[models.ProjectProposal].Count != 0 {
		t.Errorf("proposal count = %d, want 0", byStatus[models.ProjectProposal].Count)
	}
}

func TestCommitteeService_Projects(t *testing.T) {
	repo := demoRepo()
	svc := NewCommitteeService(repo, testLogger)

	got, err := svc.GetProjects(context.Background(), demoUser(t, repo, "c1"))
	if err != nil {
		t.Fatalf("GetProjects: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("projects = %v, want only the evaluated p3", got)
	}
	if got[0].ID != "p3" || !got[0].Evaluated {
		t.Errorf("entry = %+v, want evaluated p3", got[0])
	}
}

func TestCommitteeService_Evaluations(t *testing.T) {
	repo := demoRepo()
	svc := NewCommitteeService(repo, testLogger)

	got, err := svc.GetEvaluations(context.Background(), demoUser(t, repo, "c1"))
	if err != nil {
		t.Fatalf("GetEvaluations: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("evaluations = %d, want 1", len(got))
	}
	e := got[0]
	if e.Total != 87 || e.Max != 100 || e.Percentage != 87 {
		t.Errorf("evaluation totals = %v/%v (%v%%), want 87/100 (87%%)", e.Total, e.Max, e.Percentage)
	}
	if e.ProjectName != "Healthcare Appointment System" {
		t.Errorf("project name = %q", e.ProjectName)
	}
}

func TestDashboards_RejectWrongRole(t *testing.T) {
	repo := demoRepo()
	ctx := context.Background()
	student := demoUser(t, repo, "s1")
	advisor := demoUser(t, repo, "a1")

	tests := []struct {
		name string
		call func() error
	}{
		{"student dashboard as advisor", func() error {
			_, err := NewStudentService(repo, testLogger).GetOverview(ctx, advisor)
			return err
		}},
		{"advisor dashboard as student", func() error {
			_, err := NewAdvisorService(repo, testLogger).GetOverview(ctx, student)
			return err
		}},
		{"admin dashboard as advisor", func() error {
			_, err := NewAdminService(repo, testLogger).GetOverview(ctx, advisor)
			return err
		}},
		{"committee dashboard as student", func() error {
			_, err := NewCommitteeService(repo, testLogger).GetProjects(ctx, student)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, ErrAccessDenied) {
				t.Errorf("err = %v, want ErrAccessDenied", err)
			}
		})
	}
}

func TestTabs_Valid(t *testing.T) {
	for _, tab := range AllStudentTabs {
		if !tab.Valid() {
			t.Errorf("student tab %q reported invalid", tab)
		}
	}
	for _, tab := range AllAdvisorTabs {
		if !tab.Valid() {
			t.Errorf("advisor tab %q reported invalid", tab)
		}
	}
	for _, tab := range AllAdminTabs {
		if !tab.Valid() {
			t.Errorf("admin tab %q reported invalid", tab)
		}
	}
	for _, tab := range AllCommitteeTabs {
		if !tab.Valid() {
			t.Errorf("committee tab %q reported invalid", tab)
		}
	}
	if StudentTab("settings").Valid() || AdminTab("billing").Valid() {
		t.Error("unknown tabs must be invalid")
	}
}
