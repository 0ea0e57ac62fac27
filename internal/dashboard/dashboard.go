// Package dashboard projects the shared dataset into the four role views.
// Every service checks the viewer's role at the entry point (a mismatch is a
// blocking ErrAccessDenied) and authorises each record through the policy
// evaluator before it contributes to any aggregate.
package dashboard

import (
	"errors"
	"math"
	"time"

	"github.com/SAP-F-2025/coaching-service/internal/models"
	"github.com/SAP-F-2025/coaching-service/internal/policy"
)

// ErrAccessDenied is returned when the viewer's role does not match the
// dashboard being requested.
var ErrAccessDenied = errors.New("dashboard: access denied")

// ===== TABS =====

type StudentTab string

const (
	StudentTabOverview  StudentTab = "overview"
	StudentTabTimeline  StudentTab = "timeline"
	StudentTabTasks     StudentTab = "tasks"
	StudentTabPortfolio StudentTab = "portfolio"
)

var AllStudentTabs = []StudentTab{StudentTabOverview, StudentTabTimeline, StudentTabTasks, StudentTabPortfolio}

func (t StudentTab) Valid() bool {
	switch t {
	case StudentTabOverview, StudentTabTimeline, StudentTabTasks, StudentTabPortfolio:
		return true
	}
	return false
}

type AdvisorTab string

const (
	AdvisorTabOverview AdvisorTab = "overview"
	AdvisorTabStudents AdvisorTab = "students"
	AdvisorTabSessions AdvisorTab = "sessions"
	AdvisorTabTimeline AdvisorTab = "timeline"
)

var AllAdvisorTabs = []AdvisorTab{AdvisorTabOverview, AdvisorTabStudents, AdvisorTabSessions, AdvisorTabTimeline}

func (t AdvisorTab) Valid() bool {
	switch t {
	case AdvisorTabOverview, AdvisorTabStudents, AdvisorTabSessions, AdvisorTabTimeline:
		return true
	}
	return false
}

type AdminTab string

const (
	AdminTabOverview  AdminTab = "overview"
	AdminTabProjects  AdminTab = "projects"
	AdminTabAnalytics AdminTab = "analytics"
	AdminTabReports   AdminTab = "reports"
)

var AllAdminTabs = []AdminTab{AdminTabOverview, AdminTabProjects, AdminTabAnalytics, AdminTabReports}

func (t AdminTab) Valid() bool {
	switch t {
	case AdminTabOverview, AdminTabProjects, AdminTabAnalytics, AdminTabReports:
		return true
	}
	return false
}

type CommitteeTab string

const (
	CommitteeTabProjects    CommitteeTab = "projects"
	CommitteeTabEvaluations CommitteeTab = "evaluations"
)

var AllCommitteeTabs = []CommitteeTab{CommitteeTabProjects, CommitteeTabEvaluations}

func (t CommitteeTab) Valid() bool {
	switch t {
	case CommitteeTabProjects, CommitteeTabEvaluations:
		return true
	}
	return false
}

// ===== SHARED DTOs =====

type ProjectSummary struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Status      models.ProjectStatus `json:"status"`
	Progress    int                  `json:"progress"`
	AdvisorName string               `json:"advisor_name"`
	TeamSize    int                  `json:"team_size"`
}

type SessionSummary struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	ProjectName string    `json:"project_name"`
	AdvisorName string    `json:"advisor_name"`
	Date        time.Time `json:"date"`
	Duration    int       `json:"duration"`
	Topics      []string  `json:"topics"`
}

type TimelineEntryResponse struct {
	SessionID   string    `json:"session_id"`
	ProjectID   string    `json:"project_id"`
	ProjectName string    `json:"project_name"`
	Date        time.Time `json:"date"`
	Summary     string    `json:"summary"`
	Topics      []string  `json:"topics"`
	ActionItems int       `json:"action_items"`
	Evidence    int       `json:"evidence"`
}

// ===== CLOCK =====

type settings struct {
	now func() time.Time
}

type Option func(*settings)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

func newSettings(opts ...Option) settings {
	s := settings{now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ===== HELPERS =====

// projectResource builds the ownership descriptor for a project as seen by
// one viewer. Team membership collapses into the single owner dimension:
// the viewer owns the project exactly when they are on its team.
func projectResource(p *models.Project, evaluatorIDs []string, viewerID string) policy.Resource {
	res := policy.Resource{
		OwnerAdvisorID:       p.AdvisorID,
		AssignedEvaluatorIDs: evaluatorIDs,
	}
	if p.HasMember(viewerID) {
		res.OwnerUserID = viewerID
	}
	return res
}

func sessionResource(cs *models.CoachingSession, viewerID string) policy.Resource {
	res := policy.Resource{OwnerAdvisorID: cs.AdvisorID}
	if cs.HasStudent(viewerID) {
		res.OwnerUserID = viewerID
	}
	return res
}

func roundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// startOfWeek returns Monday 00:00 of the week containing t, in t's location.
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 { // Sunday
		weekday = 7
	}
	day := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}
