// Package reports renders the admin export: an Excel workbook with the
// project summary and the evaluation summary. The workbook is built fully in
// memory; callers decide where the bytes go.
package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/coaching-service/internal/audit"
	"github.com/SAP-F-2025/coaching-service/internal/dataset"
	"github.com/SAP-F-2025/coaching-service/internal/models"
	"github.com/SAP-F-2025/coaching-service/internal/policy"
	"github.com/SAP-F-2025/coaching-service/internal/utils"
)

// ErrAccessDenied is returned when a non-admin requests an export.
var ErrAccessDenied = errors.New("reports: access denied")

const (
	projectSheet    = "Projects"
	evaluationSheet = "Evaluations"
)

// ===== SERVICE INTERFACE =====

type Service interface {
	// ExportWorkbook builds the xlsx bytes for the admin reports tab.
	ExportWorkbook(ctx context.Context, viewer models.User) ([]byte, error)
}

// ===== SERVICE IMPLEMENTATION =====

type service struct {
	repo   dataset.Repository
	sink   audit.Sink
	logger utils.Logger
	now    func() time.Time
}

func NewService(repo dataset.Repository, sink audit.Sink, logger utils.Logger) Service {
	return &service{repo: repo, sink: sink, logger: logger, now: time.Now}
}

func (s *service) ExportWorkbook(ctx context.Context, viewer models.User) ([]byte, error) {
	if !policy.HasRole(viewer.Role, models.RoleAdmin) {
		return nil, ErrAccessDenied
	}

	projects, err := s.repo.ListProjects(ctx, dataset.ProjectFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	users, err := s.repo.ListUsers(ctx, dataset.UserFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.FullName
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeProjectSheet(f, projects, names); err != nil {
		return nil, err
	}
	if err := s.writeEvaluationSheet(ctx, f, projects); err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.sink.Record(ctx, models.AuditEvent{
		UserID:       viewer.ID,
		UserRole:     string(viewer.Role),
		Action:       models.AuditReportExport,
		ResourceType: "report",
		ResourceID:   "project-summary",
		Details:      map[string]any{"projects": len(projects)},
		Timestamp:    s.now(),
		Success:      true,
	})
	s.logger.Info("report workbook exported", "user_id", viewer.ID, "projects", len(projects))
	return buf.Bytes(), nil
}

func writeProjectSheet(f *excelize.File, projects []*models.Project, names map[string]string) error {
	if _, err := f.NewSheet(projectSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", projectSheet, err)
	}

	header := []any{"ID", "Name", "Advisor", "Status", "Progress (%)", "Team Size"}
	if err := f.SetSheetRow(projectSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, p := range projects {
		row := []any{p.ID, p.Name, names[p.AdvisorID], string(p.Status), p.Progress, len(p.TeamMembers)}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(projectSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write project row: %w", err)
		}
	}
	return nil
}

func (s *service) writeEvaluationSheet(ctx context.Context, f *excelize.File, projects []*models.Project) error {
	if _, err := f.NewSheet(evaluationSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", evaluationSheet, err)
	}

	header := []any{"Evaluation ID", "Project", "Committee Member", "Total", "Max", "Percentage"}
	if err := f.SetSheetRow(evaluationSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := 2
	for _, p := range projects {
		evals, err := s.repo.ListEvaluations(ctx, p.ID, "")
		if err != nil {
			return fmt.Errorf("failed to list evaluations for %s: %w", p.ID, err)
		}
		for _, e := range evals {
			total, max := e.Totals()
			percentage := 0.0
			if max > 0 {
				percentage = total / max * 100
			}
			values := []any{e.ID, p.Name, e.CommitteeID, total, max, percentage}
			cell := fmt.Sprintf("A%d", row)
			if err := f.SetSheetRow(evaluationSheet, cell, &values); err != nil {
				return fmt.Errorf("failed to write evaluation row: %w", err)
			}
			row++
		}
	}
	return nil
}
