package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/SAP-F-2025/coaching-service/internal/dataset"
	"github.com/SAP-F-2025/coaching-service/internal/models"
)

// userNames loads the id -> display name index used to decorate DTOs.
func userNames(ctx context.Context, repo dataset.Repository) (map[string]string, error) {
	users, err := repo.ListUsers(ctx, dataset.UserFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.FullName
	}
	return names, nil
}

func projectNameIndex(projects []*models.Project) map[string]string {
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names
}

func projectSummary(p *models.Project, userNames map[string]string) ProjectSummary {
	return ProjectSummary{
		ID:          p.ID,
		Name:        p.Name,
		Status:      p.Status,
		Progress:    p.Progress,
		AdvisorName: userNames[p.AdvisorID],
		TeamSize:    len(p.TeamMembers),
	}
}

// timelineEntries renders sessions newest first.
func timelineEntries(sessions []*models.CoachingSession, projectNames map[string]string) []TimelineEntryResponse {
	out := make([]TimelineEntryResponse, 0, len(sessions))
	for _, cs := range sessions {
		out = append(out, TimelineEntryResponse{
			SessionID:   cs.ID,
			ProjectID:   cs.ProjectID,
			ProjectName: projectNames[cs.ProjectID],
			Date:        cs.Date,
			Summary:     cs.Summary,
			Topics:      cs.Topics,
			ActionItems: len(cs.ActionItems),
			Evidence:    len(cs.EvidenceFiles),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}
