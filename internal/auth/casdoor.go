package auth

import (
	"context"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"

	"github.com/SAP-F-2025/coaching-service/internal/config"
	"github.com/SAP-F-2025/coaching-service/internal/models"
)

// CasdoorAuthenticator verifies credentials against a Casdoor deployment.
// Any provider-side failure is reported to the caller as a plain credential
// rejection; details are not leaked through the login surface.
type CasdoorAuthenticator struct {
	client *casdoorsdk.Client
}

func NewCasdoorAuthenticator(cfg config.CasdoorConfig) *CasdoorAuthenticator {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Organization,
		cfg.Application,
	)
	return &CasdoorAuthenticator{client: client}
}

func (a *CasdoorAuthenticator) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	casdoorUser, err := a.client.GetUserByEmail(strings.TrimSpace(email))
	if err != nil || casdoorUser == nil {
		return nil, ErrInvalidCredentials
	}

	check := *casdoorUser
	check.Password = password
	ok, err := a.client.CheckUserPassword(&check)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	return convertCasdoorUser(casdoorUser), nil
}

func convertCasdoorUser(cu *casdoorsdk.User) *models.User {
	user := &models.User{
		ID:       cu.Id,
		FullName: cu.DisplayName,
		Email:    cu.Email,
		Role:     convertCasdoorRoles(cu),
	}
	if cu.Avatar != "" {
		avatar := cu.Avatar
		user.AvatarURL = &avatar
	}
	return user
}

// convertCasdoorRoles maps Casdoor roles to the internal role set. Admin
// wins over everything else; an account with no recognizable role defaults
// to student.
func convertCasdoorRoles(cu *casdoorsdk.User) models.UserRole {
	if cu.IsAdmin {
		return models.RoleAdmin
	}

	var first models.UserRole
	for _, r := range cu.Roles {
		mapped, ok := mapCasdoorRole(r.Name)
		if !ok {
			continue
		}
		if mapped == models.RoleAdmin {
			return models.RoleAdmin
		}
		if first == "" {
			first = mapped
		}
	}
	if first == "" {
		return models.RoleStudent
	}
	return first
}

func mapCasdoorRole(name string) (models.UserRole, bool) {
	switch strings.ToLower(name) {
	case "student", "learner":
		return models.RoleStudent, true
	case "advisor", "teacher", "instructor", "supervisor":
		return models.RoleAdvisor, true
	case "admin", "administrator":
		return models.RoleAdmin, true
	case "committee", "evaluator", "external":
		return models.RoleCommittee, true
	default:
		return "", false
	}
}
