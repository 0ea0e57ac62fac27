// Package policy decides visibility and mutation rights. Every function here
// is a pure predicate: deterministic, side-effect free, and total over the
// closed role set.
package policy

import (
	"slices"

	"github.com/SAP-F-2025/coaching-service/internal/models"
)

// Resource describes who owns the record being checked. Zero values mean
// "not owned in that dimension" and never match; an empty descriptor grants
// nothing except to admins.
type Resource struct {
	// OwnerUserID is the student the record belongs to.
	OwnerUserID string
	// OwnerAdvisorID is the advisor supervising the record.
	OwnerAdvisorID string
	// AssignedEvaluatorIDs are committee members assigned to evaluate it.
	AssignedEvaluatorIDs []string
}

// HasRole reports whether role is one of the allowed roles.
func HasRole(role models.UserRole, allowed ...models.UserRole) bool {
	return slices.Contains(allowed, role)
}

// CanAccessResource applies the fixed precedence:
//
//	admin      -> always allowed
//	student    -> owner of the record
//	advisor    -> supervisor of the record
//	committee  -> assigned evaluator of the record
//	anything else -> denied
//
// The switch is deliberately exhaustive over models.AllRoles; adding a role
// without a branch here fails the exhaustiveness test in this package.
func CanAccessResource(role models.UserRole, userID string, res Resource) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleStudent:
		return res.OwnerUserID != "" && res.OwnerUserID == userID
	case models.RoleAdvisor:
		return res.OwnerAdvisorID != "" && res.OwnerAdvisorID == userID
	case models.RoleCommittee:
		return userID != "" && slices.Contains(res.AssignedEvaluatorIDs, userID)
	default:
		return false
	}
}
