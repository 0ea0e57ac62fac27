package models

type UserRole string

const (
	RoleStudent   UserRole = "student"
	RoleAdvisor   UserRole = "advisor"
	RoleAdmin     UserRole = "admin"
	RoleCommittee UserRole = "committee"
)

// AllRoles lists every member of the closed role set. Policy and routing
// code is tested against this slice so a new role cannot slip through
// unhandled.
var AllRoles = []UserRole{RoleStudent, RoleAdvisor, RoleAdmin, RoleCommittee}

func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleAdvisor, RoleAdmin, RoleCommittee:
		return true
	}
	return false
}

type User struct {
	ID        string   `json:"id"`
	FullName  string   `json:"full_name"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
	AvatarURL *string  `json:"avatar_url,omitempty"`
}
