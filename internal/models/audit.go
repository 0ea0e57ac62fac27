package models

import "time"

type AuditAction string

const (
	AuditLogin         AuditAction = "login"
	AuditLogout        AuditAction = "logout"
	AuditLoginFailed   AuditAction = "login_failed"
	AuditSessionCreate AuditAction = "coaching_session_create"
	AuditSessionUpdate AuditAction = "coaching_session_update"
	AuditSessionDelete AuditAction = "coaching_session_delete"
	AuditEvalCreate    AuditAction = "evaluation_create"
	AuditEvalUpdate    AuditAction = "evaluation_update"
	AuditFileUpload    AuditAction = "file_upload"
	AuditFileDelete    AuditAction = "file_delete"
	AuditRoleChange    AuditAction = "role_change"
	AuditReportExport  AuditAction = "report_export"
)

// AuditEvent records a significant user action. UserRole is a free string
// rather than UserRole so unauthenticated actors can be recorded as "guest".
type AuditEvent struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	UserRole     string         `json:"user_role"`
	Action       AuditAction    `json:"action"`
	ResourceType string         `json:"resource_type,omitempty"`
	ResourceID   string         `json:"resource_id,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
	Success      bool           `json:"success"`
}
