// Package upload validates and simulates evidence file uploads attached to
// coaching sessions. Nothing is persisted: an accepted upload yields a
// generated file id and URL, a rejected one yields a single error message.
package upload

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/coaching-service/internal/audit"
	"github.com/SAP-F-2025/coaching-service/internal/models"
	"github.com/SAP-F-2025/coaching-service/internal/utils"
)

// MaxFileSize is the upload cap in bytes (10 MiB).
const MaxFileSize = 10 * 1024 * 1024

const maxFileNameLength = 255

// allowedMIMETypes is the closed set of accepted evidence content types.
var allowedMIMETypes = map[string]string{
	"application/pdf": "pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
	"image/png":  "png",
	"image/jpeg": "jpeg",
}

var (
	ErrFileTooLarge    = errors.New("upload: file exceeds the 10 MB limit")
	ErrUnsupportedMIME = errors.New("upload: unsupported file type")
	ErrEmptyFileName   = errors.New("upload: file name is required")
)

// ===== REQUEST / RESPONSE DTOs =====

type UploadRequest struct {
	SessionID   string
	FileName    string
	MIMEType    string
	Size        int64
	UploadedBy  models.User
	Description string
}

type UploadResult struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
	FileType string `json:"file_type"`
}

// ===== SERVICE INTERFACE =====

type Service interface {
	UploadEvidence(ctx context.Context, req UploadRequest) (*UploadResult, error)
}

// ===== SERVICE IMPLEMENTATION =====

type service struct {
	sink   audit.Sink
	logger utils.Logger
	now    func() time.Time
}

func NewService(sink audit.Sink, logger utils.Logger) Service {
	return &service{sink: sink, logger: logger, now: time.Now}
}

func (s *service) UploadEvidence(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if err := validate(req); err != nil {
		s.logger.Warn("evidence upload rejected",
			"session_id", req.SessionID, "file_name", req.FileName, "error", err)
		return nil, err
	}

	fileID := uuid.NewString()
	result := &UploadResult{
		FileID:   fileID,
		FileName: SanitizeFilename(req.FileName),
		FileURL:  fmt.Sprintf("/files/evidence/%s", fileID),
		FileType: allowedMIMETypes[req.MIMEType],
	}

	s.sink.Record(ctx, models.AuditEvent{
		UserID:       req.UploadedBy.ID,
		UserRole:     string(req.UploadedBy.Role),
		Action:       models.AuditFileUpload,
		ResourceType: "evidence",
		ResourceID:   fileID,
		Details: map[string]any{
			"session_id": req.SessionID,
			"file_name":  result.FileName,
			"file_type":  result.FileType,
			"size":       req.Size,
		},
		Timestamp: s.now(),
		Success:   true,
	})
	s.logger.Info("evidence upload accepted", "file_id", fileID, "file_name", result.FileName)
	return result, nil
}

func validate(req UploadRequest) error {
	if strings.TrimSpace(req.FileName) == "" {
		return ErrEmptyFileName
	}
	if _, ok := allowedMIMETypes[req.MIMEType]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedMIME, req.MIMEType)
	}
	if req.Size > MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

var (
	unsafeChars    = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	underscoreRuns = regexp.MustCompile(`_+`)
)

// SanitizeFilename replaces characters outside [a-zA-Z0-9._-] with
// underscores, collapses runs of underscores and caps the length at 255.
func SanitizeFilename(name string) string {
	out := unsafeChars.ReplaceAllString(name, "_")
	out = underscoreRuns.ReplaceAllString(out, "_")
	if len(out) > maxFileNameLength {
		out = out[:maxFileNameLength]
	}
	return out
}
