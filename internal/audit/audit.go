// Package audit records significant user actions. Recording is
// fire-and-forget: a sink never blocks its caller and never surfaces a
// failure to the triggering action.
package audit

import (
	"context"

	"github.com/SAP-F-2025/coaching-service/internal/models"
)

// Source identifies this service in the event envelope.
const Source = "coaching-service"

const envelopeVersion = "1.0"

// GuestRole is recorded as the actor role for unauthenticated actions such
// as failed logins.
const GuestRole = "guest"

type Sink interface {
	Record(ctx context.Context, event models.AuditEvent)
}

// Envelope is the wire form published to the audit topic.
type Envelope struct {
	ID        string            `json:"id"`
	Source    string            `json:"source"`
	Version   string            `json:"version"`
	Timestamp int64             `json:"timestamp"` // epoch millis
	Event     models.AuditEvent `json:"event"`
}
