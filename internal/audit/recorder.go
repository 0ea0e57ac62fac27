package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/SAP-F-2025/coaching-service/internal/models"
	"github.com/SAP-F-2025/coaching-service/internal/storage"
)

const logsKey = "audit_logs"

// MaxRetained is the number of audit entries kept in durable storage. The
// log is append-only but bounded; older entries are dropped.
const MaxRetained = 100

// Recorder consumes published audit events and maintains the bounded log in
// durable storage. It is the only writer of the audit_logs document.
type Recorder struct {
	storage storage.Store
	logger  *slog.Logger
}

func NewRecorder(st storage.Store, logger *slog.Logger) *Recorder {
	return &Recorder{storage: st, logger: logger}
}

// Run subscribes to the topic and appends events until ctx is cancelled or
// the subscriber closes its channel.
func (r *Recorder) Run(ctx context.Context, subscriber message.Subscriber, topic string) error {
	messages, err := subscriber.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", topic, err)
	}

	for msg := range messages {
		var env Envelope
		if err := json.Unmarshal(msg.Payload, &env); err != nil {
			r.logger.Warn("dropping unparsable audit message", "message_id", msg.UUID, "error", err)
			msg.Ack()
			continue
		}

		if err := r.Append(ctx, env.Event); err != nil {
			r.logger.Warn("failed to append audit event", "action", env.Event.Action, "error", err)
		}
		msg.Ack()
	}
	return nil
}

// Append adds one event to the stored log, trimming to the retention bound.
func (r *Recorder) Append(ctx context.Context, event models.AuditEvent) error {
	logs, err := r.load(ctx)
	if err != nil {
		// A corrupt log is discarded and restarted rather than blocking
		// all future auditing
		r.logger.Warn("audit log unreadable, starting fresh", "error", err)
		logs = nil
	}

	logs = append(logs, event)
	if len(logs) > MaxRetained {
		logs = logs[len(logs)-MaxRetained:]
	}

	data, err := json.Marshal(logs)
	if err != nil {
		return fmt.Errorf("marshal audit log: %w", err)
	}
	if err := r.storage.Set(ctx, logsKey, data); err != nil {
		return fmt.Errorf("persist audit log: %w", err)
	}
	return nil
}

// Recent returns up to limit stored events, newest first.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]models.AuditEvent, error) {
	logs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return lastReversed(logs, limit), nil
}

// ByUser returns up to limit events recorded for the user, newest first.
func (r *Recorder) ByUser(ctx context.Context, userID string, limit int) ([]models.AuditEvent, error) {
	logs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	var matched []models.AuditEvent
	for _, ev := range logs {
		if ev.UserID == userID {
			matched = append(matched, ev)
		}
	}
	return lastReversed(matched, limit), nil
}

// ByAction returns up to limit events with the given action, newest first.
func (r *Recorder) ByAction(ctx context.Context, action models.AuditAction, limit int) ([]models.AuditEvent, error) {
	logs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	var matched []models.AuditEvent
	for _, ev := range logs {
		if ev.Action == action {
			matched = append(matched, ev)
		}
	}
	return lastReversed(matched, limit), nil
}

func (r *Recorder) load(ctx context.Context) ([]models.AuditEvent, error) {
	data, err := r.storage.Get(ctx, logsKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read audit log: %w", err)
	}

	var logs []models.AuditEvent
	if err := json.Unmarshal(data, &logs); err != nil {
		return nil, fmt.Errorf("decode audit log: %w", err)
	}
	return logs, nil
}

func lastReversed(logs []models.AuditEvent, limit int) []models.AuditEvent {
	if limit <= 0 || limit > len(logs) {
		limit = len(logs)
	}
	out := make([]models.AuditEvent, 0, limit)
	for i := len(logs) - 1; i >= len(logs)-limit; i-- {
		out = append(out, logs[i])
	}
	return out
}
