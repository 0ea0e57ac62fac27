package audit

import (
	"context"
	"sync"

	"github.com/SAP-F-2025/coaching-service/internal/models"
)

// MockSink captures recorded events in memory for tests.
type MockSink struct {
	mu     sync.Mutex
	events []models.AuditEvent
}

func NewMockSink() *MockSink {
	return &MockSink{}
}

func (m *MockSink) Record(_ context.Context, event models.AuditEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns a copy of everything recorded so far.
func (m *MockSink) Events() []models.AuditEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.AuditEvent, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MockSink) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
