package session

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"voxpop/interview/internal/models"
	"voxpop/interview/internal/store"
)

// Manager owns the interview session lifecycle. The store handle may be nil
// when persistence is unconfigured; every operation degrades instead of
// failing so a session is always obtainable.
type Manager struct {
	store  store.Store
	logger *zap.Logger
}

func NewManager(s store.Store, logger *zap.Logger) *Manager {
	return &Manager{store: s, logger: logger}
}

// Configured reports whether a durable store is attached.
func (m *Manager) Configured() bool {
	return m.store != nil
}

// Store exposes the underlying store handle (nil when unconfigured).
func (m *Manager) Store() store.Store {
	return m.store
}

// Create starts a new interview session. Exactly one creation call per
// interview instance; the returned id is the routing key for every later
// turn and report operation. Never fails: when the store is unconfigured or
// the insert errors, a mock id is synthesized instead.
func (m *Manager) Create(ctx context.Context, topicID string) (id string, mock bool) {
	if m.store == nil {
		m.logger.Warn("interview store not configured, issuing mock session id",
			zap.String("topic_id", topicID))
		return mockID(), true
	}

	interview, err := m.store.CreateInterview(ctx, topicID)
	if err != nil {
		m.logger.Error("failed to create interview, falling back to mock session id",
			zap.Error(err), zap.String("topic_id", topicID))
		return mockID(), true
	}

	return interview.ID, false
}

// PersistTranscript overwrites the persisted transcript for a real session.
// Best-effort: mock ids and a missing store are skipped silently, store
// failures are logged and never surfaced or retried. The caller's in-memory
// transcript is already authoritative by the time this runs.
func (m *Manager) PersistTranscript(ctx context.Context, id string, turns models.TurnList) {
	if m.store == nil || models.IsMockID(id) {
		return
	}
	if err := m.store.UpdateMessages(ctx, id, turns); err != nil {
		m.logger.Error("failed to persist transcript",
			zap.Error(err), zap.String("interview_id", id), zap.Int("turns", len(turns)))
	}
}

// PersistReport attaches a report to a real session and marks it completed.
// Best-effort like PersistTranscript; regeneration overwrites.
func (m *Manager) PersistReport(ctx context.Context, id string, report *models.Report) {
	if m.store == nil || models.IsMockID(id) {
		return
	}
	if err := m.store.SaveReport(ctx, id, report); err != nil {
		m.logger.Error("failed to persist report",
			zap.Error(err), zap.String("interview_id", id))
	}
}

func mockID() string {
	return models.MockIDPrefix + uuid.NewString()
}
