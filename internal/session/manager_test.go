package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"voxpop/interview/internal/models"
)

// mockStore records calls so tests can assert the short-circuit behavior.
type mockStore struct {
	createFn  func(ctx context.Context, topicID string) (*models.Interview, error)
	getFn     func(ctx context.Context, id string) (*models.Interview, error)
	updateFn  func(ctx context.Context, id string, messages models.TurnList) error
	reportFn  func(ctx context.Context, id string, report *models.Report) error
	gets      int
	updates   int
	reports   int
	creations int
}

func (m *mockStore) CreateInterview(ctx context.Context, topicID string) (*models.Interview, error) {
	m.creations++
	if m.createFn != nil {
		return m.createFn(ctx, topicID)
	}
	return &models.Interview{ID: "real-id", TopicID: topicID, Status: models.StatusStarted}, nil
}

func (m *mockStore) GetInterview(ctx context.Context, id string) (*models.Interview, error) {
	m.gets++
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStore) ListInterviews(ctx context.Context) ([]models.Interview, error) {
	return nil, nil
}

func (m *mockStore) UpdateMessages(ctx context.Context, id string, messages models.TurnList) error {
	m.updates++
	if m.updateFn != nil {
		return m.updateFn(ctx, id, messages)
	}
	return nil
}

func (m *mockStore) SaveReport(ctx context.Context, id string, report *models.Report) error {
	m.reports++
	if m.reportFn != nil {
		return m.reportFn(ctx, id, report)
	}
	return nil
}

func (m *mockStore) UnexportedCompleted(ctx context.Context, limit int) ([]models.Interview, error) {
	return nil, nil
}

func (m *mockStore) MarkExported(ctx context.Context, ids []string) error {
	return nil
}

func TestCreateWithStore(t *testing.T) {
	ms := &mockStore{}
	mgr := NewManager(ms, zap.NewNop())

	id, mock := mgr.Create(context.Background(), "event-feedback")
	if mock {
		t.Fatal("expected a real session")
	}
	if id != "real-id" {
		t.Fatalf("unexpected id %q", id)
	}
	if ms.creations != 1 {
		t.Fatalf("expected 1 store creation, got %d", ms.creations)
	}
}

func TestCreateWithoutStoreIssuesMockID(t *testing.T) {
	mgr := NewManager(nil, zap.NewNop())

	id, mock := mgr.Create(context.Background(), "event-feedback")
	if !mock {
		t.Fatal("expected a mock session")
	}
	if !strings.HasPrefix(id, models.MockIDPrefix) {
		t.Fatalf("mock id missing prefix: %q", id)
	}
	if !models.IsMockID(id) {
		t.Fatal("mock id not recognized by IsMockID")
	}
}

func TestCreateInsertFailureFallsBackToMockID(t *testing.T) {
	ms := &mockStore{
		createFn: func(ctx context.Context, topicID string) (*models.Interview, error) {
			return nil, errors.New("connection refused")
		},
	}
	mgr := NewManager(ms, zap.NewNop())

	// Session creation must never raise to the caller.
	id, mock := mgr.Create(context.Background(), "policy-hearing")
	if !mock {
		t.Fatal("expected mock fallback on insert failure")
	}
	if id == "" {
		t.Fatal("expected a non-empty id")
	}
}

func TestPersistTranscriptSkipsMockIDs(t *testing.T) {
	ms := &mockStore{}
	mgr := NewManager(ms, zap.NewNop())
	turns := models.TurnList{{Role: models.RoleUser, Content: "hi"}}

	mgr.PersistTranscript(context.Background(), "mock-abc", turns)
	mgr.PersistTranscript(context.Background(), "", turns)
	if ms.updates != 0 {
		t.Fatalf("mock ids must not reach the store, got %d updates", ms.updates)
	}

	mgr.PersistTranscript(context.Background(), "real-id", turns)
	if ms.updates != 1 {
		t.Fatalf("expected 1 update for real id, got %d", ms.updates)
	}
}

func TestPersistTranscriptSwallowsStoreErrors(t *testing.T) {
	ms := &mockStore{
		updateFn: func(ctx context.Context, id string, messages models.TurnList) error {
			return errors.New("write failed")
		},
	}
	mgr := NewManager(ms, zap.NewNop())

	// Must not panic or propagate; durability is best-effort.
	mgr.PersistTranscript(context.Background(), "real-id", models.TurnList{{Role: models.RoleUser, Content: "hi"}})
}

func TestPersistReportSkipsMockIDs(t *testing.T) {
	ms := &mockStore{}
	mgr := NewManager(ms, zap.NewNop())

	mgr.PersistReport(context.Background(), "mock-xyz", &models.Report{Summary: "s"})
	if ms.reports != 0 {
		t.Fatalf("mock ids must not reach the store, got %d report writes", ms.reports)
	}

	mgr.PersistReport(context.Background(), "real-id", &models.Report{Summary: "s"})
	if ms.reports != 1 {
		t.Fatalf("expected 1 report write, got %d", ms.reports)
	}
}
