package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"voxpop/interview/internal/models"
	"voxpop/interview/internal/session"
	"voxpop/interview/internal/store"
)

// mockProvider implements llm.Provider for handler tests.
type mockProvider struct {
	generateFn func(ctx context.Context, systemPrompt, userContent string) (*models.GenerationResult, error)
	streamFn   func(ctx context.Context, systemPrompt string, turns models.TurnList, onChunk func(string) error) (string, error)
}

func (m *mockProvider) GenerateContent(ctx context.Context, systemPrompt, userContent string) (*models.GenerationResult, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, systemPrompt, userContent)
	}
	return &models.GenerationResult{Content: "{}", Model: "test-model"}, nil
}

func (m *mockProvider) StreamContent(ctx context.Context, systemPrompt string, turns models.TurnList, onChunk func(string) error) (string, error) {
	if m.streamFn != nil {
		return m.streamFn(ctx, systemPrompt, turns, onChunk)
	}
	for _, chunk := range []string{"Hello ", "there"} {
		if err := onChunk(chunk); err != nil {
			return "", err
		}
	}
	return "Hello there", nil
}

func (m *mockProvider) GetProviderName() string { return "mock" }

// mockPromptManager implements prompts.PromptProvider.
type mockPromptManager struct {
	buildPromptFn func(mode, variant string, data map[string]string) (string, error)
}

func (m *mockPromptManager) BuildPrompt(mode, variant string, data map[string]string) (string, error) {
	if m.buildPromptFn != nil {
		return m.buildPromptFn(mode, variant, data)
	}
	return "system prompt for " + data["Topic"], nil
}

func (m *mockPromptManager) GetTemplates() []string {
	return []string{"interviewer", "report"}
}

func newSQLiteStore(t *testing.T) store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return store.New(db)
}

func newTestManager(t *testing.T, s store.Store) *session.Manager {
	t.Helper()
	return session.NewManager(s, zap.NewNop())
}

func performRequest(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
