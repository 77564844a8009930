package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"voxpop/interview/internal/middleware"
	"voxpop/interview/internal/models"
)

func createWrapped(h *InterviewHandler) http.Handler {
	return middleware.ValidateRequest[*models.CreateInterviewRequest]()(http.HandlerFunc(h.CreateHandler))
}

func TestCreateHandlerWithStore(t *testing.T) {
	s := newSQLiteStore(t)
	h := NewInterviewHandler(newTestManager(t, s), zap.NewNop())

	rec := performRequest(createWrapped(h), http.MethodPost, "/api/v1/interviews", `{"topic_id":"event-feedback"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp models.CreateInterviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.ID == "" {
		t.Fatal("expected a non-empty id")
	}
	if resp.Mock {
		t.Fatal("expected a real session with a configured store")
	}

	persisted, err := s.GetInterview(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if persisted.Status != models.StatusStarted {
		t.Fatalf("unexpected status %q", persisted.Status)
	}
}

func TestCreateHandlerWithoutStoreReturnsMock(t *testing.T) {
	h := NewInterviewHandler(newTestManager(t, nil), zap.NewNop())

	rec := performRequest(createWrapped(h), http.MethodPost, "/api/v1/interviews", `{"topic_id":"event-feedback"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("session creation must always succeed, got %d", rec.Code)
	}

	var resp models.CreateInterviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if !resp.Mock {
		t.Fatal("expected a mock session")
	}
	if !strings.HasPrefix(resp.ID, models.MockIDPrefix) {
		t.Fatalf("mock id missing prefix: %q", resp.ID)
	}
}

func TestCreateHandlerRejectsMissingTopic(t *testing.T) {
	h := NewInterviewHandler(newTestManager(t, nil), zap.NewNop())

	rec := performRequest(createWrapped(h), http.MethodPost, "/api/v1/interviews", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListHandler(t *testing.T) {
	s := newSQLiteStore(t)
	if _, err := s.CreateInterview(context.Background(), "event-feedback"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	h := NewInterviewHandler(newTestManager(t, s), zap.NewNop())

	rec := performRequest(http.HandlerFunc(h.ListHandler), http.MethodGet, "/api/v1/interviews", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestListHandlerWithoutStore(t *testing.T) {
	h := NewInterviewHandler(newTestManager(t, nil), zap.NewNop())

	rec := performRequest(http.HandlerFunc(h.ListHandler), http.MethodGet, "/api/v1/interviews", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func getWithParam(h http.HandlerFunc, id string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Get("/api/v1/interviews/{id}", h)
	return performRequest(router, http.MethodGet, "/api/v1/interviews/"+id, "")
}

func TestGetHandlerMockIDShortCircuits(t *testing.T) {
	// A nil store would panic if the handler tried to touch it; the mock
	// prefix check must come first.
	h := NewInterviewHandler(newTestManager(t, nil), zap.NewNop())

	rec := getWithParam(h.GetHandler, "mock-abc")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.Code != "mock_session" {
		t.Fatalf("unexpected code %q", resp.Code)
	}
}

func TestGetHandlerFetchesInterview(t *testing.T) {
	s := newSQLiteStore(t)
	created, err := s.CreateInterview(context.Background(), "user-interview")
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	h := NewInterviewHandler(newTestManager(t, s), zap.NewNop())

	rec := getWithParam(h.GetHandler, created.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var interview models.Interview
	if err := json.Unmarshal(rec.Body.Bytes(), &interview); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if interview.ID != created.ID {
		t.Fatalf("unexpected interview: %+v", interview)
	}
}

func TestGetHandlerUnknownID(t *testing.T) {
	s := newSQLiteStore(t)
	h := NewInterviewHandler(newTestManager(t, s), zap.NewNop())

	rec := getWithParam(h.GetHandler, "1b671a64-40d5-491e-99b0-da01ff1f3341")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTopicsHandler(t *testing.T) {
	h := NewInterviewHandler(newTestManager(t, nil), zap.NewNop())

	rec := performRequest(http.HandlerFunc(h.TopicsHandler), http.MethodGet, "/api/v1/interviews/topics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var topics []models.InterviewTopic
	if err := json.Unmarshal(rec.Body.Bytes(), &topics); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(topics) != 3 {
		t.Fatalf("expected 3 topics, got %d", len(topics))
	}
}
