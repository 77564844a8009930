package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"voxpop/interview/internal/models"
)

func runValidated(t *testing.T, body string) (*httptest.ResponseRecorder, *models.CreateInterviewRequest) {
	t.Helper()
	var captured *models.CreateInterviewRequest
	handler := ValidateRequest[*models.CreateInterviewRequest]()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetValidatedRequest[*models.CreateInterviewRequest](r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, captured
}

func TestValidateRequestPassesValidBody(t *testing.T) {
	rec, captured := runValidated(t, `{"topic_id":"event-feedback"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured == nil || captured.TopicID != "event-feedback" {
		t.Fatalf("validated request not available to handler: %+v", captured)
	}
}

func TestValidateRequestRejectsInvalidJSON(t *testing.T) {
	rec, _ := runValidated(t, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if resp.Code != "invalid_json" {
		t.Fatalf("unexpected error code %q", resp.Code)
	}
}

func TestValidateRequestRejectsFailedValidation(t *testing.T) {
	rec, _ := runValidated(t, `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if resp.Code != "missing_topic" {
		t.Fatalf("unexpected error code %q", resp.Code)
	}
}
