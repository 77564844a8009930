package models

import (
	"encoding/json"
	"testing"
)

func TestTurnUnmarshalFlatContent(t *testing.T) {
	var turn Turn
	if err := json.Unmarshal([]byte(`{"role":"user","content":"hello"}`), &turn); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if turn.Role != RoleUser || turn.Content != "hello" {
		t.Fatalf("unexpected turn: %+v", turn)
	}
}

func TestTurnUnmarshalPartsNormalized(t *testing.T) {
	payload := `{"id":"m1","role":"assistant","parts":[{"type":"text","text":"Shall we "},{"type":"text","text":"begin?"},{"type":"step-start"}]}`
	var turn Turn
	if err := json.Unmarshal([]byte(payload), &turn); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if turn.Content != "Shall we begin?" {
		t.Fatalf("expected parts to flatten to content, got %q", turn.Content)
	}
}

func TestTurnUnmarshalContentWinsOverParts(t *testing.T) {
	payload := `{"role":"user","content":"flat","parts":[{"type":"text","text":"structured"}]}`
	var turn Turn
	if err := json.Unmarshal([]byte(payload), &turn); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if turn.Content != "flat" {
		t.Fatalf("expected flat content to win, got %q", turn.Content)
	}
}

func TestTurnListRoundTrip(t *testing.T) {
	in := TurnList{
		{Role: RoleAssistant, Content: "Welcome"},
		{Role: RoleUser, Content: "Hi"},
	}
	value, err := in.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var out TurnList
	if err := out.Scan(value); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(out) != 2 || out[0].Content != "Welcome" || out[1].Role != RoleUser {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestTurnListScanNil(t *testing.T) {
	var out TurnList
	if err := out.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty list, got %+v", out)
	}
}

func TestIsMockID(t *testing.T) {
	cases := []struct {
		id   string
		mock bool
	}{
		{"", true},
		{"mock-123", true},
		{"mock-", true},
		{"0b7e5a9e-7f2e-4a63-9f2e-8a1b2c3d4e5f", false},
	}
	for _, c := range cases {
		if got := IsMockID(c.id); got != c.mock {
			t.Errorf("IsMockID(%q) = %v, want %v", c.id, got, c.mock)
		}
	}
}

func TestReportIsFallback(t *testing.T) {
	r := Report{Sentiment: FallbackSentiment}
	if !r.IsFallback() {
		t.Fatal("expected fallback sentiment to be detected")
	}
	r.Sentiment = SentimentPositive
	if r.IsFallback() {
		t.Fatal("regular sentiment flagged as fallback")
	}
}

func TestValidateTranscript(t *testing.T) {
	if err := ValidateTranscript(nil); err == nil {
		t.Fatal("expected error for empty transcript")
	}
	if err := ValidateTranscript(TurnList{{Role: "system", Content: "x"}}); err == nil {
		t.Fatal("expected error for invalid role")
	}
	if err := ValidateTranscript(TurnList{{Role: RoleAssistant, Content: "x"}}); err != nil {
		t.Fatalf("valid transcript rejected: %v", err)
	}
}
