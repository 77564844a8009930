package models

import "testing"

func TestCreateInterviewRequestValidate(t *testing.T) {
	req := &CreateInterviewRequest{}
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for missing topic")
	}

	req.TopicID = "event-feedback"
	if err := req.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
}

func TestChatRequestValidate(t *testing.T) {
	req := &ChatRequest{TopicID: "event-feedback"}
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for empty messages")
	}

	req.Messages = TurnList{{Role: RoleAssistant, Content: "Welcome"}}
	err := req.Validate()
	if err == nil {
		t.Fatal("expected error when last turn is not from the user")
	}
	if errResp, ok := err.(*ErrorResponse); !ok || errResp.Code != "invalid_transcript" {
		t.Fatalf("unexpected error: %v", err)
	}

	req.Messages = append(req.Messages, Turn{Role: RoleUser, Content: "Hi"})
	if err := req.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
}

func TestChatRequestValidateMissingTopic(t *testing.T) {
	req := &ChatRequest{Messages: TurnList{{Role: RoleUser, Content: "Hi"}}}
	err := req.Validate()
	if err == nil {
		t.Fatal("expected error for missing topic")
	}
	if errResp, ok := err.(*ErrorResponse); !ok || errResp.Code != "missing_topic" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReportRequestValidateAllowsEmptyMessages(t *testing.T) {
	req := &ReportRequest{TopicID: "user-interview", InterviewID: "abc"}
	if err := req.Validate(); err != nil {
		t.Fatalf("empty messages should pass validation, got: %v", err)
	}

	req.TopicID = " "
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for blank topic")
	}
}

func TestTopicTitle(t *testing.T) {
	if TopicTitle("event-feedback") != "Event Feedback" {
		t.Fatal("known topic not resolved")
	}
	if TopicTitle("unknown-topic") != "unknown-topic" {
		t.Fatal("unknown topic should fall back to the id")
	}
	if len(Topics()) != 3 {
		t.Fatalf("expected 3 catalog entries, got %d", len(Topics()))
	}
}
