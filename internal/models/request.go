package models

import (
	"strings"
)

type CreateInterviewRequest struct {
	TopicID string `json:"topic_id"`
}

// implements the Validator interface
func (r *CreateInterviewRequest) Validate() error {
	if strings.TrimSpace(r.TopicID) == "" {
		return &ErrorResponse{
			Code:    "missing_topic",
			Message: "topic_id field is required",
		}
	}
	return nil
}

// ChatRequest carries the transcript-so-far (including the newest user turn)
// for one streaming exchange with the interviewer.
type ChatRequest struct {
	Messages    TurnList `json:"messages"`
	TopicID     string   `json:"topic_id"`
	InterviewID string   `json:"interview_id"`
}

func (r *ChatRequest) Validate() error {
	if strings.TrimSpace(r.TopicID) == "" {
		return &ErrorResponse{Code: "missing_topic", Message: "topic_id field is required"}
	}
	if err := ValidateTranscript(r.Messages); err != nil {
		return &ErrorResponse{Code: "invalid_transcript", Message: err.Error()}
	}
	// The client always appends the new user turn before sending.
	if last := r.Messages[len(r.Messages)-1]; last.Role != RoleUser {
		return &ErrorResponse{Code: "invalid_transcript", Message: "last turn must be from the user"}
	}
	return nil
}

// ReportRequest asks for a report over a transcript. Messages are optional:
// when absent, the transcript is fetched from the store for real interview ids.
type ReportRequest struct {
	Messages    TurnList `json:"messages"`
	TopicID     string   `json:"topic_id"`
	InterviewID string   `json:"interview_id"`
}

func (r *ReportRequest) Validate() error {
	if strings.TrimSpace(r.TopicID) == "" {
		return &ErrorResponse{Code: "missing_topic", Message: "topic_id field is required"}
	}
	// An empty messages field is not a validation error here: the resolver
	// may still find a persisted transcript for a real interview id.
	return nil
}
