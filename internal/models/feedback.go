package models

import (
	"time"

	"gorm.io/gorm"
)

// ReportFeedback stores reviewer feedback on generated reports for fine-tuning
// Note: user identifiers are intentionally excluded for privacy
type ReportFeedback struct {
	gorm.Model
	RequestID   string     `gorm:"uniqueIndex;not null" json:"request_id"`
	InterviewID string     `gorm:"index" json:"interview_id"`
	TopicID     string     `gorm:"not null" json:"topic_id"`
	Prompt      string     `gorm:"type:text;not null" json:"prompt"`
	Response    string     `gorm:"type:text;not null" json:"response"`
	IsPositive  bool       `gorm:"not null" json:"is_positive"` // true = thumbs up, false = thumbs down
	ModelName   string     `gorm:"column:model;not null" json:"model"`
	FeedbackAt  time.Time  `gorm:"not null" json:"feedback_at"`
	Exported    bool       `gorm:"not null;default:false;index" json:"exported"`
	ExportedAt  *time.Time `json:"exported_at"`
}

// TrainingDataPoint represents a single training example in JSONL format for Gemini fine-tuning
type TrainingDataPoint struct {
	Contents []TrainingContent `json:"contents"`
}

type TrainingContent struct {
	Role  string         `json:"role"` // "user" or "model"
	Parts []TrainingPart `json:"parts"`
}

type TrainingPart struct {
	Text string `json:"text"`
}

// RequestContext stores the prompt/response pair of a report generation
// temporarily so feedback can be attached later. Held in-memory with TTL,
// never in the database.
type RequestContext struct {
	RequestID   string
	InterviewID string
	TopicID     string
	Prompt      string
	Response    string
	Model       string
	Timestamp   time.Time
}
