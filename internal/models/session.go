package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Interview statuses persisted by the store. The interview is implicitly
// in progress between the two; only these two values are written.
const (
	StatusStarted   = "started"
	StatusCompleted = "completed"
)

// MockIDPrefix marks interview ids that are not backed by durable storage.
// Every store call must test for it before touching the database.
const MockIDPrefix = "mock-"

// Turn is one message in an interview transcript. Array order is the
// conversational order; CreatedAt is informational only.
type Turn struct {
	ID        string    `json:"id,omitempty"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// turnWire accepts both transcript shapes seen on the wire: a flat content
// string, or a structured parts list from newer chat clients. Parts are
// flattened to plain text here so only one shape flows through the service.
type turnWire struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Parts     []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"parts"`
}

func (t *Turn) UnmarshalJSON(data []byte) error {
	var w turnWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	content := w.Content
	if content == "" && len(w.Parts) > 0 {
		var b strings.Builder
		for _, p := range w.Parts {
			if p.Type == "" || p.Type == "text" {
				b.WriteString(p.Text)
			}
		}
		content = b.String()
	}

	t.ID = w.ID
	t.Role = w.Role
	t.Content = content
	t.CreatedAt = w.CreatedAt
	return nil
}

// TurnList is the ordered transcript of an interview, stored as a single
// JSON column on the interview row (append-only while the session is active).
type TurnList []Turn

func (tl TurnList) Value() (driver.Value, error) {
	if tl == nil {
		tl = TurnList{}
	}
	return json.Marshal(tl)
}

func (tl *TurnList) Scan(value interface{}) error {
	if value == nil {
		*tl = TurnList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, tl)
	case string:
		return json.Unmarshal([]byte(v), tl)
	default:
		return fmt.Errorf("unsupported type for TurnList: %T", value)
	}
}

// Report sentiment values the extraction prompt asks for. Soft contract:
// other values are displayed as-is, never rejected.
const (
	SentimentPositive     = "Positive"
	SentimentNeutral      = "Neutral"
	SentimentNegative     = "Negative"
	SentimentConstructive = "Constructive"

	// FallbackSentiment tags reports synthesized when the model output
	// could not be parsed.
	FallbackSentiment = "Constructive (Mock)"
)

// Report is the structured analysis derived from a completed transcript.
type Report struct {
	Summary     string   `json:"summary"`
	Sentiment   string   `json:"sentiment"`
	KeyInsights []string `json:"key_insights"`
	FocusArea   string   `json:"focus_area"`
}

func (r Report) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *Report) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("unsupported type for Report: %T", value)
	}
}

// IsFallback reports whether this report was synthesized locally instead of
// parsed from model output.
func (r *Report) IsFallback() bool {
	return strings.Contains(r.Sentiment, "Mock")
}

// Interview is one interview session record.
type Interview struct {
	ID         string     `gorm:"type:uuid;primaryKey" json:"id"`
	TopicID    string     `gorm:"not null;index" json:"topic_id"`
	Status     string     `gorm:"not null;default:started" json:"status"`
	Messages   TurnList   `gorm:"type:jsonb" json:"messages"`
	Report     *Report    `gorm:"type:jsonb" json:"report,omitempty"`
	Exported   bool       `gorm:"not null;default:false;index" json:"exported"`
	ExportedAt *time.Time `json:"exported_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IsMockID reports whether an interview id is a locally synthesized one
// (or absent entirely) and therefore must never reach the store.
func IsMockID(id string) bool {
	return id == "" || strings.HasPrefix(id, MockIDPrefix)
}

// ValidateTranscript checks the minimal transcript shape shared by the chat
// and report paths.
func ValidateTranscript(turns TurnList) error {
	if len(turns) == 0 {
		return errors.New("transcript is empty")
	}
	for i, t := range turns {
		if t.Role != RoleUser && t.Role != RoleAssistant {
			return fmt.Errorf("turn %d has invalid role %q", i, t.Role)
		}
	}
	return nil
}
