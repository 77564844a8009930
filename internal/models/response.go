package models

// CreateInterviewResponse is the session creation result. Mock is set when the
// id is not backed by durable storage.
type CreateInterviewResponse struct {
	ID   string `json:"id"`
	Mock bool   `json:"mock,omitempty"`
}

// ReportResponse wraps a generated report with request bookkeeping.
type ReportResponse struct {
	Report    Report         `json:"report"`
	RequestID string         `json:"request_id"`
	Metadata  ReportMetadata `json:"metadata"`
}

// additional information about a generation
type ReportMetadata struct {
	ProcessingTime int    `json:"processing_time_ms"`
	Provider       string `json:"provider"`
	Model          string `json:"model,omitempty"`
	Fallback       bool   `json:"fallback"`
}

// GenerationResult is the raw outcome of one non-streaming provider call.
type GenerationResult struct {
	Content        string
	Model          string
	ProcessingTime int
}

// uniform error responses
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Code + ": " + e.Message
}

// Resp is the generic ok/info envelope used by feedback and admin endpoints.
type Resp struct {
	OK   bool        `json:"ok"`
	Info interface{} `json:"info,omitempty"`
}
