package llm

import (
	"context"

	"voxpop/interview/internal/models"
)

// defines the interface for LLM providers
type Provider interface {
	// GenerateContent performs one non-streaming completion with a system
	// instruction and a single user message.
	GenerateContent(ctx context.Context, systemPrompt, userContent string) (*models.GenerationResult, error)

	// StreamContent drives one streaming completion over an ordered
	// transcript. onChunk is called for each text fragment as it arrives;
	// returning an error from onChunk stops consumption. The accumulated
	// final text is returned on success.
	StreamContent(ctx context.Context, systemPrompt string, turns models.TurnList, onChunk func(text string) error) (string, error)

	GetProviderName() string
}

// represents an error from an LLM provider
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Common error codes
// For current and future use across different providers
const (
	ErrCodeAPIKey       = "invalid_api_key"
	ErrCodeRateLimit    = "rate_limit_exceeded"
	ErrCodeServiceDown  = "service_unavailable"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeTimeout      = "timeout"
)
