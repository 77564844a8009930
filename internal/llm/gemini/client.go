package gemini

import (
	"context"
	"time"

	"google.golang.org/genai"

	"voxpop/interview/internal/llm"
	"voxpop/interview/internal/models"
)

// Client represents a Gemini LLM client

type Client struct {
	client *genai.Client
	config *Config
}

func NewClient(config *Config) (*Client, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeAPIKey,
			Message:  "Failed to create Gemini client",
			Err:      err,
		}
	}

	return &Client{
		client: client,
		config: config,
	}, nil
}

func systemInstruction(prompt string) *genai.GenerateContentConfig {
	if prompt == "" {
		return nil
	}
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: prompt}},
		},
	}
}

// contentsFromTurns maps transcript roles onto the Gemini role vocabulary.
func contentsFromTurns(turns models.TurnList) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		role := "user"
		if t.Role == models.RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: t.Content}},
		})
	}
	return contents
}

// GenerateContent performs a single non-streaming completion.
func (c *Client) GenerateContent(ctx context.Context, systemPrompt, userContent string) (*models.GenerationResult, error) {
	startTime := time.Now()
	result, err := c.client.Models.GenerateContent(
		ctx,
		c.config.Model,
		genai.Text(userContent),
		systemInstruction(systemPrompt),
	)
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeServiceDown,
			Message:  "Failed to generate content",
			Err:      err,
		}
	}

	if result == nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "No response generated",
		}
	}

	text, err := result.Text()
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to extract response text",
			Err:      err,
		}
	}
	if text == "" {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Empty response generated",
		}
	}

	return &models.GenerationResult{
		Content:        text,
		Model:          c.config.Model,
		ProcessingTime: int(time.Since(startTime).Milliseconds()),
	}, nil
}

// StreamContent drives one streaming completion over the transcript, calling
// onChunk as text fragments arrive and returning the accumulated text.
func (c *Client) StreamContent(ctx context.Context, systemPrompt string, turns models.TurnList, onChunk func(string) error) (string, error) {
	var full string

	for chunk, err := range c.client.Models.GenerateContentStream(
		ctx,
		c.config.Model,
		contentsFromTurns(turns),
		systemInstruction(systemPrompt),
	) {
		if err != nil {
			return "", &llm.ProviderError{
				Provider: "gemini",
				Code:     llm.ErrCodeServiceDown,
				Message:  "Stream failed",
				Err:      err,
			}
		}
		if chunk == nil {
			continue
		}

		text, err := chunk.Text()
		if err != nil || text == "" {
			continue
		}

		full += text
		if err := onChunk(text); err != nil {
			// Consumer stopped (disconnect or cancellation); nothing more
			// to deliver.
			return "", err
		}
	}

	if full == "" {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Empty response generated",
		}
	}

	return full, nil
}

func (c *Client) GetProviderName() string {
	return "gemini"
}
