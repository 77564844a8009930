package report

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"voxpop/interview/internal/llm"
	"voxpop/interview/internal/models"
	"voxpop/interview/internal/prompts"
	"voxpop/interview/internal/utils"
)

// ErrEmptyTranscript guards the generator precondition; callers resolve the
// transcript first, so hitting this means a caller bug.
var ErrEmptyTranscript = errors.New("cannot generate a report from an empty transcript")

// Result is the outcome of one report generation. Fallback results are
// synthesized locally when the collaborator fails or emits something the
// parser cannot read; they are still renderable reports, never errors.
type Result struct {
	Report         models.Report
	Prompt         string
	Raw            string
	Model          string
	ProcessingTime int
	Fallback       bool
}

type Generator struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	logger   *zap.Logger
}

func NewGenerator(provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *Generator {
	return &Generator{
		provider: provider,
		prompts:  promptManager,
		logger:   logger,
	}
}

// Generate runs one non-streaming extraction over the transcript. The only
// error it returns is ErrEmptyTranscript; every other failure degrades to a
// clearly labeled fallback report.
func (g *Generator) Generate(ctx context.Context, topicID string, turns models.TurnList) (*Result, error) {
	if len(turns) == 0 {
		return nil, ErrEmptyTranscript
	}

	start := time.Now()

	systemPrompt, err := g.prompts.BuildPrompt("report", "default", map[string]string{
		"Topic": models.TopicTitle(topicID),
	})
	if err != nil {
		g.logger.Error("failed to build report prompt", zap.Error(err), zap.String("topic_id", topicID))
		return g.fallback(topicID, "", "", start), nil
	}

	conversation := FlattenTranscript(turns)

	generated, err := g.provider.GenerateContent(ctx, systemPrompt, conversation)
	if err != nil {
		g.logger.Error("report generation failed, serving fallback report",
			zap.Error(err), zap.String("topic_id", topicID))
		return g.fallback(topicID, systemPrompt, "", start), nil
	}

	parsed, err := ParseReport(generated.Content)
	if err != nil {
		g.logger.Warn("malformed report output, serving fallback report",
			zap.Error(err), zap.String("topic_id", topicID))
		return g.fallback(topicID, systemPrompt, generated.Content, start), nil
	}

	return &Result{
		Report:         *parsed,
		Prompt:         systemPrompt,
		Raw:            generated.Content,
		Model:          generated.Model,
		ProcessingTime: int(time.Since(start).Milliseconds()),
	}, nil
}

// FlattenTranscript renders the ordered transcript as "<role>: <content>"
// lines, the shape the extraction prompt expects.
func FlattenTranscript(turns models.TurnList) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, t.Role+": "+t.Content)
	}
	return strings.Join(lines, "\n")
}

// ParseReport parses model output into a Report. Code-fence markers are
// stripped first even though the prompt forbids them.
func ParseReport(raw string) (*models.Report, error) {
	cleaned := utils.StripFences(raw)

	var report models.Report
	if err := json.Unmarshal([]byte(cleaned), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (g *Generator) fallback(topicID, prompt, raw string, start time.Time) *Result {
	topic := models.TopicTitle(topicID)
	return &Result{
		Report: models.Report{
			Summary:   "We could not generate an automatic summary for this interview about " + topic + ". The transcript has been kept so the report can be regenerated later.",
			Sentiment: models.FallbackSentiment,
			KeyInsights: []string{
				"Report generation fell back to a placeholder",
				"The conversation transcript itself is unaffected",
				"Regenerating the report may succeed on a later attempt",
			},
			FocusArea: topic,
		},
		Prompt:         prompt,
		Raw:            raw,
		ProcessingTime: int(time.Since(start).Milliseconds()),
		Fallback:       true,
	}
}
