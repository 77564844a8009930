package feedback

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"voxpop/interview/internal/models"
)

// FeedbackManager handles reviewer feedback on generated reports and its
// export for fine-tuning
type FeedbackManager struct {
	db           *gorm.DB
	contextCache *ContextCache
}

// NewFeedbackManager creates a new feedback manager
func NewFeedbackManager(db *gorm.DB, cacheTTL time.Duration) *FeedbackManager {
	return &FeedbackManager{
		db:           db,
		contextCache: NewContextCache(cacheTTL),
	}
}

// StoreRequestContext caches a report generation context for later feedback
func (fm *FeedbackManager) StoreRequestContext(ctx *models.RequestContext) {
	fm.contextCache.Set(ctx.RequestID, ctx)
}

// SubmitFeedback stores reviewer feedback for a report generation
func (fm *FeedbackManager) SubmitFeedback(requestID string, isPositive bool) error {
	ctx, exists := fm.contextCache.Get(requestID)
	if !exists {
		return fmt.Errorf("request context not found or expired: %s", requestID)
	}

	feedback := &models.ReportFeedback{
		RequestID:   requestID,
		InterviewID: ctx.InterviewID,
		TopicID:     ctx.TopicID,
		Prompt:      ctx.Prompt,
		Response:    ctx.Response,
		IsPositive:  isPositive,
		ModelName:   ctx.Model,
		FeedbackAt:  time.Now(),
		Exported:    false,
	}

	if err := fm.db.Create(feedback).Error; err != nil {
		return fmt.Errorf("failed to store feedback: %w", err)
	}

	// Remove from cache after successful storage
	fm.contextCache.Delete(requestID)

	return nil
}

// GetUnexportedFeedback retrieves feedback that hasn't been exported yet
func (fm *FeedbackManager) GetUnexportedFeedback(limit int) ([]models.ReportFeedback, error) {
	var feedback []models.ReportFeedback

	query := fm.db.Where("exported = ?", false).Order("feedback_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to get unexported feedback: %w", err)
	}

	return feedback, nil
}

// MarkAsExported marks feedback records as exported
func (fm *FeedbackManager) MarkAsExported(feedbackIDs []uint) error {
	now := time.Now()
	result := fm.db.Model(&models.ReportFeedback{}).
		Where("id IN ?", feedbackIDs).
		Updates(map[string]interface{}{
			"exported":    true,
			"exported_at": now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark feedback as exported: %w", result.Error)
	}

	log.Printf("Marked %d feedback records as exported", result.RowsAffected)
	return nil
}

// ExportToJSONL exports feedback to JSONL format for Gemini fine-tuning
// Only positive feedback (thumbs up) becomes training examples
func (fm *FeedbackManager) ExportToJSONL(feedback []models.ReportFeedback) ([]byte, error) {
	var jsonlLines []string

	for _, fb := range feedback {
		if !fb.IsPositive {
			continue
		}

		dataPoint := models.TrainingDataPoint{
			Contents: []models.TrainingContent{
				{
					Role:  "user",
					Parts: []models.TrainingPart{{Text: fb.Prompt}},
				},
				{
					Role:  "model",
					Parts: []models.TrainingPart{{Text: fb.Response}},
				},
			},
		}

		jsonBytes, err := json.Marshal(dataPoint)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal training data: %w", err)
		}

		jsonlLines = append(jsonlLines, string(jsonBytes))
	}

	jsonlData := []byte{}
	for i, line := range jsonlLines {
		jsonlData = append(jsonlData, []byte(line)...)
		if i < len(jsonlLines)-1 {
			jsonlData = append(jsonlData, '\n')
		}
	}

	log.Printf("Exported %d positive feedback examples to JSONL (%d total feedback records)", len(jsonlLines), len(feedback))

	return jsonlData, nil
}

// GetFeedbackStats returns statistics about stored feedback
func (fm *FeedbackManager) GetFeedbackStats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var totalCount int64
	if err := fm.db.Model(&models.ReportFeedback{}).Count(&totalCount).Error; err != nil {
		return nil, err
	}
	stats["total_count"] = totalCount

	var positiveCount int64
	if err := fm.db.Model(&models.ReportFeedback{}).Where("is_positive = ?", true).Count(&positiveCount).Error; err != nil {
		return nil, err
	}
	stats["positive_count"] = positiveCount
	stats["negative_count"] = totalCount - positiveCount

	var unexportedCount int64
	if err := fm.db.Model(&models.ReportFeedback{}).Where("exported = ?", false).Count(&unexportedCount).Error; err != nil {
		return nil, err
	}
	stats["unexported_count"] = unexportedCount

	stats["cached_contexts"] = fm.contextCache.Size()

	return stats, nil
}
