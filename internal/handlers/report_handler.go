package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"voxpop/interview/internal/feedback"
	"voxpop/interview/internal/middleware"
	"voxpop/interview/internal/models"
	"voxpop/interview/internal/report"
	"voxpop/interview/internal/session"
	"voxpop/interview/internal/utils"
)

type ReportHandler struct {
	generator       *report.Generator
	manager         *session.Manager
	feedbackManager *feedback.FeedbackManager
	provider        string
	logger          *zap.Logger
}

func NewReportHandler(generator *report.Generator, manager *session.Manager, providerName string, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		generator: generator,
		manager:   manager,
		provider:  providerName,
		logger:    logger,
	}
}

// SetFeedbackManager enables feedback collection on generated reports.
func (h *ReportHandler) SetFeedbackManager(fm *feedback.FeedbackManager) {
	h.feedbackManager = fm
}

// ReportHandler generates the structured report for an interview. The only
// hard failure is an unresolvable transcript; collaborator and parse
// failures come back as a labeled fallback report with a 200.
func (h *ReportHandler) ReportHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.ReportRequest](r)

	turns, err := h.manager.ResolveTranscript(r.Context(), req.Messages, req.InterviewID)
	if err != nil {
		if errors.Is(err, session.ErrNoContent) {
			utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
				Code:    "no_content",
				Message: "No messages to summarize",
			})
			return
		}
		h.logger.Error("transcript resolution failed", zap.Error(err), zap.String("interview_id", req.InterviewID))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "resolver_error",
			Message: "Failed to resolve transcript",
		})
		return
	}

	result, err := h.generator.Generate(r.Context(), req.TopicID, turns)
	if err != nil {
		// Only ErrEmptyTranscript reaches here and the resolver already
		// guaranteed a non-empty transcript; treat as unexpected.
		h.logger.Error("report generation failed unexpectedly", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "report_error",
			Message: "Error generating report",
		})
		return
	}

	// Only real reports persist; a fallback leaves the session untouched so
	// a retry can still complete it. Regenerating for the same session simply
	// overwrites; reports are not versioned.
	if !result.Fallback {
		h.manager.PersistReport(r.Context(), req.InterviewID, &result.Report)
	}

	requestID := uuid.NewString()
	if h.feedbackManager != nil && !result.Fallback {
		h.feedbackManager.StoreRequestContext(&models.RequestContext{
			RequestID:   requestID,
			InterviewID: req.InterviewID,
			TopicID:     req.TopicID,
			Prompt:      result.Prompt + "\n\n" + report.FlattenTranscript(turns),
			Response:    result.Raw,
			Model:       result.Model,
			Timestamp:   time.Now(),
		})
	}

	h.logger.Info("report generated",
		zap.String("interview_id", req.InterviewID),
		zap.String("topic_id", req.TopicID),
		zap.Bool("fallback", result.Fallback),
		zap.Int("processing_time_ms", result.ProcessingTime))

	utils.JSON(w, http.StatusOK, models.ReportResponse{
		Report:    result.Report,
		RequestID: requestID,
		Metadata: models.ReportMetadata{
			ProcessingTime: result.ProcessingTime,
			Provider:       h.provider,
			Model:          result.Model,
			Fallback:       result.Fallback,
		},
	})
}
