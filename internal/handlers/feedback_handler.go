package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"voxpop/interview/internal/feedback"
	"voxpop/interview/internal/models"
	"voxpop/interview/internal/utils"
)

type FeedbackHandler struct {
	feedbackManager *feedback.FeedbackManager
}

func NewFeedbackHandler(feedbackManager *feedback.FeedbackManager) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackManager: feedbackManager,
	}
}

// SubmitFeedbackRequest represents the request body for feedback submission
type SubmitFeedbackRequest struct {
	IsPositive bool `json:"is_positive"`
}

// unavailable writes a 503 when the feedback system runs without a database.
func (fh *FeedbackHandler) unavailable(w http.ResponseWriter) bool {
	if fh.feedbackManager != nil {
		return false
	}
	utils.JSON(w, http.StatusServiceUnavailable, models.ErrorResponse{
		Code:    "store_unavailable",
		Message: "Feedback store is not configured",
	})
	return true
}

// SubmitFeedback handles POST /api/v1/reports/feedback/{request_id}
func (fh *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	if fh.unavailable(w) {
		return
	}

	requestID := chi.URLParam(r, "request_id")
	if requestID == "" {
		utils.WriteJSON(w, http.StatusBadRequest, models.Resp{
			OK:   false,
			Info: "request_id is required",
		})
		return
	}

	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, models.Resp{
			OK:   false,
			Info: "invalid request body",
		})
		return
	}

	if err := fh.feedbackManager.SubmitFeedback(requestID, req.IsPositive); err != nil {
		log.Printf("Failed to submit feedback: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, models.Resp{
			OK:   false,
			Info: "failed to submit feedback: " + err.Error(),
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.Resp{
		OK:   true,
		Info: "feedback submitted successfully",
	})
}

// GetFeedbackStats handles GET /api/v1/reports/feedback/stats
func (fh *FeedbackHandler) GetFeedbackStats(w http.ResponseWriter, r *http.Request) {
	if fh.unavailable(w) {
		return
	}

	stats, err := fh.feedbackManager.GetFeedbackStats()
	if err != nil {
		log.Printf("Failed to get feedback stats: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, models.Resp{
			OK:   false,
			Info: "failed to get feedback stats",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.Resp{
		OK:   true,
		Info: stats,
	})
}
