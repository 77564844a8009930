package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"voxpop/interview/internal/llm"
	"voxpop/interview/internal/middleware"
	"voxpop/interview/internal/models"
	"voxpop/interview/internal/prompts"
	"voxpop/interview/internal/session"
	"voxpop/interview/internal/utils"
)

// ChatHandler drives one streaming turn exchange with the interviewer.
type ChatHandler struct {
	provider      llm.Provider
	promptManager prompts.PromptProvider
	manager       *session.Manager
	logger        *zap.Logger
}

func NewChatHandler(provider llm.Provider, promptManager prompts.PromptProvider, manager *session.Manager, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		provider:      provider,
		promptManager: promptManager,
		manager:       manager,
		logger:        logger,
	}
}

type streamChunk struct {
	Text string `json:"text"`
}

// ChatHandler streams the assistant's reply as SSE frames: one data frame
// per text chunk, a terminal [DONE] marker on success, or a single terminal
// error event on collaborator failure. The transcript is only persisted
// after the turn fully completes; a failed or cancelled turn commits nothing.
func (h *ChatHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.ChatRequest](r)

	systemPrompt, err := h.promptManager.BuildPrompt("interviewer", "default", map[string]string{
		"Topic": models.TopicTitle(req.TopicID),
	})
	if err != nil {
		h.logger.Error("failed to build interviewer prompt", zap.Error(err), zap.String("topic_id", req.TopicID))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "prompt_error",
			Message: "Failed to build AI prompt",
		})
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "streaming_unsupported",
			Message: "Streaming not supported",
		})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	finalText, err := h.provider.StreamContent(r.Context(), systemPrompt, req.Messages, func(text string) error {
		payload, err := json.Marshal(streamChunk{Text: text})
		if err != nil {
			return err
		}
		if _, err := w.Write([]byte("data: " + string(payload) + "\n\n")); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		if r.Context().Err() != nil {
			// Client disconnected or cancelled; nothing to send, nothing
			// to persist.
			h.logger.Debug("turn cancelled", zap.String("interview_id", req.InterviewID))
			return
		}
		h.logger.Error("turn exchange failed",
			zap.Error(err),
			zap.String("interview_id", req.InterviewID),
			zap.String("provider", h.provider.GetProviderName()))
		writeStreamError(w, flusher, err)
		return
	}

	// The caller has already observed the full assistant text; persistence
	// is strictly after the fact and best-effort.
	transcript := append(req.Messages, models.Turn{
		ID:        uuid.NewString(),
		Role:      models.RoleAssistant,
		Content:   finalText,
		CreatedAt: time.Now(),
	})

	w.Write([]byte("data: [DONE]\n\n"))
	flusher.Flush()

	h.manager.PersistTranscript(context.WithoutCancel(r.Context()), req.InterviewID, transcript)
}

func writeStreamError(w http.ResponseWriter, flusher http.Flusher, err error) {
	code := "ai_error"
	message := "Error communicating with AI"
	if provErr, ok := err.(*llm.ProviderError); ok {
		code = provErr.Code
		if provErr.Code == llm.ErrCodeAPIKey {
			message = "Unable to connect to AI. Please check your API key."
		}
	}

	payload, _ := json.Marshal(models.ErrorResponse{Code: code, Message: message})
	w.Write([]byte("event: error\ndata: " + string(payload) + "\n\n"))
	flusher.Flush()
}
