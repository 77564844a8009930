package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"voxpop/interview/internal/middleware"
	"voxpop/interview/internal/models"
	"voxpop/interview/internal/session"
	"voxpop/interview/internal/utils"
)

type InterviewHandler struct {
	manager *session.Manager
	logger  *zap.Logger
}

func NewInterviewHandler(manager *session.Manager, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{
		manager: manager,
		logger:  logger,
	}
}

// CreateHandler starts a new interview session. Always succeeds for a
// well-formed body: when the store is unavailable the response carries a
// mock id the client can keep using locally.
func (h *InterviewHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateInterviewRequest](r)

	id, mock := h.manager.Create(r.Context(), req.TopicID)

	h.logger.Info("interview session created",
		zap.String("interview_id", id),
		zap.String("topic_id", req.TopicID),
		zap.Bool("mock", mock))

	utils.JSON(w, http.StatusOK, models.CreateInterviewResponse{
		ID:   id,
		Mock: mock,
	})
}

// ListHandler returns all interviews, newest first, for the admin dashboard.
func (h *InterviewHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !h.manager.Configured() {
		utils.JSON(w, http.StatusServiceUnavailable, models.ErrorResponse{
			Code:    "store_unavailable",
			Message: "Interview store is not configured",
		})
		return
	}

	interviews, err := h.manager.Store().ListInterviews(r.Context())
	if err != nil {
		h.logger.Error("failed to list interviews", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "store_error",
			Message: "Failed to list interviews",
		})
		return
	}

	utils.JSON(w, http.StatusOK, models.Resp{OK: true, Info: interviews})
}

// GetHandler fetches one interview. Mock ids never touch the store.
func (h *InterviewHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if models.IsMockID(id) {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "mock_session",
			Message: "Mock sessions are not persisted",
		})
		return
	}
	if !h.manager.Configured() {
		utils.JSON(w, http.StatusServiceUnavailable, models.ErrorResponse{
			Code:    "store_unavailable",
			Message: "Interview store is not configured",
		})
		return
	}

	interview, err := h.manager.Store().GetInterview(r.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
				Code:    "not_found",
				Message: "Interview not found",
			})
			return
		}
		h.logger.Error("failed to fetch interview", zap.Error(err), zap.String("interview_id", id))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "store_error",
			Message: "Failed to fetch interview",
		})
		return
	}

	utils.JSON(w, http.StatusOK, interview)
}

// TopicsHandler serves the fixed topic catalog.
func (h *InterviewHandler) TopicsHandler(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, models.Topics())
}
