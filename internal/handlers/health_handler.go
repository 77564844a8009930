package handlers

import (
	"net/http"

	"voxpop/interview/internal/config"
	"voxpop/interview/internal/llm"
	"voxpop/interview/internal/prompts"
	"voxpop/interview/internal/session"
	"voxpop/interview/internal/utils"
)

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "degraded" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"`  // "ready" | "not_ready"
	Service string                    `json:"service"` // Service name
	Checks  map[string]ReadinessCheck `json:"checks"`  // Individual check results
}

type HealthHandler struct {
	provider      llm.Provider
	promptManager prompts.PromptProvider
	manager       *session.Manager
	config        *config.Config
}

func NewHealthHandler(provider llm.Provider, promptManager prompts.PromptProvider, manager *session.Manager, cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		provider:      provider,
		promptManager: promptManager,
		manager:       manager,
		config:        cfg,
	}
}

func (handler *HealthHandler) HealthzHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "interview",
		"version": "1.0.0",
	})
}

func (handler *HealthHandler) ReadyzHandler(writer http.ResponseWriter, request *http.Request) {
	checks := make(map[string]ReadinessCheck)
	allChecksPass := true

	// verify AI provider is initialized
	if handler.provider == nil {
		checks["provider"] = ReadinessCheck{
			Status:  "failed",
			Message: "AI provider not initialized",
		}
		allChecksPass = false
	} else {
		checks["provider"] = ReadinessCheck{
			Status: "ok",
		}
	}

	// verify prompt manager has templates loaded
	if handler.promptManager == nil {
		checks["prompt_manager"] = ReadinessCheck{
			Status:  "failed",
			Message: "Prompt manager not initialized",
		}
		allChecksPass = false
	} else if len(handler.promptManager.GetTemplates()) == 0 {
		checks["prompt_manager"] = ReadinessCheck{
			Status:  "failed",
			Message: "No prompt templates loaded",
		}
		allChecksPass = false
	} else {
		checks["prompt_manager"] = ReadinessCheck{
			Status: "ok",
		}
	}

	// The store is optional: the service runs with mock sessions without it,
	// so an unconfigured store degrades readiness info but never fails it.
	if handler.manager != nil && handler.manager.Configured() {
		checks["store"] = ReadinessCheck{
			Status: "ok",
		}
	} else {
		checks["store"] = ReadinessCheck{
			Status:  "degraded",
			Message: "Interview store not configured, sessions are mock-only",
		}
	}

	response := ReadinessResponse{
		Status:  "ready",
		Service: "interview",
		Checks:  checks,
	}
	statusCode := http.StatusOK
	if !allChecksPass {
		response.Status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	utils.JSON(writer, statusCode, response)
}
