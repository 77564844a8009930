package routers

import (
	"voxpop/interview/internal/handlers"
	"voxpop/interview/internal/middleware"
	"voxpop/interview/internal/models"

	"github.com/go-chi/chi/v5"
)

func InterviewRoutes(router *chi.Mux, interviewHandler *handlers.InterviewHandler, chatHandler *handlers.ChatHandler, reportHandler *handlers.ReportHandler, feedbackHandler *handlers.FeedbackHandler) {
	router.Route("/api/v1/interviews", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.CreateInterviewRequest]()).Post("/", interviewHandler.CreateHandler)
		r.Get("/", interviewHandler.ListHandler)
		r.Get("/topics", interviewHandler.TopicsHandler)
		r.With(middleware.ValidateRequest[*models.ChatRequest]()).Post("/chat", chatHandler.ChatHandler)
		r.With(middleware.ValidateRequest[*models.ReportRequest]()).Post("/report", reportHandler.ReportHandler)
		r.Get("/{id}", interviewHandler.GetHandler)
	})

	router.Route("/api/v1/reports", func(r chi.Router) {
		r.Post("/feedback/{request_id}", feedbackHandler.SubmitFeedback)
		r.Get("/feedback/stats", feedbackHandler.GetFeedbackStats)
	})
}
