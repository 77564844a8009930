package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"voxpop/interview/internal/feedback"
	"voxpop/interview/internal/models"
	"voxpop/interview/internal/store"

	"github.com/robfig/cron/v3"
)

// FeedbackExporterJob periodically exports reviewer feedback as fine-tuning
// training data and completed interview transcripts for offline analysis
type FeedbackExporterJob struct {
	feedbackManager *feedback.FeedbackManager
	interviews      store.Store
	config          *ExporterConfig
	cron            *cron.Cron
}

// ExporterConfig contains configuration for the exporter job
type ExporterConfig struct {
	Schedule      string // Cron schedule (e.g., "0 2 * * *" for 2 AM daily)
	ExportDir     string // Directory to store exported files
	ExportEnabled bool   // Whether to run exports
}

// NewFeedbackExporterJob creates a new exporter job. A nil interview store
// limits the job to feedback exports.
func NewFeedbackExporterJob(feedbackManager *feedback.FeedbackManager, interviews store.Store, config *ExporterConfig) *FeedbackExporterJob {
	return &FeedbackExporterJob{
		feedbackManager: feedbackManager,
		interviews:      interviews,
		config:          config,
		cron:            cron.New(),
	}
}

// Start begins the scheduled export job
func (fej *FeedbackExporterJob) Start() error {
	if !fej.config.ExportEnabled {
		log.Println("Feedback export is disabled, skipping scheduler")
		return nil
	}

	log.Printf("Starting feedback exporter with schedule: %s", fej.config.Schedule)

	_, err := fej.cron.AddFunc(fej.config.Schedule, func() {
		if err := fej.RunExport(); err != nil {
			log.Printf("Export job failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule export job: %w", err)
	}

	fej.cron.Start()
	log.Println("Feedback exporter started successfully")

	return nil
}

// Stop stops the scheduled export job
func (fej *FeedbackExporterJob) Stop() {
	if fej.cron != nil {
		fej.cron.Stop()
		log.Println("Feedback exporter stopped")
	}
}

// RunExport performs a single export run: feedback first, then completed
// interview transcripts
func (fej *FeedbackExporterJob) RunExport() error {
	if err := fej.exportFeedback(); err != nil {
		return err
	}
	return fej.exportTranscripts()
}

func (fej *FeedbackExporterJob) exportFeedback() error {
	log.Println("Starting feedback export job...")

	records, err := fej.feedbackManager.GetUnexportedFeedback(0) // no limit
	if err != nil {
		return fmt.Errorf("failed to get unexported feedback: %w", err)
	}

	if len(records) == 0 {
		log.Println("No unexported feedback found")
		return nil
	}

	log.Printf("Found %d unexported feedback records", len(records))

	jsonlData, err := fej.feedbackManager.ExportToJSONL(records)
	if err != nil {
		return fmt.Errorf("failed to export to JSONL: %w", err)
	}

	positiveCount := 0
	for _, fb := range records {
		if fb.IsPositive {
			positiveCount++
		}
	}

	feedbackIDs := make([]uint, len(records))
	for i, fb := range records {
		feedbackIDs[i] = fb.ID
	}

	if positiveCount == 0 {
		log.Println("No positive feedback to export, skipping file creation")
		// Still mark as exported to not process negative feedback again
		return fej.feedbackManager.MarkAsExported(feedbackIDs)
	}

	exportPath, err := fej.writeExportFile("feedback_export", jsonlData)
	if err != nil {
		return err
	}

	log.Printf("Exported %d positive feedback samples to %s", positiveCount, exportPath)

	if err := fej.feedbackManager.MarkAsExported(feedbackIDs); err != nil {
		return fmt.Errorf("failed to mark as exported: %w", err)
	}

	return nil
}

// transcriptExport is one JSONL line of the transcript export.
type transcriptExport struct {
	InterviewID string          `json:"interview_id"`
	TopicID     string          `json:"topic_id"`
	Messages    models.TurnList `json:"messages"`
	Report      *models.Report  `json:"report,omitempty"`
}

func (fej *FeedbackExporterJob) exportTranscripts() error {
	if fej.interviews == nil {
		return nil
	}

	ctx := context.Background()
	completed, err := fej.interviews.UnexportedCompleted(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to get unexported interviews: %w", err)
	}

	if len(completed) == 0 {
		log.Println("No unexported completed interviews found")
		return nil
	}

	log.Printf("Found %d unexported completed interviews", len(completed))

	var jsonlData []byte
	ids := make([]string, len(completed))
	for i, iv := range completed {
		ids[i] = iv.ID
		line, err := json.Marshal(transcriptExport{
			InterviewID: iv.ID,
			TopicID:     iv.TopicID,
			Messages:    iv.Messages,
			Report:      iv.Report,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal transcript: %w", err)
		}
		if i > 0 {
			jsonlData = append(jsonlData, '\n')
		}
		jsonlData = append(jsonlData, line...)
	}

	exportPath, err := fej.writeExportFile("transcript_export", jsonlData)
	if err != nil {
		return err
	}

	log.Printf("Exported %d interview transcripts to %s", len(completed), exportPath)

	if err := fej.interviews.MarkExported(ctx, ids); err != nil {
		return fmt.Errorf("failed to mark interviews as exported: %w", err)
	}

	return nil
}

func (fej *FeedbackExporterJob) writeExportFile(prefix string, data []byte) (string, error) {
	if err := os.MkdirAll(fej.config.ExportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.jsonl", prefix, timestamp)
	exportPath := filepath.Join(fej.config.ExportDir, filename)

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return exportPath, nil
}

// RunManual runs an export manually (for testing or on-demand exports)
func (fej *FeedbackExporterJob) RunManual() error {
	return fej.RunExport()
}
