package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"voxpop/interview/internal/models"
)

// Store is the transcript store adapter. A nil Store means persistence is
// unconfigured; callers short-circuit instead of calling through.
type Store interface {
	CreateInterview(ctx context.Context, topicID string) (*models.Interview, error)
	GetInterview(ctx context.Context, id string) (*models.Interview, error)
	ListInterviews(ctx context.Context) ([]models.Interview, error)
	UpdateMessages(ctx context.Context, id string, messages models.TurnList) error
	SaveReport(ctx context.Context, id string, report *models.Report) error
	UnexportedCompleted(ctx context.Context, limit int) ([]models.Interview, error)
	MarkExported(ctx context.Context, ids []string) error
}

type gormStore struct {
	db *gorm.DB
}

// New wraps a gorm connection in the Store interface.
func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Migrate creates/updates the interview tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Interview{}, &models.ReportFeedback{})
}

func (s *gormStore) CreateInterview(ctx context.Context, topicID string) (*models.Interview, error) {
	interview := &models.Interview{
		ID:       uuid.NewString(),
		TopicID:  topicID,
		Status:   models.StatusStarted,
		Messages: models.TurnList{},
	}
	if err := s.db.WithContext(ctx).Create(interview).Error; err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}
	return interview, nil
}

func (s *gormStore) GetInterview(ctx context.Context, id string) (*models.Interview, error) {
	var interview models.Interview
	if err := s.db.WithContext(ctx).First(&interview, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &interview, nil
}

func (s *gormStore) ListInterviews(ctx context.Context) ([]models.Interview, error) {
	var interviews []models.Interview
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&interviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	return interviews, nil
}

// UpdateMessages overwrites the interview's transcript. Last write wins; the
// active interview tab is the only writer for a session.
func (s *gormStore) UpdateMessages(ctx context.Context, id string, messages models.TurnList) error {
	result := s.db.WithContext(ctx).Model(&models.Interview{}).
		Where("id = ?", id).
		Update("messages", messages)
	if result.Error != nil {
		return fmt.Errorf("failed to update messages: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SaveReport attaches the report and flips the interview to completed.
// Calling it again for the same interview overwrites the previous report.
func (s *gormStore) SaveReport(ctx context.Context, id string, report *models.Report) error {
	result := s.db.WithContext(ctx).Model(&models.Interview{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"report": report,
			"status": models.StatusCompleted,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to save report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *gormStore) UnexportedCompleted(ctx context.Context, limit int) ([]models.Interview, error) {
	var interviews []models.Interview
	query := s.db.WithContext(ctx).
		Where("status = ? AND exported = ?", models.StatusCompleted, false).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&interviews).Error; err != nil {
		return nil, fmt.Errorf("failed to get unexported interviews: %w", err)
	}
	return interviews, nil
}

func (s *gormStore) MarkExported(ctx context.Context, ids []string) error {
	now := time.Now()
	result := s.db.WithContext(ctx).Model(&models.Interview{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"exported":    true,
			"exported_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark interviews as exported: %w", result.Error)
	}
	return nil
}
