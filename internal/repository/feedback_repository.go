package repository

import (
	"github.com/velora-hq/velora-api/internal/models"
	"gorm.io/gorm"
)

// GormFeedbackRepository is a GORM implementation of FeedbackRepository
type GormFeedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &GormFeedbackRepository{db: db}
}

// Create creates a new feedback entry
func (r *GormFeedbackRepository) Create(feedback *models.Feedback) error {
	return r.db.Create(feedback).Error
}

// ListByWorkspace lists all feedback in a workspace, newest first
func (r *GormFeedbackRepository) ListByWorkspace(workspaceID uint64) ([]models.Feedback, error) {
	var feedback []models.Feedback
	if err := r.db.Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&feedback).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}
