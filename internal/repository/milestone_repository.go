package repository

import (
	"github.com/velora-hq/velora-api/internal/models"
	"gorm.io/gorm"
)

// GormMilestoneRepository is a GORM implementation of MilestoneRepository
type GormMilestoneRepository struct {
	db *gorm.DB
}

// NewMilestoneRepository creates a new MilestoneRepository
func NewMilestoneRepository(db *gorm.DB) MilestoneRepository {
	return &GormMilestoneRepository{db: db}
}

// Create creates a new milestone
func (r *GormMilestoneRepository) Create(milestone *models.Milestone) error {
	return r.db.Create(milestone).Error
}

// FindByID finds a milestone by ID
func (r *GormMilestoneRepository) FindByID(id uint64) (*models.Milestone, error) {
	var milestone models.Milestone
	if err := r.db.First(&milestone, id).Error; err != nil {
		return nil, err
	}
	return &milestone, nil
}

// ListByWorkspace lists all milestones in a workspace
func (r *GormMilestoneRepository) ListByWorkspace(workspaceID uint64) ([]models.Milestone, error) {
	var milestones []models.Milestone
	if err := r.db.Where("workspace_id = ?", workspaceID).
		Find(&milestones).Error; err != nil {
		return nil, err
	}
	return milestones, nil
}

// Update updates a milestone
func (r *GormMilestoneRepository) Update(milestone *models.Milestone) error {
	return r.db.Save(milestone).Error
}

// DeleteAndDetachTasks removes the milestone and nulls milestone_id on
// every referencing task. Delete-then-detach runs inside one transaction;
// if the transaction dies between the steps a dangling reference is
// harmless and disappears on the next delete attempt.
func (r *GormMilestoneRepository) DeleteAndDetachTasks(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Milestone{}, id).Error; err != nil {
			return err
		}

		return tx.Model(&models.Task{}).
			Where("milestone_id = ?", id).
			Update("milestone_id", nil).Error
	})
}
