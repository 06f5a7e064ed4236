package repository

import (
	"github.com/velora-hq/velora-api/internal/models"
	"gorm.io/gorm"
)

// GormSubscriptionRepository is a GORM implementation of SubscriptionRepository
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByWorkspace finds a workspace's subscription record
func (r *GormSubscriptionRepository) FindByWorkspace(workspaceID uint64) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.Where("workspace_id = ?", workspaceID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// Create creates a subscription record
func (r *GormSubscriptionRepository) Create(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

// Update updates a subscription record
func (r *GormSubscriptionRepository) Update(sub *models.Subscription) error {
	return r.db.Save(sub).Error
}
