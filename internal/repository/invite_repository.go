package repository

import (
	"time"

	"github.com/velora-hq/velora-api/internal/models"
	"gorm.io/gorm"
)

// GormInvestorInviteRepository is a GORM implementation of InvestorInviteRepository
type GormInvestorInviteRepository struct {
	db *gorm.DB
}

// NewInvestorInviteRepository creates a new InvestorInviteRepository
func NewInvestorInviteRepository(db *gorm.DB) InvestorInviteRepository {
	return &GormInvestorInviteRepository{db: db}
}

// Create creates a new invite; the code carries a unique index
func (r *GormInvestorInviteRepository) Create(invite *models.InvestorInvite) error {
	return r.db.Create(invite).Error
}

// FindPendingByCode finds a pending invite by code
func (r *GormInvestorInviteRepository) FindPendingByCode(code string) (*models.InvestorInvite, error) {
	var invite models.InvestorInvite
	if err := r.db.Where("invite_code = ? AND status = ?", code, models.InviteStatusPending).
		First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// MarkAccepted flips a pending invite to accepted. The status guard in
// the WHERE clause makes the single-use transition atomic: a concurrent
// accept of the same code matches zero rows and reports false.
func (r *GormInvestorInviteRepository) MarkAccepted(id uint64) (bool, error) {
	now := time.Now()
	result := r.db.Model(&models.InvestorInvite{}).
		Where("id = ? AND status = ?", id, models.InviteStatusPending).
		Updates(map[string]interface{}{
			"status":      models.InviteStatusAccepted,
			"accepted_at": &now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListPendingByWorkspace lists a workspace's pending invites
func (r *GormInvestorInviteRepository) ListPendingByWorkspace(workspaceID uint64) ([]models.InvestorInvite, error) {
	var invites []models.InvestorInvite
	if err := r.db.Where("workspace_id = ? AND status = ?", workspaceID, models.InviteStatusPending).
		Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}
