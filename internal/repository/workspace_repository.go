package repository

import (
	"github.com/velora-hq/velora-api/internal/models"
	"gorm.io/gorm"
)

// GormWorkspaceRepository is a GORM implementation of WorkspaceRepository
type GormWorkspaceRepository struct {
	db *gorm.DB
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &GormWorkspaceRepository{db: db}
}

// CreateWithFounder creates the workspace and its founder membership atomically.
func (r *GormWorkspaceRepository) CreateWithFounder(workspace *models.Workspace, member *models.Membership) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(workspace).Error; err != nil {
			return err
		}

		member.WorkspaceID = workspace.ID
		member.UserID = workspace.FounderID

		return tx.Create(member).Error
	})
}

// FindByID finds a workspace by ID
func (r *GormWorkspaceRepository) FindByID(id uint64) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := r.db.First(&workspace, id).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

// FindByInviteCode finds a workspace by its join code
func (r *GormWorkspaceRepository) FindByInviteCode(code string) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := r.db.Where("invite_code = ?", code).First(&workspace).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

// Update updates a workspace
func (r *GormWorkspaceRepository) Update(workspace *models.Workspace) error {
	return r.db.Save(workspace).Error
}

// Delete removes a workspace and all related records in a transaction
func (r *GormWorkspaceRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workspace_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&models.Milestone{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&models.Feedback{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&models.Income{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&models.Investment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&models.InvestorInvite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&models.Subscription{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&models.Membership{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Workspace{}, id).Error
	})
}

// AddMember inserts a membership. The composite unique index on
// (workspace_id, user_id) turns a duplicate insert into
// gorm.ErrDuplicatedKey.
func (r *GormWorkspaceRepository) AddMember(member *models.Membership) error {
	return r.db.Create(member).Error
}

// RemoveMember removes a membership
func (r *GormWorkspaceRepository) RemoveMember(workspaceID, userID uint64) error {
	return r.db.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Delete(&models.Membership{}).Error
}

// FindMember finds a specific membership
func (r *GormWorkspaceRepository) FindMember(workspaceID, userID uint64) (*models.Membership, error) {
	var member models.Membership
	if err := r.db.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateMemberRole changes a membership's role
func (r *GormWorkspaceRepository) UpdateMemberRole(workspaceID, userID uint64, role models.MembershipRole) error {
	return r.db.Model(&models.Membership{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Update("role", role).Error
}

// ListMembers lists all memberships of a workspace
func (r *GormWorkspaceRepository) ListMembers(workspaceID uint64) ([]models.Membership, error) {
	var members []models.Membership
	if err := r.db.Preload("User").
		Where("workspace_id = ?", workspaceID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListMembersByRole lists a workspace's memberships with a given role
func (r *GormWorkspaceRepository) ListMembersByRole(workspaceID uint64, role models.MembershipRole) ([]models.Membership, error) {
	var members []models.Membership
	if err := r.db.Preload("User").
		Where("workspace_id = ? AND role = ?", workspaceID, role).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListMembershipsByUserID lists all workspaces a user is a member of
func (r *GormWorkspaceRepository) ListMembershipsByUserID(userID uint64) ([]models.Membership, error) {
	var memberships []models.Membership
	if err := r.db.Preload("Workspace").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// CountMembers counts a workspace's memberships
func (r *GormWorkspaceRepository) CountMembers(workspaceID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Membership{}).
		Where("workspace_id = ?", workspaceID).
		Count(&count).Error
	return count, err
}
