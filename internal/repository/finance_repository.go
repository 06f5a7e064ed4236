package repository

import (
	"github.com/velora-hq/velora-api/internal/models"
	"gorm.io/gorm"
)

// GormFinanceRepository is a GORM implementation of FinanceRepository
type GormFinanceRepository struct {
	db *gorm.DB
}

// NewFinanceRepository creates a new FinanceRepository
func NewFinanceRepository(db *gorm.DB) FinanceRepository {
	return &GormFinanceRepository{db: db}
}

// CreateIncome creates an income record
func (r *GormFinanceRepository) CreateIncome(income *models.Income) error {
	return r.db.Create(income).Error
}

// ListIncome lists a workspace's income records, newest date first
func (r *GormFinanceRepository) ListIncome(workspaceID uint64) ([]models.Income, error) {
	var income []models.Income
	if err := r.db.Where("workspace_id = ?", workspaceID).
		Order("date DESC").
		Find(&income).Error; err != nil {
		return nil, err
	}
	return income, nil
}

// DeleteIncome removes an income record scoped to its workspace
func (r *GormFinanceRepository) DeleteIncome(workspaceID, id uint64) error {
	return r.deleteScoped(workspaceID, id, &models.Income{})
}

// deleteScoped deletes a ledger record by id within its workspace. A
// delete that matches nothing reports gorm.ErrRecordNotFound.
func (r *GormFinanceRepository) deleteScoped(workspaceID, id uint64, model interface{}) error {
	result := r.db.Where("id = ? AND workspace_id = ?", id, workspaceID).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateExpense creates an expense record
func (r *GormFinanceRepository) CreateExpense(expense *models.Expense) error {
	return r.db.Create(expense).Error
}

// ListExpenses lists a workspace's expense records, newest date first
func (r *GormFinanceRepository) ListExpenses(workspaceID uint64) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := r.db.Where("workspace_id = ?", workspaceID).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// DeleteExpense removes an expense record scoped to its workspace
func (r *GormFinanceRepository) DeleteExpense(workspaceID, id uint64) error {
	return r.deleteScoped(workspaceID, id, &models.Expense{})
}

// CreateInvestment creates an investment record
func (r *GormFinanceRepository) CreateInvestment(investment *models.Investment) error {
	return r.db.Create(investment).Error
}

// ListInvestments lists a workspace's investments, newest date first
func (r *GormFinanceRepository) ListInvestments(workspaceID uint64) ([]models.Investment, error) {
	var investments []models.Investment
	if err := r.db.Where("workspace_id = ?", workspaceID).
		Order("date DESC").
		Find(&investments).Error; err != nil {
		return nil, err
	}
	return investments, nil
}

// DeleteInvestment removes an investment record scoped to its workspace
func (r *GormFinanceRepository) DeleteInvestment(workspaceID, id uint64) error {
	return r.deleteScoped(workspaceID, id, &models.Investment{})
}
