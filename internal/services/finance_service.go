package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/velora-hq/velora-api/internal/analytics"
	"github.com/velora-hq/velora-api/internal/models"
	"github.com/velora-hq/velora-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound        = errors.New("record not found")
	ErrNegativeAmount        = errors.New("amount must be non-negative")
	ErrInvalidCategory       = errors.New("invalid category")
	ErrInvalidInvestmentType = errors.New("invalid investment type")
	ErrInvalidEquity         = errors.New("equity percentage must be between 0 and 100")
	ErrInvestorNameRequired  = errors.New("investor name is required")
)

// FinanceService manages the income, expense, and investment ledgers.
// Ledger entries have no update path; corrections are delete and re-add.
type FinanceService struct {
	financeRepo repository.FinanceRepository
}

// NewFinanceService creates a new FinanceService
func NewFinanceService(financeRepo repository.FinanceRepository) *FinanceService {
	return &FinanceService{
		financeRepo: financeRepo,
	}
}

// entryDate defaults a missing ledger date to today.
func entryDate(date *time.Time) time.Time {
	if date != nil {
		return *date
	}
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// AddIncomeInput represents input for recording income
type AddIncomeInput struct {
	WorkspaceID uint64
	Title       string
	Amount      float64
	Category    models.IncomeCategory
	Date        *time.Time
	Notes       string
	CreatedBy   uint64
}

// AddIncome records an income entry
func (s *FinanceService) AddIncome(input AddIncomeInput) (*models.Income, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.Amount < 0 {
		return nil, ErrNegativeAmount
	}
	category := input.Category
	if category == "" {
		category = models.IncomeCategoryRevenue
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	income := &models.Income{
		WorkspaceID: input.WorkspaceID,
		Title:       input.Title,
		Amount:      input.Amount,
		Category:    category,
		Date:        entryDate(input.Date),
		Notes:       input.Notes,
		CreatedBy:   input.CreatedBy,
	}
	if err := s.financeRepo.CreateIncome(income); err != nil {
		return nil, fmt.Errorf("failed to create income: %w", err)
	}
	return income, nil
}

// ListIncome returns all income entries in a workspace
func (s *FinanceService) ListIncome(workspaceID uint64) ([]models.Income, error) {
	income, err := s.financeRepo.ListIncome(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list income: %w", err)
	}
	return income, nil
}

// DeleteIncome removes an income entry
func (s *FinanceService) DeleteIncome(workspaceID, id uint64) error {
	if err := s.financeRepo.DeleteIncome(workspaceID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("failed to delete income: %w", err)
	}
	return nil
}

// AddExpenseInput represents input for recording an expense
type AddExpenseInput struct {
	WorkspaceID uint64
	Title       string
	Amount      float64
	Category    models.ExpenseCategory
	Date        *time.Time
	Notes       string
	CreatedBy   uint64
}

// AddExpense records an expense entry
func (s *FinanceService) AddExpense(input AddExpenseInput) (*models.Expense, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.Amount < 0 {
		return nil, ErrNegativeAmount
	}
	category := input.Category
	if category == "" {
		category = models.ExpenseCategoryOperations
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	expense := &models.Expense{
		WorkspaceID: input.WorkspaceID,
		Title:       input.Title,
		Amount:      input.Amount,
		Category:    category,
		Date:        entryDate(input.Date),
		Notes:       input.Notes,
		CreatedBy:   input.CreatedBy,
	}
	if err := s.financeRepo.CreateExpense(expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return expense, nil
}

// ListExpenses returns all expense entries in a workspace
func (s *FinanceService) ListExpenses(workspaceID uint64) ([]models.Expense, error) {
	expenses, err := s.financeRepo.ListExpenses(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// DeleteExpense removes an expense entry
func (s *FinanceService) DeleteExpense(workspaceID, id uint64) error {
	if err := s.financeRepo.DeleteExpense(workspaceID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

// AddInvestmentInput represents input for recording an investment
type AddInvestmentInput struct {
	WorkspaceID      uint64
	InvestorName     string
	Amount           float64
	EquityPercentage float64
	InvestmentType   models.InvestmentType
	Date             *time.Time
	Notes            string
	CreatedBy        uint64
}

// AddInvestment records an investment entry
func (s *FinanceService) AddInvestment(input AddInvestmentInput) (*models.Investment, error) {
	if strings.TrimSpace(input.InvestorName) == "" {
		return nil, ErrInvestorNameRequired
	}
	if input.Amount < 0 {
		return nil, ErrNegativeAmount
	}
	if input.EquityPercentage < 0 || input.EquityPercentage > 100 {
		return nil, ErrInvalidEquity
	}
	investmentType := input.InvestmentType
	if investmentType == "" {
		investmentType = models.InvestmentTypeSeed
	}
	if !investmentType.Valid() {
		return nil, ErrInvalidInvestmentType
	}

	investment := &models.Investment{
		WorkspaceID:      input.WorkspaceID,
		InvestorName:     input.InvestorName,
		Amount:           input.Amount,
		EquityPercentage: input.EquityPercentage,
		InvestmentType:   investmentType,
		Date:             entryDate(input.Date),
		Notes:            input.Notes,
		CreatedBy:        input.CreatedBy,
	}
	if err := s.financeRepo.CreateInvestment(investment); err != nil {
		return nil, fmt.Errorf("failed to create investment: %w", err)
	}
	return investment, nil
}

// ListInvestments returns all investment entries in a workspace
func (s *FinanceService) ListInvestments(workspaceID uint64) ([]models.Investment, error) {
	investments, err := s.financeRepo.ListInvestments(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	return investments, nil
}

// DeleteInvestment removes an investment entry
func (s *FinanceService) DeleteInvestment(workspaceID, id uint64) error {
	if err := s.financeRepo.DeleteInvestment(workspaceID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("failed to delete investment: %w", err)
	}
	return nil
}

// FinanceSummary computes the workspace's financial summary over all
// three ledgers.
func (s *FinanceService) FinanceSummary(workspaceID uint64) (*analytics.FinanceSummary, error) {
	income, err := s.financeRepo.ListIncome(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list income: %w", err)
	}
	expenses, err := s.financeRepo.ListExpenses(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	investments, err := s.financeRepo.ListInvestments(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}

	summary := analytics.ComputeFinanceSummary(income, expenses, investments)
	return &summary, nil
}
