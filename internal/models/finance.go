package models

import "time"

type IncomeCategory string

const (
	IncomeCategoryRevenue    IncomeCategory = "revenue"
	IncomeCategoryInvestment IncomeCategory = "investment"
	IncomeCategoryGrant      IncomeCategory = "grant"
	IncomeCategoryOther      IncomeCategory = "other"
)

// Valid reports whether the category is one of the known income categories.
func (c IncomeCategory) Valid() bool {
	switch c {
	case IncomeCategoryRevenue, IncomeCategoryInvestment, IncomeCategoryGrant, IncomeCategoryOther:
		return true
	}
	return false
}

type ExpenseCategory string

const (
	ExpenseCategorySalary         ExpenseCategory = "salary"
	ExpenseCategoryMarketing      ExpenseCategory = "marketing"
	ExpenseCategoryOperations     ExpenseCategory = "operations"
	ExpenseCategoryInfrastructure ExpenseCategory = "infrastructure"
	ExpenseCategoryOther          ExpenseCategory = "other"
)

// Valid reports whether the category is one of the known expense categories.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseCategorySalary, ExpenseCategoryMarketing, ExpenseCategoryOperations,
		ExpenseCategoryInfrastructure, ExpenseCategoryOther:
		return true
	}
	return false
}

type InvestmentType string

const (
	InvestmentTypePreSeed InvestmentType = "pre-seed"
	InvestmentTypeSeed    InvestmentType = "seed"
	InvestmentTypeSeriesA InvestmentType = "series-a"
	InvestmentTypeSeriesB InvestmentType = "series-b"
	InvestmentTypeAngel   InvestmentType = "angel"
	InvestmentTypeOther   InvestmentType = "other"
)

// Valid reports whether the type is one of the known investment rounds.
func (t InvestmentType) Valid() bool {
	switch t {
	case InvestmentTypePreSeed, InvestmentTypeSeed, InvestmentTypeSeriesA,
		InvestmentTypeSeriesB, InvestmentTypeAngel, InvestmentTypeOther:
		return true
	}
	return false
}

type Income struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	WorkspaceID uint64         `gorm:"not null;index" json:"workspace_id"`
	Title       string         `gorm:"not null" json:"title"`
	Amount      float64        `gorm:"not null" json:"amount"`
	Category    IncomeCategory `gorm:"type:varchar(20);not null;default:'revenue'" json:"category"`
	Date        time.Time      `gorm:"type:date;not null" json:"date"`
	Notes       string         `gorm:"type:text" json:"notes"`
	CreatedBy   uint64         `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
}

type Expense struct {
	ID          uint64          `gorm:"primarykey" json:"id"`
	WorkspaceID uint64          `gorm:"not null;index" json:"workspace_id"`
	Title       string          `gorm:"not null" json:"title"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Category    ExpenseCategory `gorm:"type:varchar(20);not null;default:'operations'" json:"category"`
	Date        time.Time       `gorm:"type:date;not null" json:"date"`
	Notes       string          `gorm:"type:text" json:"notes"`
	CreatedBy   uint64          `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Investment struct {
	ID               uint64         `gorm:"primarykey" json:"id"`
	WorkspaceID      uint64         `gorm:"not null;index" json:"workspace_id"`
	InvestorName     string         `gorm:"type:varchar(255);not null" json:"investor_name"`
	Amount           float64        `gorm:"not null" json:"amount"`
	EquityPercentage float64        `gorm:"not null;default:0" json:"equity_percentage"`
	InvestmentType   InvestmentType `gorm:"type:varchar(20);not null;default:'seed'" json:"investment_type"`
	Date             time.Time      `gorm:"type:date;not null" json:"date"`
	Notes            string         `gorm:"type:text" json:"notes"`
	CreatedBy        uint64         `gorm:"not null" json:"created_by"`
	CreatedAt        time.Time      `json:"created_at"`
}

// MonthKey truncates a financial record date to its calendar month bucket.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
