package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/velora-hq/velora-api/internal/authz"
	apierrors "github.com/velora-hq/velora-api/internal/errors"
	"github.com/velora-hq/velora-api/internal/middleware"
	"github.com/velora-hq/velora-api/internal/models"
	"github.com/velora-hq/velora-api/internal/services"
)

// FinanceHandler coordinates the income, expense and investment ledger
// HTTP handlers. Reads are open to every role but investor; income and
// expense writes require founder or manager; investment writes are
// founder only.
type FinanceHandler struct {
	financeService *services.FinanceService
}

// NewFinanceHandler creates a new FinanceHandler.
func NewFinanceHandler(financeService *services.FinanceService) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
	}
}

// requireLedgerRead authorizes the caller for ledger and summary reads.
func requireLedgerRead(c *gin.Context) bool {
	member, _ := middleware.GetMembership(c)
	if err := authz.Authorize(&member, authz.ActionReadLedger); err != nil {
		apierrors.Forbidden(c, "Investors cannot read the itemized financial ledgers")
		return false
	}
	return true
}

// requireLedgerAccess authorizes the caller for income and expense writes.
func requireLedgerAccess(c *gin.Context) bool {
	member, _ := middleware.GetMembership(c)
	if err := authz.Authorize(&member, authz.ActionManageLedger); err != nil {
		apierrors.Forbidden(c, "Only founders and managers can modify the financial ledgers")
		return false
	}
	return true
}

// requireInvestmentAccess authorizes the caller for investment writes.
func requireInvestmentAccess(c *gin.Context) bool {
	member, _ := middleware.GetMembership(c)
	if err := authz.Authorize(&member, authz.ActionManageWorkspace); err != nil {
		apierrors.Forbidden(c, "Only the founder can manage investment records")
		return false
	}
	return true
}

// AddIncome records an income entry.
func (h *FinanceHandler) AddIncome(c *gin.Context) {
	if !requireLedgerAccess(c) {
		return
	}
	workspace, _ := middleware.GetWorkspace(c)
	userID, _ := middleware.GetUserID(c)

	type AddIncomeRequest struct {
		Title    string                `json:"title" binding:"required"`
		Amount   float64               `json:"amount"`
		Category models.IncomeCategory `json:"category"`
		Date     *time.Time            `json:"date"`
		Notes    string                `json:"notes"`
	}

	var req AddIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	income, err := h.financeService.AddIncome(services.AddIncomeInput{
		WorkspaceID: workspace.ID,
		Title:       req.Title,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
		Notes:       req.Notes,
		CreatedBy:   userID,
	})
	if err != nil {
		respondFinanceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, income)
}

// ListIncome returns all income entries.
func (h *FinanceHandler) ListIncome(c *gin.Context) {
	if !requireLedgerRead(c) {
		return
	}
	workspace, _ := middleware.GetWorkspace(c)

	income, err := h.financeService.ListIncome(workspace.ID)
	if err != nil {
		respondFinanceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"income": income,
	})
}

// DeleteIncome removes an income entry.
func (h *FinanceHandler) DeleteIncome(c *gin.Context) {
	if !requireLedgerAccess(c) {
		return
	}
	workspace, _ := middleware.GetWorkspace(c)

	recordID, ok := parseIDParam(c, "record_id")
	if !ok {
		return
	}

	if err := h.financeService.DeleteIncome(workspace.ID, recordID); err != nil {
		respondFinanceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Income entry deleted successfully",
	})
}

// AddExpense records an expense entry.
func (h *FinanceHandler) AddExpense(c *gin.Context) {
	if !requireLedgerAccess(c) {
		return
	}
	workspace, _ := middleware.GetWorkspace(c)
	userID, _ := middleware.GetUserID(c)

	type AddExpenseRequest struct {
		Title    string                 `json:"title" binding:"required"`
		Amount   float64                `json:"amount"`
		Category models.ExpenseCategory `json:"category"`
		Date     *time.Time             `json:"date"`
		Notes    string                 `json:"notes"`
	}

	var req AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	expense, err := h.financeService.AddExpense(services.AddExpenseInput{
		WorkspaceID: workspace.ID,
		Title:       req.Title,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
		Notes:       req.Notes,
		CreatedBy:   userID,
	})
	if err != nil {
		respondFinanceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// ListExpenses returns all expense entries.
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	if !requireLedgerRead(c) {
		return
	}
	workspace, _ := middleware.GetWorkspace(c)

	expenses, err := h.financeService.ListExpenses(workspace.ID)
	if err != nil {
		respondFinanceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses": expenses,
	})
}

// DeleteExpense removes an expense entry.
func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	if !requireLedgerAccess(c) {
		return
	}
	workspace, _ := middleware.GetWorkspace(c)

	recordID, ok := parseIDParam(c, "record_id")
	if !ok {
		return
	}

	if err := h.financeService.DeleteExpense(workspace.ID, recordID); err != nil {
		respondFinanceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Expense entry deleted successfully",
	})
}

// AddInvestment records an investment entry.
func (h *FinanceHandler) AddInvestment(c *gin.Context) {
	if !requireInvestmentAccess(c) {
		return
	}
	workspace, _ := middleware.GetWorkspace(c)
	userID, _ := middleware.GetUserID(c)

	type AddInvestmentRequest struct {
		InvestorName     string                `json:"investor_name" binding:"required"`
		Amount           float64               `json:"amount"`
		EquityPercentage float64               `json:"equity_percentage"`
		InvestmentType   models.InvestmentType `json:"investment_type"`
		Date             *time.Time            `json:"date"`
		Notes            string                `json:"notes"`
	}

	var req AddInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	investment, err := h.financeService.AddInvestment(services.AddInvestmentInput{
		WorkspaceID:      workspace.ID,
		InvestorName:     req.InvestorName,
		Amount:           req.Amount,
		EquityPercentage: req.EquityPercentage,
		InvestmentType:   req.InvestmentType,
		Date:             req.Date,
		Notes:            req.Notes,
		CreatedBy:        userID,
	})
	if err != nil {
		respondFinanceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, investment)
}

// ListInvestments returns all investment entries.
func (h *FinanceHandler) ListInvestments(c *gin.Context) {
	if !requireLedgerRead(c) {
		return
	}
	workspace, _ := middleware.GetWorkspace(c)

	investments, err := h.financeService.ListInvestments(workspace.ID)
	if err != nil {
		respondFinanceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"investments": investments,
	})
}

// DeleteInvestment removes an investment entry.
func (h *FinanceHandler) DeleteInvestment(c *gin.Context) {
	if !requireInvestmentAccess(c) {
		return
	}
	workspace, _ := middleware.GetWorkspace(c)

	recordID, ok := parseIDParam(c, "record_id")
	if !ok {
		return
	}

	if err := h.financeService.DeleteInvestment(workspace.ID, recordID); err != nil {
		respondFinanceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Investment entry deleted successfully",
	})
}

// FinanceSummary returns the workspace's financial summary.
func (h *FinanceHandler) FinanceSummary(c *gin.Context) {
	if !requireLedgerRead(c) {
		return
	}
	workspace, _ := middleware.GetWorkspace(c)

	summary, err := h.financeService.FinanceSummary(workspace.ID)
	if err != nil {
		respondFinanceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func respondFinanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrNegativeAmount),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrInvalidInvestmentType),
		errors.Is(err, services.ErrInvalidEquity),
		errors.Is(err, services.ErrInvestorNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrRecordNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
