package analytics

import (
	"math"
	"sort"

	"github.com/velora-hq/velora-api/internal/models"
)

// FinanceSummary is the internal financial roll-up.
type FinanceSummary struct {
	TotalIncome        float64            `json:"total_income"`
	TotalExpenses      float64            `json:"total_expenses"`
	TotalInvestments   float64            `json:"total_investments"`
	TotalEquityGiven   float64            `json:"total_equity_given"`
	NetBalance         float64            `json:"net_balance"`
	RunwayMonths       float64            `json:"runway_months"`
	MonthlyIncome      map[string]float64 `json:"monthly_income"`
	MonthlyExpenses    map[string]float64 `json:"monthly_expenses"`
	IncomeByCategory   map[string]float64 `json:"income_by_category"`
	ExpensesByCategory map[string]float64 `json:"expenses_by_category"`
	InvestmentCount    int                `json:"investment_count"`
}

// ComputeFinanceSummary rolls income, expenses and investments into the
// finance summary document.
//
// The runway figure here divides the balance by total expenses over
// distinct expense months, floored at 1. The investor view computes burn
// differently (mean of monthly buckets); the two reduce to the same value
// only when a single month carries expenses. Both formulas are kept as
// they are: unifying them would silently change observable output.
func ComputeFinanceSummary(income []models.Income, expenses []models.Expense, investments []models.Investment) FinanceSummary {
	var totalIncome, totalExpenses, totalInvestments, totalEquity float64

	monthlyIncome := make(map[string]float64)
	incomeByCategory := make(map[string]float64)
	for _, in := range income {
		totalIncome += in.Amount
		monthlyIncome[models.MonthKey(in.Date)] += in.Amount
		incomeByCategory[string(in.Category)] += in.Amount
	}

	monthlyExpenses := make(map[string]float64)
	expensesByCategory := make(map[string]float64)
	for _, ex := range expenses {
		totalExpenses += ex.Amount
		monthlyExpenses[models.MonthKey(ex.Date)] += ex.Amount
		expensesByCategory[string(ex.Category)] += ex.Amount
	}

	for _, inv := range investments {
		totalInvestments += inv.Amount
		totalEquity += inv.EquityPercentage
	}

	netBalance := totalIncome + totalInvestments - totalExpenses

	runway := 0.0
	if totalExpenses > 0 {
		avgMonthlyExpense := totalExpenses / math.Max(float64(len(monthlyExpenses)), 1)
		runway = round1(netBalance / math.Max(avgMonthlyExpense, 1))
	}

	return FinanceSummary{
		TotalIncome:        totalIncome,
		TotalExpenses:      totalExpenses,
		TotalInvestments:   totalInvestments,
		TotalEquityGiven:   totalEquity,
		NetBalance:         netBalance,
		RunwayMonths:       runway,
		MonthlyIncome:      monthlyIncome,
		MonthlyExpenses:    monthlyExpenses,
		IncomeByCategory:   incomeByCategory,
		ExpensesByCategory: expensesByCategory,
		InvestmentCount:    len(investments),
	}
}

// InvestorWorkspace is the workspace profile slice investors may see.
type InvestorWorkspace struct {
	Name        string `json:"name"`
	Industry    string `json:"industry"`
	Stage       string `json:"stage"`
	Description string `json:"description"`
}

// InvestorFinancials is the aggregate-only financial slice of the
// investor view. Income and expense line items are never included.
type InvestorFinancials struct {
	TotalIncome      float64            `json:"total_income"`
	TotalExpenses    float64            `json:"total_expenses"`
	TotalInvestments float64            `json:"total_investments"`
	CurrentBalance   float64            `json:"current_balance"`
	AvgMonthlyBurn   float64            `json:"avg_monthly_burn"`
	RunwayMonths     float64            `json:"runway_months"`
	ExpensesByMonth  map[string]float64 `json:"expenses_by_month"`
}

// InvestorMetrics is the traction slice of the investor view.
type InvestorMetrics struct {
	TeamSize            int `json:"team_size"`
	MilestonesCompleted int `json:"milestones_completed"`
	MilestonesTotal     int `json:"milestones_total"`
	TasksCompleted      int `json:"tasks_completed"`
	TasksTotal          int `json:"tasks_total"`
}

// InvestorView is the composite exposed to investor-role members.
type InvestorView struct {
	Workspace   InvestorWorkspace   `json:"startup"`
	Financials  InvestorFinancials  `json:"financials"`
	Metrics     InvestorMetrics     `json:"metrics"`
	Investments []models.Investment `json:"investments"`
}

// ComputeInvestorView builds the investor composite. Burn here is the
// mean over months that actually recorded expenses, a stricter method
// than the finance summary's; expense buckets are limited to the last six
// months, ascending by month key.
func ComputeInvestorView(
	workspace models.Workspace,
	income []models.Income,
	expenses []models.Expense,
	investments []models.Investment,
	members []models.Membership,
	milestones []models.Milestone,
	tasks []models.Task,
) InvestorView {
	var totalIncome, totalExpenses, totalInvestments float64
	for _, in := range income {
		totalIncome += in.Amount
	}

	monthlyExpenses := make(map[string]float64)
	for _, ex := range expenses {
		totalExpenses += ex.Amount
		monthlyExpenses[models.MonthKey(ex.Date)] += ex.Amount
	}

	for _, inv := range investments {
		totalInvestments += inv.Amount
	}

	avgMonthlyBurn := 0.0
	if len(monthlyExpenses) > 0 {
		avgMonthlyBurn = totalExpenses / float64(len(monthlyExpenses))
	}

	balance := totalIncome + totalInvestments - totalExpenses
	runway := 0.0
	if avgMonthlyBurn > 0 {
		runway = round1(balance / avgMonthlyBurn)
	}

	completedMilestones := 0
	for _, m := range milestones {
		if m.Status == models.MilestoneStatusCompleted {
			completedMilestones++
		}
	}
	completedTasks := 0
	for _, t := range tasks {
		if t.Status == models.TaskStatusDone {
			completedTasks++
		}
	}

	if investments == nil {
		investments = []models.Investment{}
	}

	return InvestorView{
		Workspace: InvestorWorkspace{
			Name:        workspace.Name,
			Industry:    workspace.Industry,
			Stage:       workspace.Stage,
			Description: workspace.Description,
		},
		Financials: InvestorFinancials{
			TotalIncome:      totalIncome,
			TotalExpenses:    totalExpenses,
			TotalInvestments: totalInvestments,
			CurrentBalance:   balance,
			AvgMonthlyBurn:   round2(avgMonthlyBurn),
			RunwayMonths:     runway,
			ExpensesByMonth:  lastMonths(monthlyExpenses, 6),
		},
		Metrics: InvestorMetrics{
			TeamSize:            len(members),
			MilestonesCompleted: completedMilestones,
			MilestonesTotal:     len(milestones),
			TasksCompleted:      completedTasks,
			TasksTotal:          len(tasks),
		},
		Investments: investments,
	}
}

// lastMonths keeps the n most recent month buckets.
func lastMonths(buckets map[string]float64, n int) map[string]float64 {
	if len(buckets) <= n {
		return buckets
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	trimmed := make(map[string]float64, n)
	for _, k := range keys[len(keys)-n:] {
		trimmed[k] = buckets[k]
	}
	return trimmed
}
