package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/velora-hq/velora-api/internal/constants"
	"github.com/velora-hq/velora-api/internal/models"
	"github.com/velora-hq/velora-api/internal/repository"
	"github.com/velora-hq/velora-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type financeTestEnv struct {
	db        *gorm.DB
	handler   *FinanceHandler
	workspace models.Workspace
}

func setupFinanceTestEnv(t *testing.T) financeTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.Membership{},
		&models.Income{},
		&models.Expense{},
		&models.Investment{},
	)
	require.NoError(t, err)

	workspace := models.Workspace{
		Name:       "Velora Labs",
		FounderID:  1,
		InviteCode: "FINTEST1",
	}
	require.NoError(t, db.Create(&workspace).Error)

	financeRepo := repository.NewFinanceRepository(db)
	financeService := services.NewFinanceService(financeRepo)
	handler := NewFinanceHandler(financeService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return financeTestEnv{
		db:        db,
		handler:   handler,
		workspace: workspace,
	}
}

// financeContext builds a request context as the workspace middleware
// would leave it for a caller with the given role.
func (env financeTestEnv) financeContext(t *testing.T, role models.MembershipRole) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyWorkspace, env.workspace)
	c.Set(constants.ContextKeyMembership, models.Membership{
		WorkspaceID: env.workspace.ID,
		UserID:      7,
		Role:        role,
	})
	c.Set(constants.ContextKeyUserID, uint64(7))
	return c, w
}

func investmentRequest(t *testing.T) *http.Request {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{
		"investor_name": "Acme Capital",
		"amount":        50000,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/finance/investments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestFinanceHandler_AddInvestment_FounderAllowed(t *testing.T) {
	env := setupFinanceTestEnv(t)

	c, w := env.financeContext(t, models.RoleFounder)
	c.Request = investmentRequest(t)

	env.handler.AddInvestment(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response models.Investment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Acme Capital", response.InvestorName)
}

func TestFinanceHandler_AddInvestment_ManagerForbidden(t *testing.T) {
	env := setupFinanceTestEnv(t)

	c, w := env.financeContext(t, models.RoleManager)
	c.Request = investmentRequest(t)

	env.handler.AddInvestment(c)

	require.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Investment{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestFinanceHandler_DeleteInvestment_ManagerForbidden(t *testing.T) {
	env := setupFinanceTestEnv(t)

	investment := models.Investment{
		WorkspaceID:  env.workspace.ID,
		InvestorName: "Acme Capital",
		Amount:       50000,
		CreatedBy:    1,
	}
	require.NoError(t, env.db.Create(&investment).Error)

	c, w := env.financeContext(t, models.RoleManager)
	c.Params = gin.Params{{Key: "record_id", Value: "1"}}

	env.handler.DeleteInvestment(c)

	require.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Investment{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestFinanceHandler_FinanceSummary_MemberAllowed(t *testing.T) {
	env := setupFinanceTestEnv(t)

	require.NoError(t, env.db.Create(&models.Income{
		WorkspaceID: env.workspace.ID,
		Title:       "Pilot contract",
		Amount:      2000,
		Category:    models.IncomeCategoryRevenue,
		CreatedBy:   1,
	}).Error)
	require.NoError(t, env.db.Create(&models.Expense{
		WorkspaceID: env.workspace.ID,
		Title:       "Hosting",
		Amount:      500,
		Category:    models.ExpenseCategoryInfrastructure,
		CreatedBy:   1,
	}).Error)

	c, w := env.financeContext(t, models.RoleMember)

	env.handler.FinanceSummary(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.EqualValues(t, 1500, response["net_balance"])
}

func TestFinanceHandler_FinanceSummary_InvestorForbidden(t *testing.T) {
	env := setupFinanceTestEnv(t)

	c, w := env.financeContext(t, models.RoleInvestor)

	env.handler.FinanceSummary(c)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestFinanceHandler_ListIncome_MemberAllowed(t *testing.T) {
	env := setupFinanceTestEnv(t)

	require.NoError(t, env.db.Create(&models.Income{
		WorkspaceID: env.workspace.ID,
		Title:       "Pilot contract",
		Amount:      2000,
		Category:    models.IncomeCategoryRevenue,
		CreatedBy:   1,
	}).Error)

	c, w := env.financeContext(t, models.RoleMember)

	env.handler.ListIncome(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Income []models.Income `json:"income"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Income, 1)
}

func TestFinanceHandler_ListIncome_InvestorForbidden(t *testing.T) {
	env := setupFinanceTestEnv(t)

	c, w := env.financeContext(t, models.RoleInvestor)

	env.handler.ListIncome(c)

	require.Equal(t, http.StatusForbidden, w.Code)
}
