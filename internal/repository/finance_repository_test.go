package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (FinanceRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewFinanceRepository(db), mock
}

func TestFinanceRepository_ListExpenses_ScopesAndOrders(t *testing.T) {
	repo, mock := setupMockDB(t)

	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "workspace_id", "title", "amount", "category", "date", "notes", "created_by", "created_at"}).
		AddRow(2, 7, "payroll", 4000.0, "salary", date, "", 1, date).
		AddRow(1, 7, "hosting", 300.0, "operations", date.AddDate(0, -1, 0), "", 1, date)

	mock.ExpectQuery("SELECT \\* FROM `expenses` WHERE workspace_id = \\? ORDER BY date DESC").
		WithArgs(7).
		WillReturnRows(rows)

	expenses, err := repo.ListExpenses(7)
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	require.Equal(t, "payroll", expenses[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFinanceRepository_DeleteIncome_ScopedToWorkspace(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectExec("DELETE FROM `incomes` WHERE id = \\? AND workspace_id = \\?").
		WithArgs(3, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteIncome(7, 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFinanceRepository_DeleteIncome_NoMatch(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectExec("DELETE FROM `incomes` WHERE id = \\? AND workspace_id = \\?").
		WithArgs(3, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteIncome(99, 3)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
