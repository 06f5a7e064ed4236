package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/velora-hq/velora-api/internal/models"
	"github.com/velora-hq/velora-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type serviceTestEnv struct {
	db *gorm.DB

	userRepo      repository.UserRepository
	workspaceRepo repository.WorkspaceRepository
	taskRepo      repository.TaskRepository
	milestoneRepo repository.MilestoneRepository
	feedbackRepo  repository.FeedbackRepository
	financeRepo   repository.FinanceRepository
	inviteRepo    repository.InvestorInviteRepository
	subRepo       repository.SubscriptionRepository

	authService      *AuthService
	workspaceService *WorkspaceService
	taskService      *TaskService
	milestoneService *MilestoneService
	feedbackService  *FeedbackService
	financeService   *FinanceService
	investorService  *InvestorService
	analyticsService *AnalyticsService
}

func setupServiceEnv(t *testing.T) *serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.Membership{},
		&models.Task{},
		&models.Milestone{},
		&models.Feedback{},
		&models.Income{},
		&models.Expense{},
		&models.Investment{},
		&models.InvestorInvite{},
		&models.Subscription{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	env := &serviceTestEnv{
		db:            db,
		userRepo:      repository.NewUserRepository(db),
		workspaceRepo: repository.NewWorkspaceRepository(db),
		taskRepo:      repository.NewTaskRepository(db),
		milestoneRepo: repository.NewMilestoneRepository(db),
		feedbackRepo:  repository.NewFeedbackRepository(db),
		financeRepo:   repository.NewFinanceRepository(db),
		inviteRepo:    repository.NewInvestorInviteRepository(db),
		subRepo:       repository.NewSubscriptionRepository(db),
	}

	env.authService = NewAuthService(env.userRepo)
	env.workspaceService = NewWorkspaceService(env.workspaceRepo, env.subRepo)
	env.taskService = NewTaskService(env.taskRepo, env.milestoneRepo, env.workspaceRepo)
	env.milestoneService = NewMilestoneService(env.milestoneRepo, env.taskRepo)
	env.feedbackService = NewFeedbackService(env.feedbackRepo)
	env.financeService = NewFinanceService(env.financeRepo)
	env.investorService = NewInvestorService(env.inviteRepo, env.workspaceRepo, env.financeRepo, env.taskRepo, env.milestoneRepo, env.userRepo)
	env.analyticsService = NewAnalyticsService(env.taskRepo, env.milestoneRepo, env.feedbackRepo, env.workspaceRepo)

	return env
}

// createUser seeds a user and returns it.
func (env *serviceTestEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := env.authService.Signup(SignupInput{
		Email:    email,
		Password: "supersecret",
	})
	require.NoError(t, err)
	return user
}

// createWorkspace seeds a workspace founded by the given user.
func (env *serviceTestEnv) createWorkspace(t *testing.T, founderID uint64, name string) *models.Workspace {
	t.Helper()
	workspace, err := env.workspaceService.CreateWorkspace(CreateWorkspaceInput{
		Name:      name,
		FounderID: founderID,
	})
	require.NoError(t, err)
	return workspace
}

// joinMembers signs up n users and joins them to the workspace via its
// invite code.
func (env *serviceTestEnv) joinMembers(t *testing.T, workspace *models.Workspace, n int) []*models.User {
	t.Helper()
	users := make([]*models.User, n)
	for i := 0; i < n; i++ {
		users[i] = env.createUser(t, fmt.Sprintf("member%d-%s@example.com", i, workspace.InviteCode))
		_, err := env.workspaceService.JoinByInviteCode(users[i].ID, workspace.InviteCode)
		require.NoError(t, err)
	}
	return users
}
