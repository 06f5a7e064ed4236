package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/velora-hq/velora-api/internal/config"
	"github.com/velora-hq/velora-api/internal/constants"
	"github.com/velora-hq/velora-api/internal/database"
	"github.com/velora-hq/velora-api/internal/handlers"
	"github.com/velora-hq/velora-api/internal/middleware"
	"github.com/velora-hq/velora-api/internal/repository"
	"github.com/velora-hq/velora-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	workspaceRepo := repository.NewWorkspaceRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	milestoneRepo := repository.NewMilestoneRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	financeRepo := repository.NewFinanceRepository(db)
	inviteRepo := repository.NewInvestorInviteRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	workspaceService := services.NewWorkspaceService(workspaceRepo, subRepo)
	taskService := services.NewTaskService(taskRepo, milestoneRepo, workspaceRepo)
	milestoneService := services.NewMilestoneService(milestoneRepo, taskRepo)
	feedbackService := services.NewFeedbackService(feedbackRepo)
	financeService := services.NewFinanceService(financeRepo)
	investorService := services.NewInvestorService(inviteRepo, workspaceRepo, financeRepo, taskRepo, milestoneRepo, userRepo)
	analyticsService := services.NewAnalyticsService(taskRepo, milestoneRepo, feedbackRepo, workspaceRepo)
	aiService := services.NewAIService(cfg.OpenAIAPIKey)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService)
	taskHandler := handlers.NewTaskHandler(taskService)
	milestoneHandler := handlers.NewMilestoneHandler(milestoneService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	financeHandler := handlers.NewFinanceHandler(financeService)
	investorHandler := handlers.NewInvestorHandler(investorService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, financeService, aiService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Velora API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.PUT("/profile", middleware.RequireAuth(), authHandler.UpdateProfile)
		}

		// Workspace routes (protected)
		workspaces := api.Group("/workspaces")
		workspaces.Use(middleware.RequireAuth())
		{
			workspaces.POST("", workspaceHandler.CreateWorkspace)
			workspaces.GET("", workspaceHandler.ListWorkspaces)
			workspaces.POST("/join", workspaceHandler.JoinWorkspace)
			workspaces.POST("/join-investor", investorHandler.AcceptInvite)

			scoped := workspaces.Group("/:id")
			scoped.Use(middleware.RequireWorkspaceAccess())
			{
				scoped.GET("", workspaceHandler.GetWorkspace)
				scoped.PUT("", workspaceHandler.UpdateWorkspace)
				scoped.DELETE("", middleware.RequireFounder(), workspaceHandler.DeleteWorkspace)
				scoped.POST("/regenerate-code", middleware.RequireFounder(), workspaceHandler.RegenerateInviteCode)

				scoped.GET("/members", workspaceHandler.ListMembers)
				scoped.PUT("/members/:user_id/role", middleware.RequireFounder(), workspaceHandler.ChangeMemberRole)
				scoped.DELETE("/members/:user_id", middleware.RequireFounder(), workspaceHandler.RemoveMember)

				scoped.GET("/subscription", workspaceHandler.GetSubscription)
				scoped.PUT("/subscription", middleware.RequireFounder(), workspaceHandler.UpdateSubscription)

				scoped.POST("/tasks", taskHandler.CreateTask)
				scoped.GET("/tasks", taskHandler.ListTasks)

				scoped.POST("/milestones", milestoneHandler.CreateMilestone)
				scoped.GET("/milestones", milestoneHandler.ListMilestones)

				scoped.POST("/feedback", feedbackHandler.CreateFeedback)
				scoped.GET("/feedback", feedbackHandler.ListFeedback)

				finance := scoped.Group("/finance")
				{
					finance.POST("/income", financeHandler.AddIncome)
					finance.GET("/income", financeHandler.ListIncome)
					finance.DELETE("/income/:record_id", financeHandler.DeleteIncome)
					finance.POST("/expenses", financeHandler.AddExpense)
					finance.GET("/expenses", financeHandler.ListExpenses)
					finance.DELETE("/expenses/:record_id", financeHandler.DeleteExpense)
					finance.POST("/investments", financeHandler.AddInvestment)
					finance.GET("/investments", financeHandler.ListInvestments)
					finance.DELETE("/investments/:record_id", financeHandler.DeleteInvestment)
					finance.GET("/summary", financeHandler.FinanceSummary)
				}

				scoped.POST("/investors/invite", middleware.RequireFounder(), investorHandler.InviteInvestor)
				scoped.GET("/investors", investorHandler.ListInvestors)
				scoped.DELETE("/investors/:user_id", middleware.RequireFounder(), investorHandler.RemoveInvestor)
				scoped.GET("/investor-view", investorHandler.InvestorView)

				scoped.GET("/analytics/summary", analyticsHandler.WorkspaceSummary)
				scoped.POST("/ai/insights", analyticsHandler.GenerateInsight)
				scoped.POST("/ai/pitch", analyticsHandler.GeneratePitch)
			}
		}

		// Task routes (protected, task-scoped)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("/:id", middleware.RequireTaskAccess(), taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.RequireTaskAccess(), taskHandler.UpdateTask)
			tasks.PATCH("/:id/status", middleware.RequireTaskAccess(), taskHandler.UpdateTaskStatus)
			tasks.DELETE("/:id", middleware.RequireTaskAccess(), taskHandler.DeleteTask)
		}

		// Milestone routes (protected, milestone-scoped)
		milestones := api.Group("/milestones")
		milestones.Use(middleware.RequireAuth())
		{
			milestones.PATCH("/:id", middleware.RequireMilestoneAccess(), milestoneHandler.UpdateMilestone)
			milestones.DELETE("/:id", middleware.RequireMilestoneAccess(), milestoneHandler.DeleteMilestone)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
