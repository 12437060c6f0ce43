// Package routes defines the API routing configuration. Role gating lives
// here, in one place, instead of being re-checked inside every handler.
package routes

import (
	"dashen/internal/config"
	"dashen/internal/handlers"
	"dashen/internal/metrics"
	"dashen/internal/middleware"
	"dashen/internal/models"
	"dashen/internal/repositories"
	"dashen/internal/services/analysis"
	"dashen/internal/services/auth"
	"dashen/internal/services/intake"
	"dashen/internal/services/notification"
	"dashen/internal/services/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// SetupRoutes wires repositories, services and handlers and registers all
// application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	customerRepo := repositories.NewCustomerRepository(db, repositories.CacheService)
	decisionRepo := repositories.NewDecisionRepository(db)
	analysisRepo := repositories.NewLoanAnalysisRepository(db)

	// Services
	authService := auth.NewService(userRepo)
	intakeService := intake.NewService(db, customerRepo, repositories.CacheService)
	analysisService := analysis.NewService(analysisRepo, customerRepo)

	var notifier workflow.Notifier = notification.LogOnly{}
	if config.GetEnv("SMTP_USERNAME", "") != "" {
		notifier = notification.NewService(config.LoadSMTP())
	}
	collector := metrics.NewCollector(prometheus.DefaultRegisterer)
	workflowService := workflow.NewService(db, customerRepo, decisionRepo,
		repositories.CacheService, collector, notifier)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	customerHandler := handlers.NewCustomerHandler(intakeService)
	queueHandler := handlers.NewQueueHandler(customerRepo)
	analysisHandler := handlers.NewAnalysisHandler(analysisService)
	decisionHandler := handlers.NewDecisionHandler(workflowService)
	adminHandler := handlers.NewAdminHandler(userRepo, customerRepo)

	// Public endpoints
	app.Get("/health", handlers.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)

	// Everything below requires a valid session.
	authMiddleware := middleware.NewAuthMiddleware(authService)
	protected := api.Use(authMiddleware.Handler)

	protected.Post("/logout", authHandler.Logout)
	protected.Post("/change-password", authHandler.ChangePassword)
	protected.Get("/statuses", queueHandler.Statuses)
	protected.Get("/queues", queueHandler.Queues)
	protected.Get("/queue/:status", queueHandler.List)

	setupCustomerRoutes(protected, customerHandler)
	setupAnalysisRoutes(protected, analysisHandler)
	setupDecisionRoutes(protected, decisionHandler)
	setupAdminRoutes(protected, adminHandler)
}

// setupCustomerRoutes registers relationship manager intake routes.
func setupCustomerRoutes(router fiber.Router, h *handlers.CustomerHandler) {
	customers := router.Group("/customers",
		middleware.RequireRoles(models.RoleRelationshipManager))

	customers.Post("/", h.Create)
	customers.Get("/", h.List)
	customers.Get("/:id", h.Get)
	customers.Put("/:id", h.Update)
	customers.Post("/:id/submit", h.Submit)
}

// setupAnalysisRoutes registers the LoanAnalysis routes. Analysts and
// supervisors share the record; only supervisors score it.
func setupAnalysisRoutes(router fiber.Router, h *handlers.AnalysisHandler) {
	la := router.Group("/loan-analysis")

	la.Get("/:ref", middleware.RequireRoles(
		models.RoleCreditAnalyst, models.RoleSupervisor,
		models.RoleCommitteMember, models.RoleApprovalCommitte), h.Get)
	la.Post("/review", middleware.RequireRoles(models.RoleSupervisor), h.Review)
	la.Post("/:ref", middleware.RequireRoles(
		models.RoleCreditAnalyst, models.RoleSupervisor), h.Upsert)
}

// setupDecisionRoutes registers the transition and decision-log routes.
func setupDecisionRoutes(router fiber.Router, h *handlers.DecisionHandler) {
	reviewers := middleware.RequireRoles(
		models.RoleCreditAnalyst, models.RoleSupervisor,
		models.RoleCommitteMember, models.RoleApprovalCommitte,
		models.RoleRelationshipManager)

	router.Post("/decisions", reviewers, h.Transition)
	router.Get("/decisions/:ref/history", reviewers, h.History)
	router.Get("/decision/:ref", reviewers, h.FinalDecision)

	router.Post("/members",
		middleware.RequireRoles(models.RoleCommitteMember), h.MemberVote)
	router.Get("/member/:ref",
		middleware.RequireRoles(models.RoleCommitteMember), h.OwnVote)
	router.Get("/view/:ref",
		middleware.RequireRoles(models.RoleApprovalCommitte), h.MemberVotes)
}

// setupAdminRoutes registers back-office listings.
func setupAdminRoutes(router fiber.Router, h *handlers.AdminHandler) {
	admin := router.Group("/admin", middleware.RequireRoles(models.RoleAdmin))

	admin.Get("/users", h.ListUsers)
	admin.Get("/customers", h.ListCustomers)
}
