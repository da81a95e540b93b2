package routes

import (
	"minibank/internal/adapters/http/handlers"
	"minibank/internal/adapters/http/middleware"
	"minibank/internal/config"
	"minibank/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// Deps bundles the wired services the HTTP layer needs
type Deps struct {
	Sessions     *services.SessionService
	Auth         *services.AuthService
	Accounts     *services.AccountService
	Transactions *services.TransactionService
	Signups      *services.SignupService
	Loans        *services.LoanService
	Appointments *services.AppointmentService
	Feedback     *services.FeedbackService
	Currency     *services.CurrencyService
	Backup       *services.BackupService
	DataDir      string
}

// Setup configures all routes for the application
func Setup(app *fiber.App, cfg *config.Config, deps *Deps) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(deps.DataDir)
	authHandler := handlers.NewAuthHandler(deps.Auth, cfg)
	signupHandler := handlers.NewSignupHandler(deps.Signups)
	accountHandler := handlers.NewAccountHandler(deps.Accounts)
	transactionHandler := handlers.NewTransactionHandler(deps.Transactions, deps.Accounts)
	loanHandler := handlers.NewLoanHandler(deps.Loans)
	appointmentHandler := handlers.NewAppointmentHandler(deps.Appointments)
	feedbackHandler := handlers.NewFeedbackHandler(deps.Feedback)
	currencyHandler := handlers.NewCurrencyHandler(deps.Currency, deps.Accounts)
	adminHandler := handlers.NewAdminHandler(deps.Auth, deps.Backup)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	auth := middleware.AuthMiddleware(cfg, deps.Sessions)
	adminOnly := middleware.AdminOnly()

	// Auth routes (public, rate limited)
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Post("/logout", auth, authHandler.Logout)
	authRoutes.Get("/me", auth, authHandler.Me)
	authRoutes.Post("/change-password", auth, authHandler.ChangePassword)

	// Signup routes
	signupRoutes := apiV1.Group("/signup")
	signupRoutes.Post("/", middleware.AuthRateLimiter(), signupHandler.SubmitCustomer)
	signupRoutes.Get("/status", signupHandler.Status)
	signupRoutes.Post("/admins", auth, adminOnly, signupHandler.SubmitAdmin)
	signupRoutes.Get("/:role/next", auth, adminOnly, signupHandler.Next)
	signupRoutes.Get("/:role/pending", auth, adminOnly, signupHandler.Pending)
	signupRoutes.Post("/:role/decide", auth, adminOnly, signupHandler.Decide)

	// Account routes (authenticated customer)
	accountRoutes := apiV1.Group("/account")
	accountRoutes.Use(auth)
	accountRoutes.Get("/", accountHandler.My)
	accountRoutes.Post("/deposit", accountHandler.Deposit)
	accountRoutes.Post("/withdraw", accountHandler.Withdraw)
	accountRoutes.Post("/transfer", accountHandler.Transfer)
	accountRoutes.Patch("/info", accountHandler.UpdateInfo)
	accountRoutes.Get("/balance/converted", currencyHandler.MyBalance)
	accountRoutes.Get("/transactions", transactionHandler.History)
	accountRoutes.Get("/statement", transactionHandler.Statement)

	// Loan routes
	loanRoutes := apiV1.Group("/loans")
	loanRoutes.Use(auth)
	loanRoutes.Post("/", loanHandler.Submit)
	loanRoutes.Get("/mine", loanHandler.Mine)
	loanRoutes.Get("/pending", adminOnly, loanHandler.Pending)
	loanRoutes.Get("/", adminOnly, loanHandler.All)
	loanRoutes.Post("/decide", adminOnly, loanHandler.Decide)
	loanRoutes.Get("/stats", adminOnly, loanHandler.Stats)

	// Appointment routes
	appointmentRoutes := apiV1.Group("/appointments")
	appointmentRoutes.Use(auth)
	appointmentRoutes.Post("/", appointmentHandler.Book)
	appointmentRoutes.Get("/mine", appointmentHandler.Mine)
	appointmentRoutes.Get("/pending", adminOnly, appointmentHandler.Pending)
	appointmentRoutes.Get("/approved", adminOnly, appointmentHandler.Approved)
	appointmentRoutes.Post("/process", adminOnly, appointmentHandler.ProcessNext)

	// Feedback & review routes
	feedbackRoutes := apiV1.Group("/feedback")
	feedbackRoutes.Use(auth)
	feedbackRoutes.Post("/", feedbackHandler.Submit)
	feedbackRoutes.Get("/", adminOnly, feedbackHandler.List)
	feedbackRoutes.Post("/reviews", feedbackHandler.PushReview)
	feedbackRoutes.Get("/reviews", feedbackHandler.Reviews)
	feedbackRoutes.Delete("/reviews/top", adminOnly, feedbackHandler.PopReview)

	// Currency routes
	currencyRoutes := apiV1.Group("/currency")
	currencyRoutes.Get("/rates", currencyHandler.Rates)
	currencyRoutes.Get("/convert", currencyHandler.Convert)
	currencyRoutes.Put("/rates", auth, adminOnly, currencyHandler.SetRates)

	// Admin routes
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(auth, adminOnly)
	adminRoutes.Get("/accounts", accountHandler.List)
	adminRoutes.Get("/accounts/search", accountHandler.Search)
	adminRoutes.Get("/accounts/top", accountHandler.TopRichest)
	adminRoutes.Get("/accounts/above", accountHandler.AboveBalance)
	adminRoutes.Get("/accounts/:number", accountHandler.Get)
	adminRoutes.Delete("/accounts/:number", middleware.StrictRateLimiter(), accountHandler.Delete)
	adminRoutes.Get("/accounts/:number/transactions", transactionHandler.History)
	adminRoutes.Get("/accounts/:number/statement", transactionHandler.Statement)
	adminRoutes.Post("/accounts/export", accountHandler.Export)
	adminRoutes.Get("/stats", accountHandler.Stats)
	adminRoutes.Get("/locked", adminHandler.LockedUsers)
	adminRoutes.Post("/unlock/:username", adminHandler.Unlock)
	adminRoutes.Post("/backup", adminHandler.Backup)
	adminRoutes.Delete("/data", middleware.StrictRateLimiter(), adminHandler.DeleteAll)
}
