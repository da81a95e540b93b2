package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"minibank/internal/adapters/http/middleware"
	"minibank/internal/adapters/http/routes"
	"minibank/internal/adapters/persistence/filestore"
	"minibank/internal/adapters/persistence/repositories"
	"minibank/internal/config"
	"minibank/internal/core/domain"
	"minibank/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Open the flat-file store
	store, err := filestore.New(cfg.Bank.DataDir)
	if err != nil {
		log.Fatalf("❌ Failed to open data directory: %v", err)
	}

	// Initialize repositories (each loads its file on startup)
	userRepo, err := repositories.NewUserRepository(store)
	if err != nil {
		log.Fatalf("❌ Failed to load users: %v", err)
	}
	accountRepo, err := repositories.NewAccountRepository(store, cfg.Bank.AccountNumberFloor)
	if err != nil {
		log.Fatalf("❌ Failed to load accounts: %v", err)
	}
	loanRepo, err := repositories.NewLoanRepository(store)
	if err != nil {
		log.Fatalf("❌ Failed to load loan requests: %v", err)
	}
	customerQueue, err := repositories.NewSignupQueueRepository(store, domain.RoleCustomer)
	if err != nil {
		log.Fatalf("❌ Failed to load signup queue: %v", err)
	}
	adminQueue, err := repositories.NewSignupQueueRepository(store, domain.RoleAdmin)
	if err != nil {
		log.Fatalf("❌ Failed to load admin enrollment queue: %v", err)
	}
	appointmentRepo, err := repositories.NewAppointmentRepository(store)
	if err != nil {
		log.Fatalf("❌ Failed to load appointments: %v", err)
	}
	feedbackRepo, err := repositories.NewFeedbackRepository(store)
	if err != nil {
		log.Fatalf("❌ Failed to load feedback: %v", err)
	}
	reviewRepo, err := repositories.NewReviewRepository(store)
	if err != nil {
		log.Fatalf("❌ Failed to load reviews: %v", err)
	}
	rateRepo, err := repositories.NewRateRepository(store)
	if err != nil {
		log.Fatalf("❌ Failed to load exchange rates: %v", err)
	}
	transactionRepo := repositories.NewTransactionRepository(store)
	log.Println("✅ Data files loaded")

	// Initialize services
	sessionService := services.NewSessionService(cfg.Session.IdleMinutes)
	authService := services.NewAuthService(userRepo, sessionService)
	accountService := services.NewAccountService(accountRepo, transactionRepo, userRepo, sessionService)
	transactionService := services.NewTransactionService(transactionRepo, accountRepo)
	signupService := services.NewSignupService(customerQueue, adminQueue, userRepo, accountRepo, accountService)
	loanService := services.NewLoanService(loanRepo, accountRepo, accountService)
	appointmentService := services.NewAppointmentService(appointmentRepo)
	feedbackService := services.NewFeedbackService(feedbackRepo, reviewRepo)
	currencyService := services.NewCurrencyService(rateRepo, accountRepo)
	backupService := services.NewBackupService(
		store,
		userRepo, accountRepo, loanRepo,
		customerQueue, adminQueue,
		appointmentRepo, feedbackRepo, reviewRepo, rateRepo,
		authService,
	)

	// Seed the bootstrap administrator
	if err := authService.EnsureBootstrapAdmin(); err != nil {
		log.Fatalf("❌ Failed to seed bootstrap administrator: %v", err)
	}

	// Start the scheduled backup job
	if err := backupService.Start(); err != nil {
		log.Fatalf("❌ Failed to start backup scheduler: %v", err)
	}
	defer backupService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "MiniBank API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, cfg, &routes.Deps{
		Sessions:     sessionService,
		Auth:         authService,
		Accounts:     accountService,
		Transactions: transactionService,
		Signups:      signupService,
		Loans:        loanService,
		Appointments: appointmentService,
		Feedback:     feedbackService,
		Currency:     currencyService,
		Backup:       backupService,
		DataDir:      cfg.Bank.DataDir,
	})

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
