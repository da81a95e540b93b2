package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"minibank/internal/adapters/persistence/filestore"
	"minibank/internal/adapters/persistence/repositories"
	"minibank/internal/config"
	"minibank/internal/core/domain"
	"minibank/internal/pkg/password"
)

// testEnv wires a full service stack over a temp data directory
type testEnv struct {
	store        *filestore.Store
	users        *repositories.UserRepository
	accounts     *repositories.AccountRepository
	loans        *repositories.LoanRepository
	customers    *repositories.SignupQueueRepository
	admins       *repositories.SignupQueueRepository
	appointments *repositories.AppointmentRepository
	feedbacks    *repositories.FeedbackRepository
	reviews      *repositories.ReviewRepository
	rates        *repositories.RateRepository
	transactions *repositories.TransactionRepository

	sessions    *SessionService
	auth        *AuthService
	account     *AccountService
	transaction *TransactionService
	signup      *SignupService
	loan        *LoanService
	appointment *AppointmentService
	feedback    *FeedbackService
	currency    *CurrencyService
	backup      *BackupService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	config.AppConfig = &config.Config{
		AppMode: "dev",
		Bank: config.BankConfig{
			DataDir:            t.TempDir(),
			MinimumBalance:     50.0,
			LoanMinimumBalance: 5000.0,
			LoanInterestRate:   0.05,
			AccountNumberFloor: 1000,
		},
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Session: config.SessionConfig{IdleMinutes: 10},
		Backup:  config.BackupConfig{Schedule: "30 2 * * *", Enabled: false},
	}

	store, err := filestore.New(config.AppConfig.Bank.DataDir)
	require.NoError(t, err)

	env := &testEnv{store: store}

	env.users, err = repositories.NewUserRepository(store)
	require.NoError(t, err)
	env.accounts, err = repositories.NewAccountRepository(store, config.AppConfig.Bank.AccountNumberFloor)
	require.NoError(t, err)
	env.loans, err = repositories.NewLoanRepository(store)
	require.NoError(t, err)
	env.customers, err = repositories.NewSignupQueueRepository(store, domain.RoleCustomer)
	require.NoError(t, err)
	env.admins, err = repositories.NewSignupQueueRepository(store, domain.RoleAdmin)
	require.NoError(t, err)
	env.appointments, err = repositories.NewAppointmentRepository(store)
	require.NoError(t, err)
	env.feedbacks, err = repositories.NewFeedbackRepository(store)
	require.NoError(t, err)
	env.reviews, err = repositories.NewReviewRepository(store)
	require.NoError(t, err)
	env.rates, err = repositories.NewRateRepository(store)
	require.NoError(t, err)
	env.transactions = repositories.NewTransactionRepository(store)

	env.sessions = NewSessionService(config.AppConfig.Session.IdleMinutes)
	env.auth = NewAuthService(env.users, env.sessions)
	env.account = NewAccountService(env.accounts, env.transactions, env.users, env.sessions)
	env.transaction = NewTransactionService(env.transactions, env.accounts)
	env.signup = NewSignupService(env.customers, env.admins, env.users, env.accounts, env.account)
	env.loan = NewLoanService(env.loans, env.accounts, env.account)
	env.appointment = NewAppointmentService(env.appointments)
	env.feedback = NewFeedbackService(env.feedbacks, env.reviews)
	env.currency = NewCurrencyService(env.rates, env.accounts)
	env.backup = NewBackupService(
		store,
		env.users, env.accounts, env.loans,
		env.customers, env.admins,
		env.appointments, env.feedbacks, env.reviews, env.rates,
		env.auth,
	)

	return env
}

// seedCustomer creates a login identity and ledger account directly
func (e *testEnv) seedCustomer(t *testing.T, username string, balance float64) *domain.Account {
	t.Helper()

	require.NoError(t, e.users.Create(&domain.User{
		Username:       username,
		PasswordDigest: password.Digest(username + "-pass"),
		Role:           domain.RoleCustomer,
	}))

	acc := &domain.Account{
		AccountNumber: e.accounts.NextNumber(),
		Username:      username,
		Balance:       balance,
		NationalID:    username + "-nid",
	}
	require.NoError(t, e.accounts.Create(acc))
	return acc
}
