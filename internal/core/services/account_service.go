package services

import (
	"log"
	"time"

	"minibank/internal/adapters/persistence/repositories"
	"minibank/internal/config"
	"minibank/internal/core/domain"
)

// AccountService exposes the ledger operations: money movement, account
// lookup and maintenance, and the admin reports built over the ledger.
type AccountService struct {
	accounts     *repositories.AccountRepository
	transactions *repositories.TransactionRepository
	users        *repositories.UserRepository
	sessions     *SessionService
}

func NewAccountService(
	accounts *repositories.AccountRepository,
	transactions *repositories.TransactionRepository,
	users *repositories.UserRepository,
	sessions *SessionService,
) *AccountService {
	return &AccountService{
		accounts:     accounts,
		transactions: transactions,
		users:        users,
		sessions:     sessions,
	}
}

// Deposit credits an account and appends a ledger entry
func (s *AccountService) Deposit(accountNumber int, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}

	balance, err := s.accounts.Deposit(accountNumber, amount)
	if err != nil {
		return balance, err
	}

	s.record(accountNumber, domain.TxDeposit, amount, balance)
	return balance, nil
}

// Withdraw debits an account, refusing any withdrawal that would push
// the balance below the minimum
func (s *AccountService) Withdraw(accountNumber int, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}

	balance, err := s.accounts.Withdraw(accountNumber, amount, config.AppConfig.Bank.MinimumBalance)
	if err != nil {
		return balance, err
	}

	s.record(accountNumber, domain.TxWithdraw, amount, balance)
	return balance, nil
}

// Transfer moves money between two accounts atomically. Both legs get a
// ledger entry only after the whole transfer has succeeded.
func (s *AccountService) Transfer(fromNumber, toNumber int, amount float64) (fromBalance, toBalance float64, err error) {
	if amount <= 0 {
		return 0, 0, domain.ErrInvalidAmount
	}
	if fromNumber == toNumber {
		return 0, 0, domain.ErrSameAccount
	}

	fromBalance, toBalance, err = s.accounts.Transfer(fromNumber, toNumber, amount, config.AppConfig.Bank.MinimumBalance)
	if err != nil {
		return fromBalance, toBalance, err
	}

	s.record(fromNumber, domain.TxTransferOut, amount, fromBalance)
	s.record(toNumber, domain.TxTransferIn, amount, toBalance)
	return fromBalance, toBalance, nil
}

// Details returns one account by number
func (s *AccountService) Details(accountNumber int) (*domain.Account, error) {
	return s.accounts.GetByNumber(accountNumber)
}

// DetailsByUsername returns the account owned by a username
func (s *AccountService) DetailsByUsername(username string) (*domain.Account, error) {
	return s.accounts.GetByUsername(username)
}

// UpdateInfo changes the contact details on an account. Empty fields are
// left untouched.
func (s *AccountService) UpdateInfo(accountNumber int, phone, address string) (*domain.Account, error) {
	acc, err := s.accounts.GetByNumber(accountNumber)
	if err != nil {
		return nil, err
	}

	if phone != "" {
		acc.Phone = phone
	}
	if address != "" {
		acc.Address = address
	}

	if err := s.accounts.Update(acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// Search finds accounts by exact national ID or case-insensitive username
func (s *AccountService) Search(query string) []*domain.Account {
	return s.accounts.Search(query)
}

// All returns every account
func (s *AccountService) All() []*domain.Account {
	return s.accounts.All()
}

// Delete removes an account record and ends any live sessions for its
// owner. The owning identity stays on file. Requires explicit
// confirmation; the account number is never reissued.
func (s *AccountService) Delete(accountNumber int, confirm bool) error {
	if !confirm {
		return ErrConfirmationNeeded
	}

	acc, err := s.accounts.GetByNumber(accountNumber)
	if err != nil {
		return err
	}

	if err := s.accounts.Delete(accountNumber); err != nil {
		return err
	}
	s.sessions.RevokeUser(acc.Username)

	log.Printf("🗑️ Account deleted: %d (%s)", accountNumber, acc.Username)
	return nil
}

// Stats is the bank-wide summary shown on the admin report
type Stats struct {
	TotalAccounts  int     `json:"total_accounts"`
	TotalCustomers int     `json:"total_customers"`
	TotalAdmins    int     `json:"total_admins"`
	TotalBalance   float64 `json:"total_balance"`
	AverageBalance float64 `json:"average_balance"`
	GeneratedAt    string  `json:"generated_at"`
}

// Stats summarises the ledger for reporting
func (s *AccountService) Stats() Stats {
	st := Stats{
		TotalAccounts:  s.accounts.Count(),
		TotalCustomers: s.users.CountByRole(domain.RoleCustomer),
		TotalAdmins:    s.users.CountByRole(domain.RoleAdmin),
		TotalBalance:   s.accounts.TotalBalance(),
		GeneratedAt:    time.Now().Format(time.RFC3339),
	}
	if st.TotalAccounts > 0 {
		st.AverageBalance = st.TotalBalance / float64(st.TotalAccounts)
	}
	return st
}

// TopRichest returns the n accounts with the highest balances
func (s *AccountService) TopRichest(n int) []*domain.Account {
	return s.accounts.TopRichest(n)
}

// AboveBalance returns accounts holding strictly more than the threshold
func (s *AccountService) AboveBalance(threshold float64) []*domain.Account {
	return s.accounts.AboveBalance(threshold)
}

// Export writes the account book to the CSV export file and returns its path
func (s *AccountService) Export() (string, error) {
	return s.accounts.Export()
}

func (s *AccountService) record(accountNumber int, txType string, amount, balance float64) {
	tx := &domain.Transaction{
		Time:    time.Now(),
		Type:    txType,
		Amount:  amount,
		Balance: balance,
	}
	if err := s.transactions.Append(accountNumber, tx); err != nil {
		log.Printf("❌ Failed to append transaction for account %d: %v", accountNumber, err)
	}
}
