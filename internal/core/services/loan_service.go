package services

import (
	"errors"
	"log"

	"minibank/internal/adapters/persistence/repositories"
	"minibank/internal/config"
	"minibank/internal/core/domain"
)

var (
	ErrLoanBalanceTooLow = errors.New("balance is below the loan eligibility minimum")
	ErrActiveLoanExists  = errors.New("an active loan request or approved loan already exists")
	ErrNoPendingLoan     = errors.New("no pending loan request for this user")
)

// LoanService handles loan eligibility, submission and decisions.
// A user can hold at most one active loan: a pending request or an
// approved loan both block further submissions, and Approved is terminal.
type LoanService struct {
	loans    *repositories.LoanRepository
	accounts *repositories.AccountRepository
	account  *AccountService
}

func NewLoanService(loans *repositories.LoanRepository, accounts *repositories.AccountRepository, account *AccountService) *LoanService {
	return &LoanService{
		loans:    loans,
		accounts: accounts,
		account:  account,
	}
}

// Submit files a loan request for the user that owns the account
func (s *LoanService) Submit(username string, amount float64, reason string) (*domain.LoanRequest, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	// 1. The applicant must own a ledger account
	acc, err := s.accounts.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	// 2. Eligibility: balance at or above the loan minimum
	if acc.Balance < config.AppConfig.Bank.LoanMinimumBalance {
		return nil, ErrLoanBalanceTooLow
	}

	// 3. One active loan per user, ever pending or approved
	if s.loans.HasActive(username) {
		return nil, ErrActiveLoanExists
	}

	req := &domain.LoanRequest{
		Username: username,
		Amount:   amount,
		Reason:   reason,
		Status:   domain.LoanPending,
	}
	if err := s.loans.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Decide resolves the pending request for a username. Approval credits
// the loan amount to the account and appends a ledger entry; the
// interest rate is stamped on the request at approval time.
func (s *LoanService) Decide(username string, approve bool) (*domain.LoanRequest, error) {
	req, err := s.loans.GetPending(username)
	if err != nil {
		return nil, ErrNoPendingLoan
	}

	if !approve {
		if err := s.loans.SetStatus(username, domain.LoanRejected, 0); err != nil {
			return nil, err
		}
		req.Status = domain.LoanRejected
		return req, nil
	}

	acc, err := s.accounts.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	// Credit before transitioning: Approved is terminal, so a failed
	// deposit must leave the request pending rather than strand an
	// approved loan with no money behind it.
	balance, err := s.accounts.Deposit(acc.AccountNumber, req.Amount)
	if err != nil {
		return nil, err
	}

	rate := config.AppConfig.Bank.LoanInterestRate
	if err := s.loans.SetStatus(username, domain.LoanApproved, rate); err != nil {
		return nil, err
	}
	s.account.record(acc.AccountNumber, domain.TxLoanApproved, req.Amount, balance)

	req.Status = domain.LoanApproved
	req.InterestRate = rate

	log.Printf("✅ Loan approved: %s for %.2f", username, req.Amount)
	return req, nil
}

// Pending lists every undecided loan request, oldest first
func (s *LoanService) Pending() []*domain.LoanRequest {
	return s.loans.Pending()
}

// ByUsername lists all loan requests a user has ever filed
func (s *LoanService) ByUsername(username string) []*domain.LoanRequest {
	return s.loans.ByUsername(username)
}

// All lists every loan request
func (s *LoanService) All() []*domain.LoanRequest {
	return s.loans.All()
}

// LoanStats is the loan-book summary for the admin report
type LoanStats struct {
	Total             int     `json:"total"`
	Pending           int     `json:"pending"`
	Approved          int     `json:"approved"`
	Rejected          int     `json:"rejected"`
	ProjectedInterest float64 `json:"projected_interest"`
}

// Stats summarises the loan book
func (s *LoanService) Stats() LoanStats {
	return LoanStats{
		Total:             s.loans.Count(),
		Pending:           s.loans.CountByStatus(domain.LoanPending),
		Approved:          s.loans.CountByStatus(domain.LoanApproved),
		Rejected:          s.loans.CountByStatus(domain.LoanRejected),
		ProjectedInterest: s.loans.ApprovedInterestTotal(),
	}
}
