package services

import (
	"strings"
	"time"

	"minibank/internal/adapters/persistence/repositories"
	"minibank/internal/core/domain"
)

// TransactionService reads and filters per-account ledger histories
type TransactionService struct {
	transactions *repositories.TransactionRepository
	accounts     *repositories.AccountRepository
}

func NewTransactionService(transactions *repositories.TransactionRepository, accounts *repositories.AccountRepository) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		accounts:     accounts,
	}
}

// History returns the full ledger for an account, oldest first
func (s *TransactionService) History(accountNumber int) ([]*domain.Transaction, error) {
	if _, err := s.accounts.GetByNumber(accountNumber); err != nil {
		return nil, err
	}
	return s.transactions.History(accountNumber)
}

// ByDateRange returns ledger entries within [from, to] inclusive
func (s *TransactionService) ByDateRange(accountNumber int, from, to time.Time) ([]*domain.Transaction, error) {
	all, err := s.History(accountNumber)
	if err != nil {
		return nil, err
	}

	var out []*domain.Transaction
	for _, tx := range all {
		if tx.Time.Before(from) || tx.Time.After(to) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

// ByType returns ledger entries whose type contains the query,
// case-insensitively
func (s *TransactionService) ByType(accountNumber int, query string) ([]*domain.Transaction, error) {
	all, err := s.History(accountNumber)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var out []*domain.Transaction
	for _, tx := range all {
		if strings.Contains(strings.ToLower(tx.Type), q) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// ByAmount returns ledger entries with exactly the given amount
func (s *TransactionService) ByAmount(accountNumber int, amount float64) ([]*domain.Transaction, error) {
	all, err := s.History(accountNumber)
	if err != nil {
		return nil, err
	}

	var out []*domain.Transaction
	for _, tx := range all {
		if tx.Amount == amount {
			out = append(out, tx)
		}
	}
	return out, nil
}

// Statement is a one-month summary of an account's ledger
type Statement struct {
	AccountNumber  int                   `json:"account_number"`
	Year           int                   `json:"year"`
	Month          time.Month            `json:"month"`
	Transactions   []*domain.Transaction `json:"transactions"`
	TotalIn        float64               `json:"total_in"`
	TotalOut       float64               `json:"total_out"`
	ClosingBalance float64               `json:"closing_balance"`
}

// MonthlyStatement builds the statement for one calendar month
func (s *TransactionService) MonthlyStatement(accountNumber, year int, month time.Month) (*Statement, error) {
	all, err := s.History(accountNumber)
	if err != nil {
		return nil, err
	}

	st := &Statement{
		AccountNumber: accountNumber,
		Year:          year,
		Month:         month,
	}
	for _, tx := range all {
		if tx.Time.Year() != year || tx.Time.Month() != month {
			continue
		}
		st.Transactions = append(st.Transactions, tx)
		switch tx.Type {
		case domain.TxDeposit, domain.TxTransferIn, domain.TxLoanApproved:
			st.TotalIn += tx.Amount
		case domain.TxWithdraw, domain.TxTransferOut:
			st.TotalOut += tx.Amount
		}
		st.ClosingBalance = tx.Balance
	}
	return st, nil
}
