package filestore

import (
	"bufio"
	"fmt"
	"os"

	"minibank/internal/core/domain"
)

// Transaction logs are append-only: one file per account, one entry per
// line. Entries are never mutated or removed.

// AppendTransaction appends a single entry to an account's log file
func (s *Store) AppendTransaction(accountNumber int, tx *domain.Transaction) error {
	fn := s.transactionPath(accountNumber)
	f, err := os.OpenFile(fn, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open transaction log %d: %w", accountNumber, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, encodeTransaction(tx)); err != nil {
		return fmt.Errorf("append transaction log %d: %w", accountNumber, err)
	}
	return nil
}

// LoadTransactions reads an account's full history in append order. A
// missing log file means no transactions yet.
func (s *Store) LoadTransactions(accountNumber int) ([]*domain.Transaction, error) {
	f, err := os.Open(s.transactionPath(accountNumber))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open transaction log %d: %w", accountNumber, err)
	}
	defer f.Close()

	var txs []*domain.Transaction
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if tx, ok := decodeTransaction(scanner.Text()); ok {
			txs = append(txs, tx)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read transaction log %d: %w", accountNumber, err)
	}
	return txs, nil
}
