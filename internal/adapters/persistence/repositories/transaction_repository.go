package repositories

import (
	"minibank/internal/adapters/persistence/filestore"
	"minibank/internal/core/domain"
)

// TransactionRepository is a thin adapter over the append-only per-account
// log files. There is no in-memory copy: history is re-read on demand and
// entries are never mutated or removed.
type TransactionRepository struct {
	store *filestore.Store
}

// NewTransactionRepository creates a transaction repository
func NewTransactionRepository(store *filestore.Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// Append writes a single entry to the account's log
func (r *TransactionRepository) Append(accountNumber int, tx *domain.Transaction) error {
	return r.store.AppendTransaction(accountNumber, tx)
}

// History returns the account's full history in append order
func (r *TransactionRepository) History(accountNumber int) ([]*domain.Transaction, error) {
	return r.store.LoadTransactions(accountNumber)
}
