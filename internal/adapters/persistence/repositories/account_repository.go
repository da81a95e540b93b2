package repositories

import (
	"sort"
	"strings"
	"sync"

	"minibank/internal/adapters/persistence/filestore"
	"minibank/internal/core/domain"
)

// AccountRepository owns the account ledger: the in-memory account list and
// the account-number high-water mark. Every balance mutation happens inside
// a single critical section so compound operations (transfer) are atomic,
// and the accounts file is rewritten before the mutation is reported back.
type AccountRepository struct {
	mu         sync.RWMutex
	store      *filestore.Store
	accounts   []*domain.Account
	lastNumber int
	floor      int
}

// NewAccountRepository creates an account repository, loading existing
// accounts and recovering the high-water mark as max(observed, floor). This
// keeps allocation monotonic across restarts even when the persisted state
// predates some issued numbers.
func NewAccountRepository(store *filestore.Store, floor int) (*AccountRepository, error) {
	accounts, highest, err := store.LoadAccounts()
	if err != nil {
		return nil, err
	}
	last := floor
	if highest > last {
		last = highest
	}
	return &AccountRepository{
		store:      store,
		accounts:   accounts,
		lastNumber: last,
		floor:      floor,
	}, nil
}

// persist rewrites the accounts file; callers must hold mu
func (r *AccountRepository) persist() error {
	return r.store.SaveAccounts(r.accounts)
}

func (r *AccountRepository) find(number int) *domain.Account {
	for _, a := range r.accounts {
		if a.AccountNumber == number {
			return a
		}
	}
	return nil
}

// NextNumber allocates the next account number: high-water mark + 1.
// Numbers are strictly increasing and never reused, even after deletes.
func (r *AccountRepository) NextNumber() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastNumber++
	return r.lastNumber
}

// Create inserts a new account record. National-ID uniqueness has already
// been verified by the workflow that allocated the number.
func (r *AccountRepository) Create(account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(account.AccountNumber) != nil {
		return domain.ErrDuplicateEntry
	}
	cp := *account
	r.accounts = append(r.accounts, &cp)
	return r.persist()
}

// GetByNumber returns a copy of the account with the given number
func (r *AccountRepository) GetByNumber(number int) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if a := r.find(number); a != nil {
		cp := *a
		return &cp, nil
	}
	return nil, domain.ErrAccountNotFound
}

// GetByUsername returns a copy of the first account owned by username
// (case-insensitive)
func (r *AccountRepository) GetByUsername(username string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if strings.EqualFold(a.Username, username) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// NationalIDExists reports whether any approved account carries the national ID
func (r *AccountRepository) NationalIDExists(nationalID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.NationalID == nationalID {
			return true
		}
	}
	return false
}

// Search performs the linear account scan: exact national-ID match or
// case-insensitive username match
func (r *AccountRepository) Search(query string) []*domain.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Account
	for _, a := range r.accounts {
		if a.NationalID == query || strings.EqualFold(a.Username, query) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out
}

// All returns copies of every account
func (r *AccountRepository) All() []*domain.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		cp := *a
		out = append(out, &cp)
	}
	return out
}

// Update replaces the stored account matching account.AccountNumber
func (r *AccountRepository) Update(account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.find(account.AccountNumber)
	if existing == nil {
		return domain.ErrAccountNotFound
	}
	*existing = *account
	return r.persist()
}

// Delete irreversibly removes an account record. The owning identity is
// untouched, and the account number is never reissued.
func (r *AccountRepository) Delete(number int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.accounts {
		if a.AccountNumber == number {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return r.persist()
		}
	}
	return domain.ErrAccountNotFound
}

// Deposit credits an account and returns the new balance
func (r *AccountRepository) Deposit(number int, amount float64) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := r.find(number)
	if a == nil {
		return 0, domain.ErrAccountNotFound
	}
	a.Balance += amount
	if err := r.persist(); err != nil {
		return a.Balance, err
	}
	return a.Balance, nil
}

// Withdraw debits an account, enforcing the minimum-balance floor, and
// returns the new balance
func (r *AccountRepository) Withdraw(number int, amount, minimum float64) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := r.find(number)
	if a == nil {
		return 0, domain.ErrAccountNotFound
	}
	if a.Balance-amount < minimum {
		return a.Balance, domain.ErrBelowMinimum
	}
	a.Balance -= amount
	if err := r.persist(); err != nil {
		return a.Balance, err
	}
	return a.Balance, nil
}

// Transfer atomically moves amount between two accounts. Both must exist and
// the debit must respect the minimum-balance floor; if either check fails,
// neither balance changes.
func (r *AccountRepository) Transfer(from, to int, amount, minimum float64) (fromBalance, toBalance float64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	src := r.find(from)
	dst := r.find(to)
	if src == nil || dst == nil {
		return 0, 0, domain.ErrAccountNotFound
	}
	if src.Balance-amount < minimum {
		return src.Balance, dst.Balance, domain.ErrBelowMinimum
	}
	src.Balance -= amount
	dst.Balance += amount
	if err := r.persist(); err != nil {
		return src.Balance, dst.Balance, err
	}
	return src.Balance, dst.Balance, nil
}

// Count returns the number of accounts
func (r *AccountRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}

// TotalBalance returns the sum of every account balance
func (r *AccountRepository) TotalBalance() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0.0
	for _, a := range r.accounts {
		total += a.Balance
	}
	return total
}

// TopRichest returns up to n accounts ordered by descending balance
func (r *AccountRepository) TopRichest(n int) []*domain.Account {
	out := r.All()
	sort.Slice(out, func(i, j int) bool {
		return out[i].Balance > out[j].Balance
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// AboveBalance returns accounts with balance strictly greater than min
func (r *AccountRepository) AboveBalance(min float64) []*domain.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Account
	for _, a := range r.accounts {
		if a.Balance > min {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out
}

// Export writes the account book to the CSV export file and returns its path
func (r *AccountRepository) Export() (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.store.ExportAccounts(r.accounts)
}

// Reset drops every account and restores the allocation floor (delete-all)
func (r *AccountRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = nil
	r.lastNumber = r.floor
}
