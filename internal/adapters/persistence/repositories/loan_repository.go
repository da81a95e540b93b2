package repositories

import (
	"sync"

	"minibank/internal/adapters/persistence/filestore"
	"minibank/internal/core/domain"
)

// LoanRepository holds the append-mutate loan request collection. Requests
// are never deleted, only transitioned between statuses.
type LoanRepository struct {
	mu       sync.RWMutex
	store    *filestore.Store
	requests []*domain.LoanRequest
}

// NewLoanRepository creates a loan repository, loading existing requests
func NewLoanRepository(store *filestore.Store) (*LoanRepository, error) {
	requests, err := store.LoadLoanRequests()
	if err != nil {
		return nil, err
	}
	return &LoanRepository{store: store, requests: requests}, nil
}

// persist rewrites the loan requests file; callers must hold mu
func (r *LoanRepository) persist() error {
	return r.store.SaveLoanRequests(r.requests)
}

// Create appends a new request and persists
func (r *LoanRepository) Create(req *domain.LoanRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *req
	r.requests = append(r.requests, &cp)
	return r.persist()
}

// HasActive reports whether the user has a Pending or Approved request.
// Approved is terminal and never closes, so an approved loan blocks any
// further request from that user permanently.
func (r *LoanRepository) HasActive(username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, req := range r.requests {
		if req.Username == username &&
			(req.Status == domain.LoanPending || req.Status == domain.LoanApproved) {
			return true
		}
	}
	return false
}

// GetPending returns a copy of the user's pending request. At most one can
// exist per user.
func (r *LoanRepository) GetPending(username string) (*domain.LoanRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, req := range r.requests {
		if req.Username == username && req.Status == domain.LoanPending {
			cp := *req
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// SetStatus transitions the user's pending request to a terminal status and
// records the final interest rate
func (r *LoanRepository) SetStatus(username string, status domain.LoanStatus, interestRate float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, req := range r.requests {
		if req.Username == username && req.Status == domain.LoanPending {
			req.Status = status
			req.InterestRate = interestRate
			return r.persist()
		}
	}
	return domain.ErrNotFound
}

// ByUsername returns copies of every request the user has ever made
func (r *LoanRepository) ByUsername(username string) []*domain.LoanRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.LoanRequest
	for _, req := range r.requests {
		if req.Username == username {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out
}

// All returns copies of every request
func (r *LoanRepository) All() []*domain.LoanRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.LoanRequest, 0, len(r.requests))
	for _, req := range r.requests {
		cp := *req
		out = append(out, &cp)
	}
	return out
}

// Pending returns copies of every pending request in submission order
func (r *LoanRepository) Pending() []*domain.LoanRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.LoanRequest
	for _, req := range r.requests {
		if req.Status == domain.LoanPending {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out
}

// ApprovedInterestTotal sums amount*rate over approved loans (reporting)
func (r *LoanRepository) ApprovedInterestTotal() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0.0
	for _, req := range r.requests {
		if req.Status == domain.LoanApproved {
			total += req.Amount * req.InterestRate
		}
	}
	return total
}

// CountByStatus returns the number of requests with the given status
func (r *LoanRepository) CountByStatus(status domain.LoanStatus) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, req := range r.requests {
		if req.Status == status {
			count++
		}
	}
	return count
}

// Count returns the total number of requests ever made
func (r *LoanRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.requests)
}

// Reset drops every request from memory (delete-all)
func (r *LoanRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = nil
}
