package repositories

import (
	"strings"
	"sync"

	"minibank/internal/adapters/persistence/filestore"
	"minibank/internal/core/domain"
)

// SignupQueueRepository is a FIFO queue of signup requests backed by its own
// file. Account-opening and admin-enrollment use two separate instances with
// identical behavior. The file preserves submission order, so the earliest
// request is always decided first.
type SignupQueueRepository struct {
	mu       sync.RWMutex
	store    *filestore.Store
	role     domain.Role
	requests []*domain.SignupRequest
}

// NewSignupQueueRepository creates a queue for the given role, loading any
// still-queued requests
func NewSignupQueueRepository(store *filestore.Store, role domain.Role) (*SignupQueueRepository, error) {
	requests, err := store.LoadSignupRequests(role)
	if err != nil {
		return nil, err
	}
	return &SignupQueueRepository{store: store, role: role, requests: requests}, nil
}

// persist rewrites the queue file in FIFO order; callers must hold mu
func (r *SignupQueueRepository) persist() error {
	return r.store.SaveSignupRequests(r.role, r.requests)
}

// Enqueue appends a request at the tail and persists
func (r *SignupQueueRepository) Enqueue(req *domain.SignupRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *req
	cp.Role = r.role
	r.requests = append(r.requests, &cp)
	return r.persist()
}

// Peek returns a copy of the head request without removing it
func (r *SignupQueueRepository) Peek() (*domain.SignupRequest, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.requests) == 0 {
		return nil, false
	}
	cp := *r.requests[0]
	return &cp, true
}

// Dequeue removes and returns the head request
func (r *SignupQueueRepository) Dequeue() (*domain.SignupRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.requests) == 0 {
		return nil, domain.ErrNotFound
	}
	head := r.requests[0]
	r.requests = r.requests[1:]
	if err := r.persist(); err != nil {
		return head, err
	}
	return head, nil
}

// All returns copies of every queued request in FIFO order
func (r *SignupQueueRepository) All() []*domain.SignupRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.SignupRequest, 0, len(r.requests))
	for _, req := range r.requests {
		cp := *req
		out = append(out, &cp)
	}
	return out
}

// HasNationalID reports whether any queued request carries the national ID
func (r *SignupQueueRepository) HasNationalID(nationalID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, req := range r.requests {
		if req.NationalID == nationalID {
			return true
		}
	}
	return false
}

// HasUsername reports whether any queued request uses the username,
// case-insensitively
func (r *SignupQueueRepository) HasUsername(username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, req := range r.requests {
		if strings.EqualFold(req.Username, username) {
			return true
		}
	}
	return false
}

// FindByUsername returns a copy of the queued request for the username
func (r *SignupQueueRepository) FindByUsername(username string) (*domain.SignupRequest, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, req := range r.requests {
		if strings.EqualFold(req.Username, username) {
			cp := *req
			return &cp, true
		}
	}
	return nil, false
}

// Len returns the number of queued requests
func (r *SignupQueueRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.requests)
}

// Reset drops every queued request from memory (delete-all)
func (r *SignupQueueRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = nil
}
