package repositories

import (
	"sync"

	"minibank/internal/adapters/persistence/filestore"
	"minibank/internal/core/domain"
)

// ReviewRepository holds the complaints/reviews stack. The most recent
// review sits on top and is the one removed by an undo.
type ReviewRepository struct {
	mu      sync.RWMutex
	store   *filestore.Store
	reviews []string // index 0 is the bottom of the stack
}

// NewReviewRepository creates a review repository, loading the stack
func NewReviewRepository(store *filestore.Store) (*ReviewRepository, error) {
	reviews, err := store.LoadReviews()
	if err != nil {
		return nil, err
	}
	return &ReviewRepository{store: store, reviews: reviews}, nil
}

// Push puts a new review on top of the stack and persists
func (r *ReviewRepository) Push(review string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reviews = append(r.reviews, review)
	return r.store.SaveReviews(r.reviews)
}

// Pop removes the most recent review. Returns ErrNotFound on an empty stack.
func (r *ReviewRepository) Pop() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.reviews) == 0 {
		return "", domain.ErrNotFound
	}
	top := r.reviews[len(r.reviews)-1]
	r.reviews = r.reviews[:len(r.reviews)-1]
	if err := r.store.SaveReviews(r.reviews); err != nil {
		return top, err
	}
	return top, nil
}

// All returns the stack from newest to oldest
func (r *ReviewRepository) All() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.reviews))
	for i := len(r.reviews) - 1; i >= 0; i-- {
		out = append(out, r.reviews[i])
	}
	return out
}

// Count returns the stack depth
func (r *ReviewRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.reviews)
}

// Reset drops the stack from memory (delete-all)
func (r *ReviewRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = nil
}
