package repositories

import (
	"sync"

	"minibank/internal/adapters/persistence/filestore"
	"minibank/internal/core/domain"
)

// FeedbackRepository holds the append-only service feedback collection
type FeedbackRepository struct {
	mu        sync.RWMutex
	store     *filestore.Store
	feedbacks []*domain.ServiceFeedback
}

// NewFeedbackRepository creates a feedback repository, loading existing entries
func NewFeedbackRepository(store *filestore.Store) (*FeedbackRepository, error) {
	feedbacks, err := store.LoadFeedbacks()
	if err != nil {
		return nil, err
	}
	return &FeedbackRepository{store: store, feedbacks: feedbacks}, nil
}

// Add appends a feedback entry and persists
func (r *FeedbackRepository) Add(fb *domain.ServiceFeedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *fb
	r.feedbacks = append(r.feedbacks, &cp)
	return r.store.SaveFeedbacks(r.feedbacks)
}

// All returns copies of every feedback entry, optionally filtered by service
func (r *FeedbackRepository) All(service string) []*domain.ServiceFeedback {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.ServiceFeedback
	for _, fb := range r.feedbacks {
		if service == "" || fb.Service == service {
			cp := *fb
			out = append(out, &cp)
		}
	}
	return out
}

// Count returns the number of feedback entries
func (r *FeedbackRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.feedbacks)
}

// Reset drops every entry from memory (delete-all)
func (r *FeedbackRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feedbacks = nil
}
