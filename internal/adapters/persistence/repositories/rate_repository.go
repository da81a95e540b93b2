package repositories

import (
	"sync"

	"minibank/internal/adapters/persistence/filestore"
	"minibank/internal/core/domain"
)

// RateRepository holds the mutable currency rate table
type RateRepository struct {
	mu    sync.RWMutex
	store *filestore.Store
	rates domain.ExchangeRates
}

// NewRateRepository creates a rate repository, loading persisted rates or
// falling back to the defaults
func NewRateRepository(store *filestore.Store) (*RateRepository, error) {
	rates, err := store.LoadRates()
	if err != nil {
		return nil, err
	}
	return &RateRepository{store: store, rates: rates}, nil
}

// Get returns the current rate table
func (r *RateRepository) Get() domain.ExchangeRates {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rates
}

// Set replaces the rate table and persists immediately
func (r *RateRepository) Set(rates domain.ExchangeRates) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rates = rates
	return r.store.SaveRates(r.rates)
}

// Reset restores the default rate table (used by delete-all)
func (r *RateRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rates = domain.DefaultRates()
}
