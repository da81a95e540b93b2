package repositories

import (
	"strings"
	"sync"

	"minibank/internal/adapters/persistence/filestore"
	"minibank/internal/core/domain"
)

// UserRepository keeps all login identities in memory and rewrites the users
// file on every mutation. Reads return copies so callers cannot bypass the
// repository when mutating.
type UserRepository struct {
	mu    sync.RWMutex
	store *filestore.Store
	users []*domain.User
}

// NewUserRepository creates a user repository, loading existing identities
func NewUserRepository(store *filestore.Store) (*UserRepository, error) {
	users, err := store.LoadUsers()
	if err != nil {
		return nil, err
	}
	return &UserRepository{store: store, users: users}, nil
}

// persist rewrites the users file; callers must hold mu
func (r *UserRepository) persist() error {
	return r.store.SaveUsers(r.users)
}

func (r *UserRepository) find(username string) *domain.User {
	for _, u := range r.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

// Create adds a new identity. Usernames are unique system-wide regardless of
// role; the caller checks availability first, this is the final gate.
func (r *UserRepository) Create(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(user.Username) != nil {
		return domain.ErrDuplicateEntry
	}
	cp := *user
	r.users = append(r.users, &cp)
	return r.persist()
}

// GetByUsername returns a copy of the identity with the given username
func (r *UserRepository) GetByUsername(username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u := r.find(username); u != nil {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

// GetByUsernameAndRole returns a copy of the identity matching both fields
func (r *UserRepository) GetByUsernameAndRole(username string, role domain.Role) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username && u.Role == role {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ExistsByUsername reports whether any identity uses the username,
// case-insensitively
func (r *UserRepository) ExistsByUsername(username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			return true
		}
	}
	return false
}

// Update replaces the stored identity matching user.Username and persists
func (r *UserRepository) Update(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.find(user.Username)
	if existing == nil {
		return domain.ErrNotFound
	}
	*existing = *user
	return r.persist()
}

// All returns copies of every identity
func (r *UserRepository) All() []*domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out
}

// ListLocked returns copies of all currently locked identities
func (r *UserRepository) ListLocked() []*domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.User
	for _, u := range r.users {
		if u.IsLocked {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out
}

// CountByRole returns the number of identities with the given role
func (r *UserRepository) CountByRole(role domain.Role) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count
}

// Reset drops every identity from memory (used by delete-all)
func (r *UserRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = nil
}
