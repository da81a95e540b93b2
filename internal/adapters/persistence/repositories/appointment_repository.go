package repositories

import (
	"sync"

	"minibank/internal/adapters/persistence/filestore"
	"minibank/internal/core/domain"
)

// AppointmentRepository holds pending appointment requests in insertion
// order plus the approved collection, each backed by its own file.
type AppointmentRepository struct {
	mu       sync.RWMutex
	store    *filestore.Store
	pending  []*domain.Appointment
	approved []*domain.Appointment
}

// NewAppointmentRepository creates an appointment repository, loading both
// collections
func NewAppointmentRepository(store *filestore.Store) (*AppointmentRepository, error) {
	pending, err := store.LoadAppointments(false)
	if err != nil {
		return nil, err
	}
	approved, err := store.LoadAppointments(true)
	if err != nil {
		return nil, err
	}
	return &AppointmentRepository{store: store, pending: pending, approved: approved}, nil
}

func (r *AppointmentRepository) persistPending() error {
	return r.store.SaveAppointments(r.pending, false)
}

func (r *AppointmentRepository) persistApproved() error {
	return r.store.SaveAppointments(r.approved, true)
}

// Enqueue appends a pending request at the tail and persists
func (r *AppointmentRepository) Enqueue(appt *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *appt
	cp.Status = domain.AppointmentPending
	r.pending = append(r.pending, &cp)
	return r.persistPending()
}

// PopHead removes and returns the head of the pending queue
func (r *AppointmentRepository) PopHead() (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.pending) == 0 {
		return nil, domain.ErrNotFound
	}
	head := r.pending[0]
	r.pending = r.pending[1:]
	if err := r.persistPending(); err != nil {
		return head, err
	}
	return head, nil
}

// PushTail re-queues a skipped request at the tail, not the head. Processing
// order is deliberately not preserved across a skip.
func (r *AppointmentRepository) PushTail(appt *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *appt
	r.pending = append(r.pending, &cp)
	return r.persistPending()
}

// Approve adds an appointment to the approved collection
func (r *AppointmentRepository) Approve(appt *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *appt
	cp.Status = domain.AppointmentApproved
	r.approved = append(r.approved, &cp)
	return r.persistApproved()
}

// Pending returns copies of all pending requests in queue order
func (r *AppointmentRepository) Pending() []*domain.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyAppointments(r.pending)
}

// Approved returns copies of all approved appointments
func (r *AppointmentRepository) Approved() []*domain.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyAppointments(r.approved)
}

// ByUsername returns the user's pending and approved appointments
func (r *AppointmentRepository) ByUsername(username string) (pending, approved []*domain.Appointment) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.pending {
		if a.Username == username {
			cp := *a
			pending = append(pending, &cp)
		}
	}
	for _, a := range r.approved {
		if a.Username == username {
			cp := *a
			approved = append(approved, &cp)
		}
	}
	return pending, approved
}

// Counts returns the pending and approved collection sizes
func (r *AppointmentRepository) Counts() (pending, approved int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pending), len(r.approved)
}

// Reset drops both collections from memory (delete-all)
func (r *AppointmentRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = nil
	r.approved = nil
}

func copyAppointments(in []*domain.Appointment) []*domain.Appointment {
	out := make([]*domain.Appointment, 0, len(in))
	for _, a := range in {
		cp := *a
		out = append(out, &cp)
	}
	return out
}
