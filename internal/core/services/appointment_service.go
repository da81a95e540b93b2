package services

import (
	"strings"

	"minibank/internal/adapters/persistence/repositories"
	"minibank/internal/core/domain"
)

// Decision outcomes for appointment processing
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
	DecisionSkipped  = "skipped"
)

// AppointmentService runs the appointment booking workflow. Requests are
// processed strictly from the head of the queue; a skipped (or
// unrecognised) decision sends the request back to the tail instead of
// losing it.
type AppointmentService struct {
	appointments *repositories.AppointmentRepository
}

func NewAppointmentService(appointments *repositories.AppointmentRepository) *AppointmentService {
	return &AppointmentService{appointments: appointments}
}

// Book queues a new appointment request
func (s *AppointmentService) Book(appt *domain.Appointment) error {
	if appt.Username == "" || appt.Service == "" || appt.Date == "" || appt.Time == "" {
		return domain.ErrInvalidInput
	}
	return s.appointments.Enqueue(appt)
}

// ProcessNext takes the head of the pending queue and applies the
// decision. "approve" moves it to the approved list, "reject" discards
// it, and anything else re-queues it at the tail.
func (s *AppointmentService) ProcessNext(decision string) (*domain.Appointment, string, error) {
	appt, err := s.appointments.PopHead()
	if err != nil {
		return nil, "", ErrQueueEmpty
	}

	switch strings.ToLower(strings.TrimSpace(decision)) {
	case "approve":
		if err := s.appointments.Approve(appt); err != nil {
			return nil, "", err
		}
		return appt, DecisionApproved, nil
	case "reject":
		return appt, DecisionRejected, nil
	default:
		if err := s.appointments.PushTail(appt); err != nil {
			return nil, "", err
		}
		return appt, DecisionSkipped, nil
	}
}

// Pending lists waiting appointments in queue order
func (s *AppointmentService) Pending() []*domain.Appointment {
	return s.appointments.Pending()
}

// Approved lists every approved appointment
func (s *AppointmentService) Approved() []*domain.Appointment {
	return s.appointments.Approved()
}

// ForUser lists a user's appointments, pending and approved
func (s *AppointmentService) ForUser(username string) (pending, approved []*domain.Appointment) {
	return s.appointments.ByUsername(username)
}

// Counts returns the pending and approved totals
func (s *AppointmentService) Counts() (pending, approved int) {
	return s.appointments.Counts()
}
