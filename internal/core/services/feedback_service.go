package services

import (
	"time"

	"minibank/internal/adapters/persistence/repositories"
	"minibank/internal/core/domain"
)

// FeedbackService collects service feedback entries and keeps the
// last-in-first-out review stack
type FeedbackService struct {
	feedbacks *repositories.FeedbackRepository
	reviews   *repositories.ReviewRepository
}

func NewFeedbackService(feedbacks *repositories.FeedbackRepository, reviews *repositories.ReviewRepository) *FeedbackService {
	return &FeedbackService{
		feedbacks: feedbacks,
		reviews:   reviews,
	}
}

// Submit records a feedback entry stamped with the current time
func (s *FeedbackService) Submit(username, service, text string) (*domain.ServiceFeedback, error) {
	if username == "" || service == "" || text == "" {
		return nil, domain.ErrInvalidInput
	}

	fb := &domain.ServiceFeedback{
		Username: username,
		Service:  service,
		Text:     text,
		Date:     time.Now(),
	}
	if err := s.feedbacks.Add(fb); err != nil {
		return nil, err
	}
	return fb, nil
}

// List returns feedback entries, optionally filtered by service name.
// An empty service returns everything.
func (s *FeedbackService) List(service string) []*domain.ServiceFeedback {
	return s.feedbacks.All(service)
}

// PushReview adds a quick review on top of the stack
func (s *FeedbackService) PushReview(text string) error {
	if text == "" {
		return domain.ErrInvalidInput
	}
	return s.reviews.Push(text)
}

// PopReview removes and returns the most recent review
func (s *FeedbackService) PopReview() (string, error) {
	return s.reviews.Pop()
}

// Reviews lists reviews newest first
func (s *FeedbackService) Reviews() []string {
	return s.reviews.All()
}

// Counts returns feedback and review totals
func (s *FeedbackService) Counts() (feedbacks, reviews int) {
	return s.feedbacks.Count(), s.reviews.Count()
}
