package handlers

import (
	"errors"

	"minibank/internal/core/domain"
	"minibank/internal/core/services"
	"minibank/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FeedbackHandler handles service feedback and the quick-review stack
type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// FeedbackRequest represents a feedback submission body
type FeedbackRequest struct {
	Service string `json:"service"`
	Text    string `json:"text"`
}

// ReviewRequest represents a quick review body
type ReviewRequest struct {
	Text string `json:"text"`
}

// Submit records feedback from the authenticated customer
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	username, ok := c.Locals("username").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	fb, err := h.feedbackService.Submit(username, req.Service, req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Service and text are required")
		}
		return response.InternalServerError(c, "Failed to submit feedback")
	}

	return response.Created(c, "Feedback submitted", fb)
}

// List returns feedback entries, optionally filtered by service (admin)
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	return response.Success(c, "Feedback retrieved", h.feedbackService.List(c.Query("service")))
}

// PushReview adds a quick review to the top of the stack
func (h *FeedbackHandler) PushReview(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.feedbackService.PushReview(req.Text); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Review text is required")
		}
		return response.InternalServerError(c, "Failed to add review")
	}

	return response.Created(c, "Review added", nil)
}

// PopReview removes and returns the most recent review (admin)
func (h *FeedbackHandler) PopReview(c *fiber.Ctx) error {
	review, err := h.feedbackService.PopReview()
	if err != nil {
		return response.NotFound(c, "No reviews to pop")
	}
	return response.Success(c, "Review removed", fiber.Map{"review": review})
}

// Reviews lists reviews newest first
func (h *FeedbackHandler) Reviews(c *fiber.Ctx) error {
	return response.Success(c, "Reviews retrieved", h.feedbackService.Reviews())
}
