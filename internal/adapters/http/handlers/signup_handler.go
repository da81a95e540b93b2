package handlers

import (
	"errors"
	"strings"

	"minibank/internal/core/domain"
	"minibank/internal/core/services"
	"minibank/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SignupHandler handles the account-opening and admin-enrollment queues
type SignupHandler struct {
	signupService *services.SignupService
}

func NewSignupHandler(signupService *services.SignupService) *SignupHandler {
	return &SignupHandler{signupService: signupService}
}

// CustomerSignupRequest represents an account-opening request body
type CustomerSignupRequest struct {
	Username       string  `json:"username"`
	Password       string  `json:"password"`
	FullName       string  `json:"full_name"`
	NationalID     string  `json:"national_id"`
	InitialDeposit float64 `json:"initial_deposit"`
	Phone          string  `json:"phone"`
	Address        string  `json:"address"`
}

// AdminEnrollRequest represents an administrator enrollment body
type AdminEnrollRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// DecisionRequest carries the head-of-queue decision
type DecisionRequest struct {
	Approve bool `json:"approve"`
}

// SubmitCustomer queues an account-opening request
func (h *SignupHandler) SubmitCustomer(c *fiber.Ctx) error {
	var req CustomerSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Username == "" {
		return response.BadRequest(c, "Username is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}
	if req.NationalID == "" {
		return response.BadRequest(c, "National ID is required")
	}

	signup := &domain.SignupRequest{
		Username:       strings.TrimSpace(req.Username),
		FullName:       strings.TrimSpace(req.FullName),
		NationalID:     strings.TrimSpace(req.NationalID),
		InitialDeposit: req.InitialDeposit,
		Phone:          req.Phone,
		Address:        req.Address,
	}

	if err := h.signupService.SubmitCustomer(signup, req.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			return response.Conflict(c, "Username already taken or pending approval")
		case errors.Is(err, domain.ErrDuplicateNationalID):
			return response.Conflict(c, "National ID already registered or pending approval")
		case errors.Is(err, domain.ErrInvalidAmount):
			return response.BadRequest(c, "Initial deposit cannot be negative")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Missing required fields")
		default:
			return response.InternalServerError(c, "Failed to submit signup request")
		}
	}

	return response.Created(c, "Signup request submitted, awaiting approval", fiber.Map{
		"username": signup.Username,
	})
}

// SubmitAdmin queues an administrator enrollment
func (h *SignupHandler) SubmitAdmin(c *fiber.Ctx) error {
	var req AdminEnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Username == "" {
		return response.BadRequest(c, "Username is required")
	}

	signup := &domain.SignupRequest{
		Username: strings.TrimSpace(req.Username),
		FullName: strings.TrimSpace(req.FullName),
	}

	if err := h.signupService.SubmitAdmin(signup); err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			return response.Conflict(c, "Username already taken or pending approval")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Missing required fields")
		default:
			return response.InternalServerError(c, "Failed to submit enrollment")
		}
	}

	return response.Created(c, "Administrator enrollment submitted", fiber.Map{
		"username": signup.Username,
	})
}

// Next returns the head of the queue without removing it
func (h *SignupHandler) Next(c *fiber.Ctx) error {
	req, err := h.signupService.Next(h.roleParam(c))
	if err != nil {
		return response.NotFound(c, "No pending requests")
	}
	return response.Success(c, "Next request retrieved", req)
}

// Pending lists every waiting request, oldest first
func (h *SignupHandler) Pending(c *fiber.Ctx) error {
	return response.Success(c, "Pending requests retrieved", h.signupService.Pending(h.roleParam(c)))
}

// Decide approves or rejects the head of the queue
func (h *SignupHandler) Decide(c *fiber.Ctx) error {
	var req DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	role := h.roleParam(c)

	if !req.Approve {
		rejected, err := h.signupService.RejectNext(role)
		if err != nil {
			return response.NotFound(c, "No pending requests")
		}
		return response.Success(c, "Request rejected", rejected)
	}

	approved, err := h.signupService.ApproveNext(role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQueueEmpty):
			return response.NotFound(c, "No pending requests")
		case errors.Is(err, domain.ErrDuplicateEntry):
			return response.Conflict(c, "Username already exists")
		default:
			return response.InternalServerError(c, "Failed to approve request")
		}
	}
	return response.Success(c, "Request approved", approved)
}

// Status reports whether the authenticated username is still queued
func (h *SignupHandler) Status(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		return response.BadRequest(c, "Username query parameter is required")
	}

	req, waiting := h.signupService.StatusFor(username)
	if !waiting {
		return response.Success(c, "No pending request for this username", fiber.Map{
			"pending": false,
		})
	}
	return response.Success(c, "Request is awaiting approval", fiber.Map{
		"pending": true,
		"role":    req.Role,
	})
}

func (h *SignupHandler) roleParam(c *fiber.Ctx) domain.Role {
	if strings.EqualFold(c.Params("role"), "admin") {
		return domain.RoleAdmin
	}
	return domain.RoleCustomer
}
