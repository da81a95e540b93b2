package handlers

import (
	"errors"

	"minibank/internal/core/domain"
	"minibank/internal/core/services"
	"minibank/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan requests and decisions
type LoanHandler struct {
	loanService *services.LoanService
}

func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// LoanRequest represents a loan submission body
type LoanRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

// LoanDecisionRequest carries the admin's decision for a username
type LoanDecisionRequest struct {
	Username string `json:"username"`
	Approve  bool   `json:"approve"`
}

// Submit files a loan request for the authenticated customer
func (h *LoanHandler) Submit(c *fiber.Ctx) error {
	username, ok := c.Locals("username").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req LoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.Submit(username, req.Amount, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be positive")
		case errors.Is(err, domain.ErrAccountNotFound):
			return response.NotFound(c, "No account found for this user")
		case errors.Is(err, services.ErrLoanBalanceTooLow):
			return response.BadRequest(c, "Balance is below the loan eligibility minimum")
		case errors.Is(err, services.ErrActiveLoanExists):
			return response.Conflict(c, "An active loan request or approved loan already exists")
		default:
			return response.InternalServerError(c, "Failed to submit loan request")
		}
	}

	return response.Created(c, "Loan request submitted", loan)
}

// Mine lists the authenticated customer's loan requests
func (h *LoanHandler) Mine(c *fiber.Ctx) error {
	username, ok := c.Locals("username").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	return response.Success(c, "Loan requests retrieved", h.loanService.ByUsername(username))
}

// Pending lists undecided loan requests (admin)
func (h *LoanHandler) Pending(c *fiber.Ctx) error {
	return response.Success(c, "Pending loans retrieved", h.loanService.Pending())
}

// All lists every loan request (admin)
func (h *LoanHandler) All(c *fiber.Ctx) error {
	return response.Success(c, "Loan requests retrieved", h.loanService.All())
}

// Decide approves or rejects a pending loan (admin)
func (h *LoanHandler) Decide(c *fiber.Ctx) error {
	var req LoanDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Username == "" {
		return response.BadRequest(c, "Username is required")
	}

	loan, err := h.loanService.Decide(req.Username, req.Approve)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoPendingLoan):
			return response.NotFound(c, "No pending loan request for this user")
		case errors.Is(err, domain.ErrAccountNotFound):
			return response.NotFound(c, "No account found for this user")
		default:
			return response.InternalServerError(c, "Failed to decide loan request")
		}
	}

	return response.Success(c, "Loan decision recorded", loan)
}

// Stats summarises the loan book (admin)
func (h *LoanHandler) Stats(c *fiber.Ctx) error {
	return response.Success(c, "Loan statistics retrieved", h.loanService.Stats())
}
