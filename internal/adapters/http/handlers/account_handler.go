package handlers

import (
	"errors"

	"minibank/internal/core/domain"
	"minibank/internal/core/services"
	"minibank/internal/pkg/pagination"
	"minibank/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AccountHandler handles ledger account endpoints
type AccountHandler struct {
	accountService *services.AccountService
}

func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// AmountRequest carries a single money amount
type AmountRequest struct {
	Amount float64 `json:"amount"`
}

// TransferRequest represents a transfer request body
type TransferRequest struct {
	ToAccount int     `json:"to_account"`
	Amount    float64 `json:"amount"`
}

// UpdateInfoRequest carries updatable contact details
type UpdateInfoRequest struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ConfirmRequest guards destructive operations
type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}

// My returns the authenticated customer's account
func (h *AccountHandler) My(c *fiber.Ctx) error {
	acc, err := h.ownAccount(c)
	if err != nil {
		return response.NotFound(c, "Account not found")
	}
	return response.Success(c, "Account retrieved", acc)
}

// Deposit credits the authenticated customer's account
func (h *AccountHandler) Deposit(c *fiber.Ctx) error {
	acc, err := h.ownAccount(c)
	if err != nil {
		return response.NotFound(c, "Account not found")
	}

	var req AmountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	balance, err := h.accountService.Deposit(acc.AccountNumber, req.Amount)
	if err != nil {
		return h.moneyError(c, err)
	}

	return response.Success(c, "Deposit successful", fiber.Map{
		"account_number": acc.AccountNumber,
		"balance":        balance,
	})
}

// Withdraw debits the authenticated customer's account
func (h *AccountHandler) Withdraw(c *fiber.Ctx) error {
	acc, err := h.ownAccount(c)
	if err != nil {
		return response.NotFound(c, "Account not found")
	}

	var req AmountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	balance, err := h.accountService.Withdraw(acc.AccountNumber, req.Amount)
	if err != nil {
		return h.moneyError(c, err)
	}

	return response.Success(c, "Withdrawal successful", fiber.Map{
		"account_number": acc.AccountNumber,
		"balance":        balance,
	})
}

// Transfer moves money from the authenticated customer's account
func (h *AccountHandler) Transfer(c *fiber.Ctx) error {
	acc, err := h.ownAccount(c)
	if err != nil {
		return response.NotFound(c, "Account not found")
	}

	var req TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	fromBalance, _, err := h.accountService.Transfer(acc.AccountNumber, req.ToAccount, req.Amount)
	if err != nil {
		return h.moneyError(c, err)
	}

	return response.Success(c, "Transfer successful", fiber.Map{
		"account_number": acc.AccountNumber,
		"balance":        fromBalance,
	})
}

// UpdateInfo changes the authenticated customer's contact details
func (h *AccountHandler) UpdateInfo(c *fiber.Ctx) error {
	acc, err := h.ownAccount(c)
	if err != nil {
		return response.NotFound(c, "Account not found")
	}

	var req UpdateInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Phone == "" && req.Address == "" {
		return response.BadRequest(c, "Nothing to update")
	}

	updated, err := h.accountService.UpdateInfo(acc.AccountNumber, req.Phone, req.Address)
	if err != nil {
		return response.InternalServerError(c, "Failed to update account")
	}
	return response.Success(c, "Account updated", updated)
}

// Get returns one account by number (admin)
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	number, err := c.ParamsInt("number")
	if err != nil {
		return response.BadRequest(c, "Invalid account number")
	}

	acc, err := h.accountService.Details(number)
	if err != nil {
		return response.NotFound(c, "Account not found")
	}
	return response.Success(c, "Account retrieved", acc)
}

// List returns a page of all accounts (admin)
func (h *AccountHandler) List(c *fiber.Ctx) error {
	all := h.accountService.All()
	params := pagination.Parse(c)

	result := pagination.Paginate(params, len(all), func(from, to int) interface{} {
		return all[from:to]
	})
	return response.Success(c, "Accounts retrieved", result)
}

// Search finds accounts by national ID or username (admin)
func (h *AccountHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return response.BadRequest(c, "Search query is required")
	}
	return response.Success(c, "Search results", h.accountService.Search(query))
}

// Delete removes an account and its login (admin)
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	number, err := c.ParamsInt("number")
	if err != nil {
		return response.BadRequest(c, "Invalid account number")
	}

	var req ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.accountService.Delete(number, req.Confirm); err != nil {
		switch {
		case errors.Is(err, services.ErrConfirmationNeeded):
			return response.BadRequest(c, "Deletion requires confirmation")
		case errors.Is(err, domain.ErrAccountNotFound):
			return response.NotFound(c, "Account not found")
		default:
			return response.InternalServerError(c, "Failed to delete account")
		}
	}
	return response.Success(c, "Account deleted", nil)
}

// Stats returns the bank-wide summary (admin)
func (h *AccountHandler) Stats(c *fiber.Ctx) error {
	return response.Success(c, "Statistics retrieved", h.accountService.Stats())
}

// TopRichest returns the highest balances (admin)
func (h *AccountHandler) TopRichest(c *fiber.Ctx) error {
	n := c.QueryInt("n", 5)
	if n < 1 {
		n = 5
	}
	return response.Success(c, "Top accounts retrieved", h.accountService.TopRichest(n))
}

// AboveBalance returns accounts above a balance threshold (admin)
func (h *AccountHandler) AboveBalance(c *fiber.Ctx) error {
	threshold := c.QueryFloat("min", 0)
	return response.Success(c, "Accounts retrieved", h.accountService.AboveBalance(threshold))
}

// Export writes the account book to the CSV export file (admin)
func (h *AccountHandler) Export(c *fiber.Ctx) error {
	path, err := h.accountService.Export()
	if err != nil {
		return response.InternalServerError(c, "Failed to export accounts")
	}
	return response.Success(c, "Accounts exported", fiber.Map{"path": path})
}

func (h *AccountHandler) ownAccount(c *fiber.Ctx) (*domain.Account, error) {
	username, ok := c.Locals("username").(string)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return h.accountService.DetailsByUsername(username)
}

func (h *AccountHandler) moneyError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return response.BadRequest(c, "Amount must be positive")
	case errors.Is(err, domain.ErrBelowMinimum):
		return response.BadRequest(c, "Balance cannot fall below the minimum")
	case errors.Is(err, domain.ErrSameAccount):
		return response.BadRequest(c, "Cannot transfer to the same account")
	case errors.Is(err, domain.ErrAccountNotFound):
		return response.NotFound(c, "Account not found")
	default:
		return response.InternalServerError(c, "Operation failed")
	}
}
