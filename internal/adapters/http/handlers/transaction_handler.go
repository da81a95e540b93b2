package handlers

import (
	"time"

	"minibank/internal/core/domain"
	"minibank/internal/core/services"
	"minibank/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TransactionHandler serves per-account ledger histories
type TransactionHandler struct {
	transactionService *services.TransactionService
	accountService     *services.AccountService
}

func NewTransactionHandler(transactionService *services.TransactionService, accountService *services.AccountService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		accountService:     accountService,
	}
}

// History returns the ledger for an account, optionally filtered.
// Customers can only read their own ledger; admins can read any.
func (h *TransactionHandler) History(c *fiber.Ctx) error {
	number, err := h.resolveAccount(c)
	if err != nil {
		return response.NotFound(c, "Account not found")
	}
	if !h.mayRead(c, number) {
		return response.Forbidden(c, "Cannot read another account's history")
	}

	// Filters are mutually exclusive; first match wins
	if from, to, ok := dateRange(c); ok {
		txs, err := h.transactionService.ByDateRange(number, from, to)
		if err != nil {
			return response.NotFound(c, "Account not found")
		}
		return response.Success(c, "Transactions retrieved", txs)
	}

	if q := c.Query("type"); q != "" {
		txs, err := h.transactionService.ByType(number, q)
		if err != nil {
			return response.NotFound(c, "Account not found")
		}
		return response.Success(c, "Transactions retrieved", txs)
	}

	if c.Query("amount") != "" {
		txs, err := h.transactionService.ByAmount(number, c.QueryFloat("amount"))
		if err != nil {
			return response.NotFound(c, "Account not found")
		}
		return response.Success(c, "Transactions retrieved", txs)
	}

	txs, err := h.transactionService.History(number)
	if err != nil {
		return response.NotFound(c, "Account not found")
	}
	return response.Success(c, "Transactions retrieved", txs)
}

// Statement returns the one-month summary for an account
func (h *TransactionHandler) Statement(c *fiber.Ctx) error {
	number, err := h.resolveAccount(c)
	if err != nil {
		return response.NotFound(c, "Account not found")
	}
	if !h.mayRead(c, number) {
		return response.Forbidden(c, "Cannot read another account's statement")
	}

	now := time.Now()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 {
		return response.BadRequest(c, "Month must be between 1 and 12")
	}

	st, err := h.transactionService.MonthlyStatement(number, year, time.Month(month))
	if err != nil {
		return response.NotFound(c, "Account not found")
	}
	return response.Success(c, "Statement generated", st)
}

// resolveAccount picks the account number from the path, falling back to
// the caller's own account
func (h *TransactionHandler) resolveAccount(c *fiber.Ctx) (int, error) {
	if number, err := c.ParamsInt("number"); err == nil {
		return number, nil
	}

	username, ok := c.Locals("username").(string)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	acc, err := h.accountService.DetailsByUsername(username)
	if err != nil {
		return 0, err
	}
	return acc.AccountNumber, nil
}

func (h *TransactionHandler) mayRead(c *fiber.Ctx, number int) bool {
	if role, _ := c.Locals("role").(string); role == string(domain.RoleAdmin) {
		return true
	}

	username, ok := c.Locals("username").(string)
	if !ok {
		return false
	}
	acc, err := h.accountService.DetailsByUsername(username)
	if err != nil {
		return false
	}
	return acc.AccountNumber == number
}

func dateRange(c *fiber.Ctx) (from, to time.Time, ok bool) {
	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, false
	}

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	to, err = time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	// Include the whole end day
	to = to.Add(24*time.Hour - time.Nanosecond)
	return from, to, true
}
