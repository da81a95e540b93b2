package handlers

import (
	"errors"
	"strings"

	"minibank/internal/core/domain"
	"minibank/internal/core/services"
	"minibank/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CurrencyHandler handles the exchange rate table and conversions
type CurrencyHandler struct {
	currencyService *services.CurrencyService
	accountService  *services.AccountService
}

func NewCurrencyHandler(currencyService *services.CurrencyService, accountService *services.AccountService) *CurrencyHandler {
	return &CurrencyHandler{
		currencyService: currencyService,
		accountService:  accountService,
	}
}

// RatesRequest represents a rate table update body
type RatesRequest struct {
	USD float64 `json:"usd"`
	EUR float64 `json:"eur"`
	SAR float64 `json:"sar"`
}

// Rates returns the current rate table
func (h *CurrencyHandler) Rates(c *fiber.Ctx) error {
	return response.Success(c, "Rates retrieved", h.currencyService.Rates())
}

// SetRates replaces the rate table (admin)
func (h *CurrencyHandler) SetRates(c *fiber.Ctx) error {
	var req RatesRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	rates := domain.ExchangeRates{USD: req.USD, EUR: req.EUR, SAR: req.SAR}
	if err := h.currencyService.SetRates(rates); err != nil {
		if errors.Is(err, services.ErrInvalidRate) {
			return response.BadRequest(c, "All rates must be positive")
		}
		return response.InternalServerError(c, "Failed to update rates")
	}

	return response.Success(c, "Rates updated", rates)
}

// Convert converts an OMR amount, to one currency or all of them
func (h *CurrencyHandler) Convert(c *fiber.Ctx) error {
	amount := c.QueryFloat("amount", -1)
	if amount < 0 {
		return response.BadRequest(c, "A non-negative amount is required")
	}

	if code := c.Query("currency"); code != "" {
		converted, err := h.currencyService.Convert(amount, domain.Currency(strings.ToUpper(code)))
		if err != nil {
			if errors.Is(err, services.ErrUnknownCurrency) {
				return response.BadRequest(c, "Unknown currency code")
			}
			return response.BadRequest(c, "Invalid amount")
		}
		return response.Success(c, "Amount converted", fiber.Map{
			"omr":       amount,
			"currency":  strings.ToUpper(code),
			"converted": converted,
		})
	}

	conv, err := h.currencyService.ConvertAll(amount)
	if err != nil {
		return response.BadRequest(c, "Invalid amount")
	}
	return response.Success(c, "Amount converted", conv)
}

// MyBalance shows the authenticated customer's balance in every currency
func (h *CurrencyHandler) MyBalance(c *fiber.Ctx) error {
	username, ok := c.Locals("username").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	acc, err := h.accountService.DetailsByUsername(username)
	if err != nil {
		return response.NotFound(c, "Account not found")
	}

	conv, err := h.currencyService.BalanceReport(acc.AccountNumber)
	if err != nil {
		return response.NotFound(c, "Account not found")
	}
	return response.Success(c, "Balance converted", conv)
}
