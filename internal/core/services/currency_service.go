package services

import (
	"errors"

	"minibank/internal/adapters/persistence/repositories"
	"minibank/internal/core/domain"
)

var (
	ErrUnknownCurrency = errors.New("unknown currency code")
	ErrInvalidRate     = errors.New("exchange rates must be positive")
)

// CurrencyService converts OMR balances into the supported foreign
// currencies using the operator-maintained rate table
type CurrencyService struct {
	rates    *repositories.RateRepository
	accounts *repositories.AccountRepository
}

func NewCurrencyService(rates *repositories.RateRepository, accounts *repositories.AccountRepository) *CurrencyService {
	return &CurrencyService{
		rates:    rates,
		accounts: accounts,
	}
}

// Rates returns the current rate table
func (s *CurrencyService) Rates() domain.ExchangeRates {
	return s.rates.Get()
}

// SetRates replaces the rate table. All three rates must be positive.
func (s *CurrencyService) SetRates(rates domain.ExchangeRates) error {
	if rates.USD <= 0 || rates.EUR <= 0 || rates.SAR <= 0 {
		return ErrInvalidRate
	}
	return s.rates.Set(rates)
}

// Convert converts an OMR amount to one currency
func (s *CurrencyService) Convert(amount float64, currency domain.Currency) (float64, error) {
	if amount < 0 {
		return 0, domain.ErrInvalidAmount
	}

	rates := s.rates.Get()
	switch currency {
	case domain.CurrencyUSD:
		return amount * rates.USD, nil
	case domain.CurrencyEUR:
		return amount * rates.EUR, nil
	case domain.CurrencySAR:
		return amount * rates.SAR, nil
	default:
		return 0, ErrUnknownCurrency
	}
}

// Conversion shows one OMR amount in every supported currency
type Conversion struct {
	OMR float64 `json:"omr"`
	USD float64 `json:"usd"`
	EUR float64 `json:"eur"`
	SAR float64 `json:"sar"`
}

// ConvertAll converts an OMR amount to every supported currency
func (s *CurrencyService) ConvertAll(amount float64) (*Conversion, error) {
	if amount < 0 {
		return nil, domain.ErrInvalidAmount
	}

	rates := s.rates.Get()
	return &Conversion{
		OMR: amount,
		USD: amount * rates.USD,
		EUR: amount * rates.EUR,
		SAR: amount * rates.SAR,
	}, nil
}

// BalanceReport converts an account balance to every supported currency
func (s *CurrencyService) BalanceReport(accountNumber int) (*Conversion, error) {
	acc, err := s.accounts.GetByNumber(accountNumber)
	if err != nil {
		return nil, err
	}
	return s.ConvertAll(acc.Balance)
}
