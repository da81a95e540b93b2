package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/core/domain"
)

func TestDefaultRates(t *testing.T) {
	env := newTestEnv(t)

	rates := env.currency.Rates()
	assert.Equal(t, 2.60, rates.USD)
	assert.Equal(t, 2.45, rates.EUR)
	assert.Equal(t, 9.75, rates.SAR)
}

func TestConvert(t *testing.T) {
	env := newTestEnv(t)

	usd, err := env.currency.Convert(100, domain.CurrencyUSD)
	require.NoError(t, err)
	assert.InDelta(t, 260.0, usd, 0.001)

	sar, err := env.currency.Convert(10, domain.CurrencySAR)
	require.NoError(t, err)
	assert.InDelta(t, 97.5, sar, 0.001)

	_, err = env.currency.Convert(10, domain.Currency("GBP"))
	assert.ErrorIs(t, err, ErrUnknownCurrency)

	_, err = env.currency.Convert(-1, domain.CurrencyUSD)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestSetRatesValidatesAndPersists(t *testing.T) {
	env := newTestEnv(t)

	err := env.currency.SetRates(domain.ExchangeRates{USD: 0, EUR: 2.5, SAR: 9.8})
	assert.ErrorIs(t, err, ErrInvalidRate)

	custom := domain.ExchangeRates{USD: 2.7, EUR: 2.5, SAR: 9.8}
	require.NoError(t, env.currency.SetRates(custom))
	assert.Equal(t, custom, env.currency.Rates())

	loaded, err := env.store.LoadRates()
	require.NoError(t, err)
	assert.Equal(t, custom, loaded)
}

func TestBalanceReport(t *testing.T) {
	env := newTestEnv(t)
	acc := env.seedCustomer(t, "alice", 100)

	conv, err := env.currency.BalanceReport(acc.AccountNumber)
	require.NoError(t, err)
	assert.Equal(t, 100.0, conv.OMR)
	assert.InDelta(t, 260.0, conv.USD, 0.001)
	assert.InDelta(t, 245.0, conv.EUR, 0.001)
	assert.InDelta(t, 975.0, conv.SAR, 0.001)
}
