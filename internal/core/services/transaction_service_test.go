package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/core/domain"
)

func TestHistoryUnknownAccount(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.transaction.History(9999)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestHistoryFilters(t *testing.T) {
	env := newTestEnv(t)
	acc := env.seedCustomer(t, "alice", 1000)

	_, err := env.account.Deposit(acc.AccountNumber, 100)
	require.NoError(t, err)
	_, err = env.account.Withdraw(acc.AccountNumber, 40)
	require.NoError(t, err)
	_, err = env.account.Deposit(acc.AccountNumber, 40)
	require.NoError(t, err)

	byType, err := env.transaction.ByType(acc.AccountNumber, "deposit")
	require.NoError(t, err)
	assert.Len(t, byType, 2)

	byAmount, err := env.transaction.ByAmount(acc.AccountNumber, 40)
	require.NoError(t, err)
	assert.Len(t, byAmount, 2)

	now := time.Now()
	inRange, err := env.transaction.ByDateRange(acc.AccountNumber, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, inRange, 3)

	empty, err := env.transaction.ByDateRange(acc.AccountNumber, now.Add(time.Hour), now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMonthlyStatement(t *testing.T) {
	env := newTestEnv(t)
	acc := env.seedCustomer(t, "alice", 1000)

	_, err := env.account.Deposit(acc.AccountNumber, 200)
	require.NoError(t, err)
	_, err = env.account.Withdraw(acc.AccountNumber, 50)
	require.NoError(t, err)

	now := time.Now()
	st, err := env.transaction.MonthlyStatement(acc.AccountNumber, now.Year(), now.Month())
	require.NoError(t, err)

	assert.Len(t, st.Transactions, 2)
	assert.Equal(t, 200.0, st.TotalIn)
	assert.Equal(t, 50.0, st.TotalOut)
	assert.Equal(t, 1150.0, st.ClosingBalance)

	// A month with no activity yields an empty statement
	previous := now.AddDate(0, 0, -40)
	st, err = env.transaction.MonthlyStatement(acc.AccountNumber, previous.Year(), previous.Month())
	require.NoError(t, err)
	assert.Empty(t, st.Transactions)
	assert.Zero(t, st.TotalIn)
}
