package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/core/domain"
)

func TestLoanEligibilityRequiresMinimumBalance(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomer(t, "alice", 4999)

	_, err := env.loan.Submit("alice", 1000, "car")
	assert.ErrorIs(t, err, ErrLoanBalanceTooLow)

	env.seedCustomer(t, "bob", 5000)
	loan, err := env.loan.Submit("bob", 1000, "car")
	require.NoError(t, err)
	assert.Equal(t, domain.LoanPending, loan.Status)
}

func TestLoanRequiresAccount(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.loan.Submit("ghost", 1000, "car")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestOneActiveLoanPerUser(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomer(t, "alice", 6000)

	_, err := env.loan.Submit("alice", 1000, "car")
	require.NoError(t, err)

	// A pending request blocks a second submission
	_, err = env.loan.Submit("alice", 500, "boat")
	assert.ErrorIs(t, err, ErrActiveLoanExists)
}

func TestLoanApprovalCreditsAccount(t *testing.T) {
	env := newTestEnv(t)
	acc := env.seedCustomer(t, "alice", 6000)

	_, err := env.loan.Submit("alice", 1000, "car")
	require.NoError(t, err)

	loan, err := env.loan.Decide("alice", true)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanApproved, loan.Status)
	assert.Equal(t, 0.05, loan.InterestRate)

	got, err := env.account.Details(acc.AccountNumber)
	require.NoError(t, err)
	assert.Equal(t, 7000.0, got.Balance)

	txs, err := env.transaction.History(acc.AccountNumber)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, domain.TxLoanApproved, txs[0].Type)
	assert.Equal(t, 1000.0, txs[0].Amount)

	// Approved is terminal: no further submissions ever
	_, err = env.loan.Submit("alice", 500, "boat")
	assert.ErrorIs(t, err, ErrActiveLoanExists)
}

func TestLoanRejectionAllowsResubmission(t *testing.T) {
	env := newTestEnv(t)
	acc := env.seedCustomer(t, "alice", 6000)

	_, err := env.loan.Submit("alice", 1000, "car")
	require.NoError(t, err)

	loan, err := env.loan.Decide("alice", false)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanRejected, loan.Status)

	// Balance untouched, no ledger entry
	got, err := env.account.Details(acc.AccountNumber)
	require.NoError(t, err)
	assert.Equal(t, 6000.0, got.Balance)

	// A rejected loan does not block a new request
	_, err = env.loan.Submit("alice", 800, "boat")
	assert.NoError(t, err)
}

func TestFailedApprovalLeavesLoanPending(t *testing.T) {
	env := newTestEnv(t)
	acc := env.seedCustomer(t, "alice", 6000)

	_, err := env.loan.Submit("alice", 1000, "car")
	require.NoError(t, err)

	// Account disappears before the decision; the credit cannot land
	require.NoError(t, env.account.Delete(acc.AccountNumber, true))

	_, err = env.loan.Decide("alice", true)
	require.Error(t, err)

	// The request is still pending, not stranded in a terminal state
	loans := env.loan.ByUsername("alice")
	require.Len(t, loans, 1)
	assert.Equal(t, domain.LoanPending, loans[0].Status)
}

func TestDecideWithoutPendingLoan(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomer(t, "alice", 6000)

	_, err := env.loan.Decide("alice", true)
	assert.ErrorIs(t, err, ErrNoPendingLoan)
}

func TestLoanStats(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomer(t, "alice", 6000)
	env.seedCustomer(t, "bob", 6000)

	_, err := env.loan.Submit("alice", 1000, "car")
	require.NoError(t, err)
	_, err = env.loan.Submit("bob", 2000, "house")
	require.NoError(t, err)
	_, err = env.loan.Decide("alice", true)
	require.NoError(t, err)

	stats := env.loan.Stats()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Approved)
	assert.Zero(t, stats.Rejected)
	assert.InDelta(t, 50.0, stats.ProjectedInterest, 0.001)
}
