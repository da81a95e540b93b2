package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/core/domain"
)

func TestDepositRejectsNonPositiveAmounts(t *testing.T) {
	env := newTestEnv(t)
	acc := env.seedCustomer(t, "alice", 100)

	_, err := env.account.Deposit(acc.AccountNumber, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = env.account.Deposit(acc.AccountNumber, -5)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestWithdrawRespectsMinimumBalance(t *testing.T) {
	env := newTestEnv(t)
	acc := env.seedCustomer(t, "alice", 100)

	// Would leave 40, below the 50 minimum
	_, err := env.account.Withdraw(acc.AccountNumber, 60)
	require.ErrorIs(t, err, domain.ErrBelowMinimum)

	// Leaves 60, fine
	balance, err := env.account.Withdraw(acc.AccountNumber, 40)
	require.NoError(t, err)
	assert.Equal(t, 60.0, balance)
}

func TestMoneyMovementWritesLedgerEntries(t *testing.T) {
	env := newTestEnv(t)
	acc := env.seedCustomer(t, "alice", 100)

	_, err := env.account.Deposit(acc.AccountNumber, 50)
	require.NoError(t, err)
	_, err = env.account.Withdraw(acc.AccountNumber, 30)
	require.NoError(t, err)

	txs, err := env.transaction.History(acc.AccountNumber)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, domain.TxDeposit, txs[0].Type)
	assert.Equal(t, 50.0, txs[0].Amount)
	assert.Equal(t, 150.0, txs[0].Balance)

	assert.Equal(t, domain.TxWithdraw, txs[1].Type)
	assert.Equal(t, 30.0, txs[1].Amount)
	assert.Equal(t, 120.0, txs[1].Balance)
}

func TestTransferWritesBothLegs(t *testing.T) {
	env := newTestEnv(t)
	src := env.seedCustomer(t, "alice", 200)
	dst := env.seedCustomer(t, "bob", 100)

	fromBalance, toBalance, err := env.account.Transfer(src.AccountNumber, dst.AccountNumber, 50)
	require.NoError(t, err)
	assert.Equal(t, 150.0, fromBalance)
	assert.Equal(t, 150.0, toBalance)

	srcTxs, err := env.transaction.History(src.AccountNumber)
	require.NoError(t, err)
	require.Len(t, srcTxs, 1)
	assert.Equal(t, domain.TxTransferOut, srcTxs[0].Type)

	dstTxs, err := env.transaction.History(dst.AccountNumber)
	require.NoError(t, err)
	require.Len(t, dstTxs, 1)
	assert.Equal(t, domain.TxTransferIn, dstTxs[0].Type)
}

func TestTransferToSameAccountIsRefused(t *testing.T) {
	env := newTestEnv(t)
	acc := env.seedCustomer(t, "alice", 200)

	_, _, err := env.account.Transfer(acc.AccountNumber, acc.AccountNumber, 10)
	assert.ErrorIs(t, err, domain.ErrSameAccount)
}

func TestFailedTransferWritesNoLedgerEntries(t *testing.T) {
	env := newTestEnv(t)
	src := env.seedCustomer(t, "alice", 60)
	dst := env.seedCustomer(t, "bob", 100)

	_, _, err := env.account.Transfer(src.AccountNumber, dst.AccountNumber, 50)
	require.ErrorIs(t, err, domain.ErrBelowMinimum)

	srcTxs, err := env.transaction.History(src.AccountNumber)
	require.NoError(t, err)
	assert.Empty(t, srcTxs)
	dstTxs, err := env.transaction.History(dst.AccountNumber)
	require.NoError(t, err)
	assert.Empty(t, dstTxs)
}

func TestUpdateInfoLeavesEmptyFieldsAlone(t *testing.T) {
	env := newTestEnv(t)
	acc := env.seedCustomer(t, "alice", 100)

	updated, err := env.account.UpdateInfo(acc.AccountNumber, "99112233", "")
	require.NoError(t, err)
	assert.Equal(t, "99112233", updated.Phone)
	assert.Equal(t, acc.Address, updated.Address)
}

func TestDeleteAccountKeepsIdentity(t *testing.T) {
	env := newTestEnv(t)
	acc := env.seedCustomer(t, "alice", 100)

	_, _, err := env.auth.Login("alice", "alice-pass", domain.RoleCustomer)
	require.NoError(t, err)

	require.ErrorIs(t, env.account.Delete(acc.AccountNumber, false), ErrConfirmationNeeded)
	require.NoError(t, env.account.Delete(acc.AccountNumber, true))

	_, err = env.account.Details(acc.AccountNumber)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	// Only the account record goes; the login itself stays on file
	assert.True(t, env.users.ExistsByUsername("alice"))
	assert.Zero(t, env.sessions.Count())
}

func TestStatsAndReports(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.auth.EnsureBootstrapAdmin())
	env.seedCustomer(t, "alice", 100)
	env.seedCustomer(t, "bob", 300)
	env.seedCustomer(t, "carol", 200)

	stats := env.account.Stats()
	assert.Equal(t, 3, stats.TotalAccounts)
	assert.Equal(t, 600.0, stats.TotalBalance)
	assert.Equal(t, 200.0, stats.AverageBalance)
	assert.Equal(t, 3, stats.TotalCustomers)
	assert.Equal(t, 1, stats.TotalAdmins)

	top := env.account.TopRichest(2)
	require.Len(t, top, 2)
	assert.Equal(t, "bob", top[0].Username)
	assert.Equal(t, "carol", top[1].Username)

	above := env.account.AboveBalance(150)
	assert.Len(t, above, 2)
}
