package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/core/domain"
	"minibank/internal/pkg/password"
)

func submitCustomer(t *testing.T, env *testEnv, username, nationalID string, deposit float64) {
	t.Helper()
	err := env.signup.SubmitCustomer(&domain.SignupRequest{
		Username:       username,
		FullName:       username + " Test",
		NationalID:     nationalID,
		InitialDeposit: deposit,
	}, username+"-pass")
	require.NoError(t, err)
}

func TestSignupApprovalOpensAccount(t *testing.T) {
	env := newTestEnv(t)

	submitCustomer(t, env, "alice", "111", 100)

	req, err := env.signup.ApproveNext(domain.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, "alice", req.Username)

	acc, err := env.accounts.GetByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, 1001, acc.AccountNumber)
	assert.Equal(t, 100.0, acc.Balance)

	// The applicant's chosen password works
	_, _, err = env.auth.Login("alice", "alice-pass", domain.RoleCustomer)
	require.NoError(t, err)

	// The initial deposit shows in the ledger
	txs, err := env.transaction.History(acc.AccountNumber)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, domain.TxDeposit, txs[0].Type)
	assert.Equal(t, 100.0, txs[0].Amount)
}

func TestSignupApprovalsAreFIFOWithIncreasingNumbers(t *testing.T) {
	env := newTestEnv(t)

	submitCustomer(t, env, "first", "111", 10)
	submitCustomer(t, env, "second", "222", 20)
	submitCustomer(t, env, "third", "333", 30)

	for i, want := range []string{"first", "second", "third"} {
		req, err := env.signup.ApproveNext(domain.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, want, req.Username)

		acc, err := env.accounts.GetByUsername(want)
		require.NoError(t, err)
		assert.Equal(t, 1001+i, acc.AccountNumber)
	}
}

func TestDuplicateNationalIDIsRefused(t *testing.T) {
	env := newTestEnv(t)

	submitCustomer(t, env, "alice", "111", 10)

	// Same national ID still waiting in the queue
	err := env.signup.SubmitCustomer(&domain.SignupRequest{
		Username:   "mallory",
		NationalID: "111",
	}, "pass")
	assert.ErrorIs(t, err, domain.ErrDuplicateNationalID)

	// Approved into an account: still blocked
	_, err = env.signup.ApproveNext(domain.RoleCustomer)
	require.NoError(t, err)
	err = env.signup.SubmitCustomer(&domain.SignupRequest{
		Username:   "mallory",
		NationalID: "111",
	}, "pass")
	assert.ErrorIs(t, err, domain.ErrDuplicateNationalID)
}

func TestDuplicateUsernameIsRefused(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomer(t, "alice", 100)

	err := env.signup.SubmitCustomer(&domain.SignupRequest{
		Username:   "Alice",
		NationalID: "999",
	}, "pass")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRejectNextDiscardsHead(t *testing.T) {
	env := newTestEnv(t)

	submitCustomer(t, env, "alice", "111", 10)

	req, err := env.signup.RejectNext(domain.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, "alice", req.Username)

	assert.False(t, env.users.ExistsByUsername("alice"))
	_, err = env.accounts.GetByUsername("alice")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	// A rejected national ID can try again
	submitCustomer(t, env, "alice", "111", 10)
}

func TestEmptyQueue(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.signup.Next(domain.RoleCustomer)
	assert.ErrorIs(t, err, ErrQueueEmpty)
	_, err = env.signup.ApproveNext(domain.RoleCustomer)
	assert.ErrorIs(t, err, ErrQueueEmpty)
	_, err = env.signup.RejectNext(domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrQueueEmpty)
}

func TestAdminEnrollmentGetsDefaultPassword(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.signup.SubmitAdmin(&domain.SignupRequest{Username: "newadmin"}))

	req, err := env.signup.ApproveNext(domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "newadmin", req.Username)

	admin, err := env.users.GetByUsernameAndRole("newadmin", domain.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, password.Verify("admin123", admin.PasswordDigest))
	assert.False(t, admin.LockoutExempt, "enrolled admins are subject to lockout")

	// Admins hold no ledger account
	_, err = env.accounts.GetByUsername("newadmin")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAdminQueueSkipsNationalIDGate(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomer(t, "alice", 100)

	// Admin enrollments carry no national ID and must not trip the gate
	require.NoError(t, env.signup.SubmitAdmin(&domain.SignupRequest{Username: "newadmin"}))
}

func TestStatusFor(t *testing.T) {
	env := newTestEnv(t)

	submitCustomer(t, env, "alice", "111", 10)
	require.NoError(t, env.signup.SubmitAdmin(&domain.SignupRequest{Username: "newadmin"}))

	req, waiting := env.signup.StatusFor("alice")
	assert.True(t, waiting)
	assert.Equal(t, domain.RoleCustomer, req.Role)

	req, waiting = env.signup.StatusFor("newadmin")
	assert.True(t, waiting)
	assert.Equal(t, domain.RoleAdmin, req.Role)

	_, waiting = env.signup.StatusFor("nobody")
	assert.False(t, waiting)
}
