package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/core/domain"
	"minibank/internal/pkg/password"
)

func TestEnsureBootstrapAdmin(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.auth.EnsureBootstrapAdmin())

	admin, err := env.users.GetByUsername("q")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.True(t, admin.LockoutExempt)
	assert.True(t, password.Verify("q", admin.PasswordDigest))

	// Idempotent
	require.NoError(t, env.auth.EnsureBootstrapAdmin())
}

func TestBootstrapAdminIgnoresCustomerWithSameName(t *testing.T) {
	env := newTestEnv(t)

	customer := &domain.User{
		Username:       "q",
		PasswordDigest: password.Digest("not-the-admin"),
		Role:           domain.RoleCustomer,
	}
	require.NoError(t, env.users.Create(customer))

	// The name is already taken system-wide, so seeding surfaces the
	// conflict instead of granting the customer the lockout exemption
	assert.ErrorIs(t, env.auth.EnsureBootstrapAdmin(), domain.ErrDuplicateEntry)

	got, err := env.users.GetByUsername("q")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, got.Role)
	assert.False(t, got.LockoutExempt)
}

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomer(t, "alice", 100)

	user, tokens, err := env.auth.Login("alice", "alice-pass", domain.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, 1, env.sessions.Count())
}

func TestLoginWrongRoleIsRefused(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomer(t, "alice", 100)

	_, _, err := env.auth.Login("alice", "alice-pass", domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestFailedAttemptsResetOnSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomer(t, "alice", 100)

	// Two failures, then a success: counter goes back to zero
	for i := 0; i < 2; i++ {
		_, _, err := env.auth.Login("alice", "wrong", domain.RoleCustomer)
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}

	_, _, err := env.auth.Login("alice", "alice-pass", domain.RoleCustomer)
	require.NoError(t, err)

	user, err := env.users.GetByUsername("alice")
	require.NoError(t, err)
	assert.Zero(t, user.FailedAttempts)
	assert.False(t, user.IsLocked)
}

func TestThirdFailureLocksAccount(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomer(t, "alice", 100)

	_, _, err := env.auth.Login("alice", "wrong", domain.RoleCustomer)
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, _, err = env.auth.Login("alice", "wrong", domain.RoleCustomer)
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, _, err = env.auth.Login("alice", "wrong", domain.RoleCustomer)
	require.ErrorIs(t, err, ErrAccountLocked)

	// The correct password no longer works
	_, _, err = env.auth.Login("alice", "alice-pass", domain.RoleCustomer)
	assert.ErrorIs(t, err, ErrAccountLocked)

	user, err := env.users.GetByUsername("alice")
	require.NoError(t, err)
	assert.True(t, user.IsLocked)
	assert.Equal(t, 3, user.FailedAttempts)
}

func TestBootstrapAdminIsLockoutExempt(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.auth.EnsureBootstrapAdmin())

	for i := 0; i < 5; i++ {
		_, _, err := env.auth.Login("q", "wrong", domain.RoleAdmin)
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}

	_, _, err := env.auth.Login("q", "q", domain.RoleAdmin)
	assert.NoError(t, err)
}

func TestUnlock(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomer(t, "alice", 100)

	for i := 0; i < 3; i++ {
		env.auth.Login("alice", "wrong", domain.RoleCustomer)
	}

	locked := env.auth.ListLocked()
	require.Len(t, locked, 1)
	assert.Equal(t, "alice", locked[0].Username)

	// Confirmation is required
	require.ErrorIs(t, env.auth.Unlock("alice", false), ErrConfirmationNeeded)
	require.NoError(t, env.auth.Unlock("alice", true))

	_, _, err := env.auth.Login("alice", "alice-pass", domain.RoleCustomer)
	assert.NoError(t, err)
	assert.Empty(t, env.auth.ListLocked())

	// Unlocking an unlocked account is an error
	assert.ErrorIs(t, env.auth.Unlock("alice", true), ErrAccountNotLocked)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomer(t, "alice", 100)

	require.ErrorIs(t, env.auth.ChangePassword("alice", "wrong", "newpass"), ErrWrongOldPassword)
	require.NoError(t, env.auth.ChangePassword("alice", "alice-pass", "newpass"))

	_, _, err := env.auth.Login("alice", "newpass", domain.RoleCustomer)
	assert.NoError(t, err)
	_, _, err = env.auth.Login("alice", "alice-pass", domain.RoleCustomer)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomer(t, "alice", 100)

	_, tokens, err := env.auth.Login("alice", "alice-pass", domain.RoleCustomer)
	require.NoError(t, err)

	access, err := env.auth.Refresh(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
}

func TestLogoutEndsSession(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomer(t, "alice", 100)

	_, tokens, err := env.auth.Login("alice", "alice-pass", domain.RoleCustomer)
	require.NoError(t, err)
	require.Equal(t, 1, env.sessions.Count())

	// Find the session via the refresh token path
	_, err = env.auth.Refresh(tokens.RefreshToken)
	require.NoError(t, err)

	env.sessions.RevokeUser("alice")
	assert.Zero(t, env.sessions.Count())

	_, err = env.auth.Refresh(tokens.RefreshToken)
	assert.Error(t, err)
}
