package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	svc := NewSessionService(10)

	id := svc.Create("alice", "Customer")
	require.NotEmpty(t, id)
	assert.Equal(t, 1, svc.Count())

	sess, err := svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username)
	assert.Equal(t, "Customer", sess.Role)

	require.NoError(t, svc.Touch(id))

	svc.Revoke(id)
	assert.Zero(t, svc.Count())

	_, err = svc.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.Touch(id), ErrSessionNotFound)
}

func TestRevokeUserEndsAllSessions(t *testing.T) {
	svc := NewSessionService(10)

	svc.Create("alice", "Customer")
	svc.Create("alice", "Customer")
	keep := svc.Create("bob", "Customer")

	assert.Equal(t, 2, svc.RevokeUser("alice"))
	assert.Equal(t, 1, svc.Count())

	_, err := svc.Get(keep)
	assert.NoError(t, err)
}

func TestSessionIDsAreUnique(t *testing.T) {
	svc := NewSessionService(10)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := svc.Create("alice", "Customer")
		require.False(t, seen[id])
		seen[id] = true
	}
}
