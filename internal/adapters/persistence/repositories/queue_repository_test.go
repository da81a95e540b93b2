package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/adapters/persistence/filestore"
	"minibank/internal/core/domain"
)

func newSignupQueue(t *testing.T, role domain.Role) (*SignupQueueRepository, *filestore.Store) {
	t.Helper()
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	queue, err := NewSignupQueueRepository(store, role)
	require.NoError(t, err)
	return queue, store
}

func TestQueueIsFIFO(t *testing.T) {
	queue, _ := newSignupQueue(t, domain.RoleCustomer)

	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, queue.Enqueue(&domain.SignupRequest{Username: name, NationalID: name + "-nid"}))
	}
	assert.Equal(t, 3, queue.Len())

	head, ok := queue.Peek()
	require.True(t, ok)
	assert.Equal(t, "first", head.Username)
	assert.Equal(t, 3, queue.Len(), "peek must not remove")

	for _, want := range []string{"first", "second", "third"} {
		got, err := queue.Dequeue()
		require.NoError(t, err)
		assert.Equal(t, want, got.Username)
	}

	_, err := queue.Dequeue()
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQueueOrderSurvivesReload(t *testing.T) {
	queue, store := newSignupQueue(t, domain.RoleCustomer)

	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, queue.Enqueue(&domain.SignupRequest{Username: name, NationalID: name + "-nid"}))
	}

	reloaded, err := NewSignupQueueRepository(store, domain.RoleCustomer)
	require.NoError(t, err)

	got, err := reloaded.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "first", got.Username)
	assert.Equal(t, 2, reloaded.Len())
}

func TestQueueStampsRole(t *testing.T) {
	queue, _ := newSignupQueue(t, domain.RoleAdmin)

	require.NoError(t, queue.Enqueue(&domain.SignupRequest{Username: "newadmin"}))

	head, ok := queue.Peek()
	require.True(t, ok)
	assert.Equal(t, domain.RoleAdmin, head.Role)
}

func TestQueueLookups(t *testing.T) {
	queue, _ := newSignupQueue(t, domain.RoleCustomer)

	require.NoError(t, queue.Enqueue(&domain.SignupRequest{Username: "Waiting", NationalID: "111"}))

	assert.True(t, queue.HasUsername("waiting"))
	assert.False(t, queue.HasUsername("other"))
	assert.True(t, queue.HasNationalID("111"))
	assert.False(t, queue.HasNationalID("222"))

	req, ok := queue.FindByUsername("waiting")
	require.True(t, ok)
	assert.Equal(t, "Waiting", req.Username)
}
