package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/core/domain"
)

func bookAppointment(t *testing.T, env *testEnv, username string) {
	t.Helper()
	require.NoError(t, env.appointment.Book(&domain.Appointment{
		Username: username,
		Service:  "Loans",
		Date:     "2026-09-01",
		Time:     "10:00",
	}))
}

func TestBookRequiresFields(t *testing.T) {
	env := newTestEnv(t)

	err := env.appointment.Book(&domain.Appointment{Username: "alice"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProcessApprove(t *testing.T) {
	env := newTestEnv(t)
	bookAppointment(t, env, "alice")

	appt, outcome, err := env.appointment.ProcessNext("approve")
	require.NoError(t, err)
	assert.Equal(t, DecisionApproved, outcome)
	assert.Equal(t, "alice", appt.Username)

	assert.Empty(t, env.appointment.Pending())
	require.Len(t, env.appointment.Approved(), 1)

	pending, approved := env.appointment.Counts()
	assert.Equal(t, 0, pending)
	assert.Equal(t, 1, approved)
}

func TestProcessReject(t *testing.T) {
	env := newTestEnv(t)
	bookAppointment(t, env, "alice")

	_, outcome, err := env.appointment.ProcessNext("reject")
	require.NoError(t, err)
	assert.Equal(t, DecisionRejected, outcome)

	assert.Empty(t, env.appointment.Pending())
	assert.Empty(t, env.appointment.Approved())
}

func TestUnrecognisedDecisionRequeuesAtTail(t *testing.T) {
	env := newTestEnv(t)
	bookAppointment(t, env, "first")
	bookAppointment(t, env, "second")

	appt, outcome, err := env.appointment.ProcessNext("postpone")
	require.NoError(t, err)
	assert.Equal(t, DecisionSkipped, outcome)
	assert.Equal(t, "first", appt.Username)

	pending := env.appointment.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, "second", pending[0].Username)
	assert.Equal(t, "first", pending[1].Username)
}

func TestProcessEmptyQueue(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.appointment.ProcessNext("approve")
	assert.ErrorIs(t, err, ErrQueueEmpty)
}

func TestAppointmentsForUser(t *testing.T) {
	env := newTestEnv(t)
	bookAppointment(t, env, "alice")
	bookAppointment(t, env, "bob")

	_, _, err := env.appointment.ProcessNext("approve")
	require.NoError(t, err)

	pending, approved := env.appointment.ForUser("alice")
	assert.Empty(t, pending)
	assert.Len(t, approved, 1)

	pending, approved = env.appointment.ForUser("bob")
	assert.Len(t, pending, 1)
	assert.Empty(t, approved)
}
