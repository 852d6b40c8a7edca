package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutor_bot/internal/flow"
	"tutor_bot/internal/models"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()

	_, ok := s.Get(1)
	assert.False(t, ok)

	sess := s.StartRegistration(1, models.RoleExecutor)
	require.NotNil(t, sess.Profile)
	assert.Nil(t, sess.Task)
	assert.Equal(t, flow.StateWaitingConsent, sess.Flow.Current())

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Same(t, sess, got)

	s.Clear(1)
	_, ok = s.Get(1)
	assert.False(t, ok)
}

// Новый диалог перезаписывает прежний: у пользователя всегда
// не больше одного активного состояния.
func TestStartOverwritesPreviousFlow(t *testing.T) {
	s := NewStore()

	s.StartRegistration(7, models.RoleCustomer)
	sess := s.StartTask(7)

	got, ok := s.Get(7)
	require.True(t, ok)
	assert.Same(t, sess, got)
	assert.Nil(t, got.Profile)
	require.NotNil(t, got.Task)
	assert.Equal(t, flow.StateSelectingSubject, got.Flow.Current())
}
