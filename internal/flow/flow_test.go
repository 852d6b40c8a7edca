package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/looplab/fsm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutor_bot/internal/models"
)

var allRegistrationEvents = []string{
	EventAccept, EventReject, EventNameSaved, EventSubjectsDone,
	EventNextSubject, EventSectionsComplete, EventTaskTypesDone,
	EventDescriptionSaved, EventExperienceSaved, EventEducationSaved,
	EventPhotoReceived,
}

var allTaskEvents = []string{
	EventSubjectChosen, EventSectionChosen, EventDescriptionSaved,
	EventTypeChosen, EventFormatChosen, EventDeadlineSaved,
	EventFilesDone, EventConfirm, EventCancel,
}

// assertAllowed проверяет, что в текущем состоянии автомата разрешены
// ровно перечисленные события, а все прочие отвергаются.
func assertAllowed(t *testing.T, f *fsm.FSM, universe []string, allowed ...string) {
	t.Helper()
	allowedSet := make(map[string]bool, len(allowed))
	for _, e := range allowed {
		allowedSet[e] = true
	}
	for _, e := range universe {
		assert.Equal(t, allowedSet[e], f.Can(e),
			"состояние %s, событие %s", f.Current(), e)
	}
}

func fire(t *testing.T, f *fsm.FSM, event string) {
	t.Helper()
	require.NoError(t, f.Event(context.Background(), event))
}

func TestExecutorRegistrationTransitions(t *testing.T) {
	f := NewRegistration(models.RoleExecutor)

	assert.Equal(t, StateWaitingConsent, f.Current())
	assertAllowed(t, f, allRegistrationEvents, EventAccept, EventReject)

	fire(t, f, EventAccept)
	assert.Equal(t, StateWaitingName, f.Current())
	assertAllowed(t, f, allRegistrationEvents, EventNameSaved)

	fire(t, f, EventNameSaved)
	assert.Equal(t, StateSelectingSubjects, f.Current())
	assertAllowed(t, f, allRegistrationEvents, EventSubjectsDone)

	fire(t, f, EventSubjectsDone)
	assert.Equal(t, StateSelectingSections, f.Current())
	assertAllowed(t, f, allRegistrationEvents, EventNextSubject, EventSectionsComplete)

	// Переход к следующему предмету оставляет автомат в том же состоянии.
	err := f.Event(context.Background(), EventNextSubject)
	noTransition := fsm.NoTransitionError{}
	assert.True(t, err == nil || errors.As(err, &noTransition))
	assert.Equal(t, StateSelectingSections, f.Current())

	fire(t, f, EventSectionsComplete)
	assert.Equal(t, StateSelectingTaskType, f.Current())
	assertAllowed(t, f, allRegistrationEvents, EventTaskTypesDone)

	fire(t, f, EventTaskTypesDone)
	assert.Equal(t, StateWaitingDescription, f.Current())
	assertAllowed(t, f, allRegistrationEvents, EventDescriptionSaved)

	fire(t, f, EventDescriptionSaved)
	assert.Equal(t, StateWaitingExperience, f.Current())
	assertAllowed(t, f, allRegistrationEvents, EventExperienceSaved)

	fire(t, f, EventExperienceSaved)
	assert.Equal(t, StateWaitingEducation, f.Current())
	assertAllowed(t, f, allRegistrationEvents, EventEducationSaved)

	fire(t, f, EventEducationSaved)
	assert.Equal(t, StateWaitingPhoto, f.Current())
	assertAllowed(t, f, allRegistrationEvents, EventPhotoReceived)

	fire(t, f, EventPhotoReceived)
	assert.Equal(t, StateDone, f.Current())
	assertAllowed(t, f, allRegistrationEvents)
}

func TestCustomerRegistrationTransitions(t *testing.T) {
	f := NewRegistration(models.RoleCustomer)

	assert.Equal(t, StateWaitingConsent, f.Current())
	assertAllowed(t, f, allRegistrationEvents, EventAccept, EventReject)

	fire(t, f, EventAccept)
	assert.Equal(t, StateWaitingName, f.Current())
	assertAllowed(t, f, allRegistrationEvents, EventNameSaved)

	// У заказчика после имени анкета завершена.
	fire(t, f, EventNameSaved)
	assert.Equal(t, StateDone, f.Current())
	assertAllowed(t, f, allRegistrationEvents)
}

func TestConsentRejectEndsFlow(t *testing.T) {
	for _, role := range []models.Role{models.RoleCustomer, models.RoleExecutor} {
		f := NewRegistration(role)
		fire(t, f, EventReject)
		assert.Equal(t, StateRejected, f.Current())
		// Из отказа выбраться нельзя: диалог окончен.
		assertAllowed(t, f, allRegistrationEvents)
	}
}

func TestTaskCreationTransitions(t *testing.T) {
	f := NewTaskCreation()

	steps := []struct {
		state string
		event string
	}{
		{StateSelectingSubject, EventSubjectChosen},
		{StateSelectingSection, EventSectionChosen},
		{StateEnteringDescription, EventDescriptionSaved},
		{StateSelectingTaskType, EventTypeChosen},
		{StateSelectingSolutionFormat, EventFormatChosen},
		{StateEnteringDeadline, EventDeadlineSaved},
		{StateUploadingFiles, EventFilesDone},
	}
	for _, step := range steps {
		assert.Equal(t, step.state, f.Current())
		assertAllowed(t, f, allTaskEvents, step.event)
		fire(t, f, step.event)
	}

	assert.Equal(t, StateConfirmingCreation, f.Current())
	assertAllowed(t, f, allTaskEvents, EventConfirm, EventCancel)

	fire(t, f, EventConfirm)
	assert.Equal(t, StateDone, f.Current())
	assertAllowed(t, f, allTaskEvents)
}

func TestTaskCreationCancel(t *testing.T) {
	f := NewTaskCreation()
	for _, e := range []string{
		EventSubjectChosen, EventSectionChosen, EventDescriptionSaved,
		EventTypeChosen, EventFormatChosen, EventDeadlineSaved, EventFilesDone,
	} {
		fire(t, f, e)
	}

	fire(t, f, EventCancel)
	assert.Equal(t, StateCancelled, f.Current())
	assertAllowed(t, f, allTaskEvents)
}

func TestInvalidEventRejected(t *testing.T) {
	f := NewTaskCreation()
	err := f.Event(context.Background(), EventConfirm)
	require.Error(t, err)
	invalid := fsm.InvalidEventError{}
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, StateSelectingSubject, f.Current())
}
