package bot

import (
	"errors"
	"testing"

	"tutor_bot/internal/flow"
	"tutor_bot/internal/models"
	"tutor_bot/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

// fakeContext подменяет telebot.Context в тестах обработчиков:
// записывает отправленные и отредактированные сообщения.
type fakeContext struct {
	telebot.Context
	sender    *telebot.User
	data      string
	text      string
	editErr   error
	edits     []interface{}
	sends     []interface{}
	responded bool
}

func (f *fakeContext) Sender() *telebot.User { return f.sender }

func (f *fakeContext) Data() string { return f.data }

func (f *fakeContext) Text() string { return f.text }

func (f *fakeContext) Edit(what interface{}, opts ...interface{}) error {
	if f.editErr != nil {
		return f.editErr
	}
	f.edits = append(f.edits, what)
	return nil
}

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	f.sends = append(f.sends, what)
	return nil
}

func (f *fakeContext) Respond(resp ...*telebot.CallbackResponse) error {
	f.responded = true
	return nil
}

func newTestBot() *Bot {
	return &Bot{
		sessions:      session.NewStore(),
		consentText:   "Согласие на обработку персональных данных",
		minNameLen:    2,
		maxExperience: 50,
	}
}

func TestEditOrSendFallsBackOnEditFailure(t *testing.T) {
	c := &fakeContext{
		sender:  &telebot.User{ID: 1},
		editErr: errors.New("telegram: message can't be edited"),
	}

	require.NoError(t, editOrSend(c, "Введите имя:"))
	require.Len(t, c.sends, 1)
	assert.Equal(t, "Введите имя:", c.sends[0])
}

func TestEditOrSendPrefersEdit(t *testing.T) {
	c := &fakeContext{sender: &telebot.User{ID: 1}}

	require.NoError(t, editOrSend(c, "Введите имя:"))
	assert.Len(t, c.edits, 1)
	assert.Empty(t, c.sends)
}

func TestConsentAcceptPromptSurvivesEditFailure(t *testing.T) {
	b := newTestBot()
	b.sessions.StartRegistration(7, models.RoleExecutor)

	c := &fakeContext{
		sender:  &telebot.User{ID: 7},
		data:    "accept",
		editErr: errors.New("telegram: message can't be edited"),
	}
	require.NoError(t, b.handleConsent(c))

	sess, ok := b.sessions.Get(7)
	require.True(t, ok)
	assert.Equal(t, flow.StateWaitingName, sess.Flow.Current())
	// Пользователь получил подсказку, несмотря на неудачное редактирование
	require.Len(t, c.sends, 1)
	assert.Equal(t, "Как вас зовут? Введите имя:", c.sends[0])
}

func TestConsentIgnoresUnknownPayload(t *testing.T) {
	b := newTestBot()
	b.sessions.StartRegistration(7, models.RoleCustomer)

	c := &fakeContext{sender: &telebot.User{ID: 7}, data: "maybe"}
	require.NoError(t, b.handleConsent(c))

	sess, ok := b.sessions.Get(7)
	require.True(t, ok)
	assert.Equal(t, flow.StateWaitingConsent, sess.Flow.Current())
	assert.True(t, c.responded)
	assert.Empty(t, c.edits)
	assert.Empty(t, c.sends)
}

func TestTextDuringPhotoStepHintsPhoto(t *testing.T) {
	b := newTestBot()
	sess := b.sessions.StartRegistration(7, models.RoleExecutor)
	sess.Flow.SetState(flow.StateWaitingPhoto)

	c := &fakeContext{sender: &telebot.User{ID: 7}, text: "привет"}
	require.NoError(t, b.handleText(c))

	require.Len(t, c.sends, 1)
	assert.Contains(t, c.sends[0], "фотографию")
}

func TestPhotoDuringNameStepHintsText(t *testing.T) {
	b := newTestBot()
	sess := b.sessions.StartRegistration(7, models.RoleExecutor)
	sess.Flow.SetState(flow.StateWaitingName)

	c := &fakeContext{sender: &telebot.User{ID: 7}}
	require.NoError(t, b.handlePhoto(c))

	require.Len(t, c.sends, 1)
	assert.Contains(t, c.sends[0], "имя")
}
