package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"tutor_bot/internal/flow"
	"tutor_bot/internal/format"
	"tutor_bot/internal/models"
	"tutor_bot/internal/session"
	"tutor_bot/internal/validate"

	"github.com/looplab/fsm"
	"gopkg.in/telebot.v3"
)

// advance запускает событие автомата. Переход в то же состояние
// (повтор выбора разделов) не считается ошибкой.
func advance(f *fsm.FSM, event string) {
	err := f.Event(context.Background(), event)
	if err == nil {
		return
	}
	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return
	}
	log.Printf("Ошибка перехода %q из состояния %q: %v", event, f.Current(), err)
}

// Подсказки шагов с мультивыбором: при обновлении галочек текст
// переотправляется вместе с клавиатурой.
const (
	subjectsPrompt  = "Выберите предметы, по которым вы готовы решать задачи:"
	taskTypesPrompt = "Выберите типы задач, которые вы решаете:"
)

// handleRoleChoice обрабатывает выбор роли и показывает соглашение
func (b *Bot) handleRoleChoice(c telebot.Context) error {
	role := models.Role(c.Data())
	if role != models.RoleCustomer && role != models.RoleExecutor {
		return c.Respond()
	}

	b.sessions.StartRegistration(c.Sender().ID, role)
	return editOrSend(c, b.consentText, consentKeyboard())
}

// handleConsent обрабатывает ответ на соглашение об обработке данных
func (b *Bot) handleConsent(c telebot.Context) error {
	sess, ok := b.sessions.Get(c.Sender().ID)
	if !ok || sess.Flow.Current() != flow.StateWaitingConsent {
		return c.Respond()
	}

	switch c.Data() {
	case "reject":
		advance(sess.Flow, flow.EventReject)
		b.sessions.Clear(c.Sender().ID)
		return editOrSend(c, "Вы отказались от обработки персональных данных. "+
			"Без согласия регистрация невозможна. Используйте /start, чтобы начать заново.")
	case "accept":
		advance(sess.Flow, flow.EventAccept)
		return editOrSend(c, "Как вас зовут? Введите имя:")
	}
	return c.Respond()
}

// regName обрабатывает ввод имени
func (b *Bot) regName(c telebot.Context, sess *session.Session) error {
	name := strings.TrimSpace(c.Text())
	if utf8.RuneCountInString(name) < b.minNameLen {
		return c.Send(fmt.Sprintf("Имя должно содержать минимум %d символа. Пожалуйста, попробуйте снова.", b.minNameLen))
	}
	if validate.ContainsForbiddenContent(name) {
		return c.Send("⚠️ Имя не должно содержать ссылки или контакты. Пожалуйста, попробуйте снова.")
	}

	sess.Profile.Name = name
	advance(sess.Flow, flow.EventNameSaved)

	// Регистрация заказчика заканчивается сразу после имени
	if sess.Profile.Role == models.RoleCustomer {
		defer b.sessions.Clear(c.Sender().ID)
		if err := b.finalizer.Profile(c.Sender().ID, c.Sender().Username, sess.Profile); err != nil {
			log.Printf("Ошибка сохранения профиля заказчика %d: %v", c.Sender().ID, err)
			return c.Send("Произошла ошибка при сохранении профиля. Пожалуйста, попробуйте позже.")
		}
		return c.Send(format.ProfileText(sess.Profile, b.refdata), customerMenu)
	}

	return c.Send(subjectsPrompt, b.subjectsKeyboard(sess.Profile.Subjects))
}

// handleSubjectToggle переключает предмет в списке выбранных
func (b *Bot) handleSubjectToggle(c telebot.Context) error {
	sess, ok := b.sessions.Get(c.Sender().ID)
	if !ok || sess.Flow.Current() != flow.StateSelectingSubjects {
		return c.Respond()
	}
	id, err := strconv.ParseInt(c.Data(), 10, 64)
	if err != nil {
		return c.Respond()
	}

	sess.Profile.Subjects = flow.Toggle(sess.Profile.Subjects, id)
	return editOrSend(c, subjectsPrompt, b.subjectsKeyboard(sess.Profile.Subjects))
}

// handleSubjectsDone завершает выбор предметов и открывает разделы
// первого выбранного предмета
func (b *Bot) handleSubjectsDone(c telebot.Context) error {
	sess, ok := b.sessions.Get(c.Sender().ID)
	if !ok || sess.Flow.Current() != flow.StateSelectingSubjects {
		return c.Respond()
	}
	if len(sess.Profile.Subjects) == 0 {
		return c.Respond(&telebot.CallbackResponse{Text: "Выберите хотя бы один предмет!", ShowAlert: true})
	}

	sess.Profile.CurrentSubject = 0
	advance(sess.Flow, flow.EventSubjectsDone)

	subjectID := sess.Profile.Subjects[0]
	return editOrSend(c, b.sectionsPrompt(subjectID), b.sectionsKeyboard(subjectID, nil))
}

func (b *Bot) sectionsPrompt(subjectID int64) string {
	return fmt.Sprintf("Выберите разделы по предмету «%s».\nЕсли ничего не выбрать, будут указаны все разделы:",
		b.refdata.SubjectName(subjectID))
}

// handleSectionToggle переключает раздел текущего предмета
func (b *Bot) handleSectionToggle(c telebot.Context) error {
	sess, ok := b.sessions.Get(c.Sender().ID)
	if !ok || sess.Flow.Current() != flow.StateSelectingSections {
		return c.Respond()
	}
	id, err := strconv.ParseInt(c.Data(), 10, 64)
	if err != nil {
		return c.Respond()
	}

	subjectID := sess.Profile.Subjects[sess.Profile.CurrentSubject]
	sess.Profile.SubjectSections[subjectID] = flow.Toggle(sess.Profile.SubjectSections[subjectID], id)
	return editOrSend(c, b.sectionsPrompt(subjectID),
		b.sectionsKeyboard(subjectID, sess.Profile.SubjectSections[subjectID]))
}

// handleSectionsDone переходит к разделам следующего предмета либо,
// когда предметы закончились, к выбору типов задач. Пустой выбор
// допустим и означает "все разделы".
func (b *Bot) handleSectionsDone(c telebot.Context) error {
	sess, ok := b.sessions.Get(c.Sender().ID)
	if !ok || sess.Flow.Current() != flow.StateSelectingSections {
		return c.Respond()
	}

	sess.Profile.CurrentSubject++
	if sess.Profile.CurrentSubject < len(sess.Profile.Subjects) {
		advance(sess.Flow, flow.EventNextSubject)
		subjectID := sess.Profile.Subjects[sess.Profile.CurrentSubject]
		return editOrSend(c, b.sectionsPrompt(subjectID),
			b.sectionsKeyboard(subjectID, sess.Profile.SubjectSections[subjectID]))
	}

	advance(sess.Flow, flow.EventSectionsComplete)
	return editOrSend(c, taskTypesPrompt, b.taskTypesKeyboard(sess.Profile.TaskTypes))
}

// handleTaskTypeToggle переключает тип задач в списке выбранных.
// Состояние selecting_task_type есть и у мастера задач, поэтому
// дополнительно проверяем наличие черновика анкеты.
func (b *Bot) handleTaskTypeToggle(c telebot.Context) error {
	sess, ok := b.sessions.Get(c.Sender().ID)
	if !ok || sess.Profile == nil || sess.Flow.Current() != flow.StateSelectingTaskType {
		return c.Respond()
	}
	id, err := strconv.ParseInt(c.Data(), 10, 64)
	if err != nil {
		return c.Respond()
	}

	sess.Profile.TaskTypes = flow.Toggle(sess.Profile.TaskTypes, id)
	return editOrSend(c, taskTypesPrompt, b.taskTypesKeyboard(sess.Profile.TaskTypes))
}

// handleTaskTypesDone завершает выбор типов задач
func (b *Bot) handleTaskTypesDone(c telebot.Context) error {
	sess, ok := b.sessions.Get(c.Sender().ID)
	if !ok || sess.Profile == nil || sess.Flow.Current() != flow.StateSelectingTaskType {
		return c.Respond()
	}
	if len(sess.Profile.TaskTypes) == 0 {
		return c.Respond(&telebot.CallbackResponse{Text: "Выберите хотя бы один тип задач!", ShowAlert: true})
	}

	advance(sess.Flow, flow.EventTaskTypesDone)
	return editOrSend(c, "Напишите краткое описание о себе: чем вы можете быть полезны заказчикам?")
}

// regDescription обрабатывает описание профиля
func (b *Bot) regDescription(c telebot.Context, sess *session.Session) error {
	text := strings.TrimSpace(c.Text())
	if validate.ContainsForbiddenContent(text) {
		return c.Send("⚠️ Описание не должно содержать ссылки или контакты. Пожалуйста, попробуйте снова.")
	}

	sess.Profile.Description = text
	advance(sess.Flow, flow.EventDescriptionSaved)
	return c.Send("Укажите ваш опыт работы в годах (целым числом):")
}

// regExperience обрабатывает опыт работы
func (b *Bot) regExperience(c telebot.Context, sess *session.Session) error {
	years, err := strconv.Atoi(strings.TrimSpace(c.Text()))
	if err != nil || years < 0 {
		return c.Send("Пожалуйста, введите опыт работы целым числом лет, например: 5")
	}
	if years > b.maxExperience {
		return c.Send("⚠️ Укажите реальный опыт!")
	}

	sess.Profile.Experience = years
	advance(sess.Flow, flow.EventExperienceSaved)
	return c.Send("Укажите ваше образование:")
}

// regEducation обрабатывает образование
func (b *Bot) regEducation(c telebot.Context, sess *session.Session) error {
	text := strings.TrimSpace(c.Text())
	if validate.ContainsForbiddenContent(text) {
		return c.Send("⚠️ Образование не должно содержать ссылки или контакты. Пожалуйста, попробуйте снова.")
	}

	sess.Profile.Education = text
	advance(sess.Flow, flow.EventEducationSaved)
	return c.Send("Отправьте вашу фотографию для профиля:")
}

// regPhoto завершает регистрацию исполнителя: сохраняет анкету и
// показывает готовый профиль. Сессия очищается в любом случае.
func (b *Bot) regPhoto(c telebot.Context, sess *session.Session) error {
	photo := c.Message().Photo
	if photo == nil {
		return c.Send("Ошибка при получении фотографии. Пожалуйста, попробуйте снова.")
	}

	sess.Profile.PhotoFileID = photo.FileID
	advance(sess.Flow, flow.EventPhotoReceived)

	defer b.sessions.Clear(c.Sender().ID)
	if err := b.finalizer.Profile(c.Sender().ID, c.Sender().Username, sess.Profile); err != nil {
		log.Printf("Ошибка сохранения анкеты исполнителя %d: %v", c.Sender().ID, err)
		return c.Send("Произошла ошибка при сохранении анкеты. Пожалуйста, попробуйте позже.")
	}

	result := &telebot.Photo{
		File:    telebot.File{FileID: sess.Profile.PhotoFileID},
		Caption: format.ProfileText(sess.Profile, b.refdata),
	}
	return c.Send(result, executorMenu)
}
