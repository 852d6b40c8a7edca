package bot

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"tutor_bot/internal/api"
	"tutor_bot/internal/flow"
	"tutor_bot/internal/format"
	"tutor_bot/internal/models"
	"tutor_bot/internal/session"
	"tutor_bot/internal/validate"

	"gopkg.in/telebot.v3"
)

// handleCreateTask запускает мастер создания задачи
func (b *Bot) handleCreateTask(c telebot.Context) error {
	role, err := b.client.UserRole(c.Sender().ID)
	if err != nil {
		log.Printf("Ошибка проверки роли пользователя %d: %v", c.Sender().ID, err)
		return c.Send("Произошла ошибка. Пожалуйста, попробуйте позже.")
	}
	if role != models.RoleCustomer {
		return c.Send("Создавать задачи могут только заказчики. Пройдите регистрацию через /start.")
	}

	b.sessions.StartTask(c.Sender().ID)
	return c.Send("Выберите предмет задачи:", selectKeyboard(b.refdata.Subjects(), "task_subj"))
}

// handleTaskSubject обрабатывает выбор предмета
func (b *Bot) handleTaskSubject(c telebot.Context) error {
	sess, ok := b.sessions.Get(c.Sender().ID)
	if !ok || sess.Flow.Current() != flow.StateSelectingSubject {
		return c.Respond()
	}
	id, err := strconv.ParseInt(c.Data(), 10, 64)
	if err != nil {
		return c.Respond()
	}

	sess.Task.SubjectID = id
	advance(sess.Flow, flow.EventSubjectChosen)
	return editOrSend(c, fmt.Sprintf("Предмет: %s\nТеперь выберите раздел:", b.refdata.SubjectName(id)),
		selectKeyboard(b.refdata.Sections(id), "task_sect"))
}

// handleTaskSection обрабатывает выбор раздела
func (b *Bot) handleTaskSection(c telebot.Context) error {
	sess, ok := b.sessions.Get(c.Sender().ID)
	if !ok || sess.Flow.Current() != flow.StateSelectingSection {
		return c.Respond()
	}
	id, err := strconv.ParseInt(c.Data(), 10, 64)
	if err != nil {
		return c.Respond()
	}

	sess.Task.SectionID = id
	advance(sess.Flow, flow.EventSectionChosen)
	return editOrSend(c, "Опишите вашу задачу подробно:")
}

// taskDescription обрабатывает описание задачи
func (b *Bot) taskDescription(c telebot.Context, sess *session.Session) error {
	text := strings.TrimSpace(c.Text())
	if validate.ContainsForbiddenContent(text) {
		return c.Send("⚠️ Описание не должно содержать ссылки или контакты. Пожалуйста, попробуйте снова.")
	}

	sess.Task.Description = text
	advance(sess.Flow, flow.EventDescriptionSaved)
	return c.Send("Выберите тип задачи:", selectKeyboard(b.refdata.TaskTypes(), "task_tt"))
}

// handleTaskType обрабатывает выбор типа задачи.
// Состояние selecting_task_type есть и у регистрации, поэтому
// дополнительно проверяем наличие черновика задачи.
func (b *Bot) handleTaskType(c telebot.Context) error {
	sess, ok := b.sessions.Get(c.Sender().ID)
	if !ok || sess.Task == nil || sess.Flow.Current() != flow.StateSelectingTaskType {
		return c.Respond()
	}
	id, err := strconv.ParseInt(c.Data(), 10, 64)
	if err != nil {
		return c.Respond()
	}

	sess.Task.TaskTypeID = id
	advance(sess.Flow, flow.EventTypeChosen)
	return editOrSend(c, "Какой формат решения вам нужен?", formatKeyboard())
}

// handleTaskFormat обрабатывает выбор формата решения
func (b *Bot) handleTaskFormat(c telebot.Context) error {
	sess, ok := b.sessions.Get(c.Sender().ID)
	if !ok || sess.Flow.Current() != flow.StateSelectingSolutionFormat {
		return c.Respond()
	}

	f := models.SolutionFormat(c.Data())
	switch f {
	case models.SolutionAnswerOnly, models.SolutionFull, models.SolutionFixMistakes:
	default:
		return c.Respond()
	}

	sess.Task.Format = f
	advance(sess.Flow, flow.EventFormatChosen)
	return editOrSend(c, "Укажите срок выполнения (например: 25.12.2026):")
}

// taskDeadline обрабатывает ввод срока выполнения
func (b *Bot) taskDeadline(c telebot.Context, sess *session.Session) error {
	deadline := strings.TrimSpace(c.Text())
	if deadline == "" {
		return c.Send("Пожалуйста, укажите срок выполнения задачи.")
	}
	if validate.ContainsForbiddenContent(deadline) {
		return c.Send("⚠️ Срок не должен содержать ссылки или контакты. Пожалуйста, попробуйте снова.")
	}

	sess.Task.Deadline = deadline
	advance(sess.Flow, flow.EventDeadlineSaved)
	return c.Send("Прикрепите файлы с заданием (фото или документы).\nКогда закончите, нажмите «Готово ✅».",
		filesKeyboard())
}

// taskAttachPhoto добавляет фотографию к вложениям задачи
func (b *Bot) taskAttachPhoto(c telebot.Context, sess *session.Session) error {
	photo := c.Message().Photo
	if photo == nil {
		return c.Send("Ошибка при получении фотографии. Пожалуйста, попробуйте снова.")
	}

	sess.Task.Files = append(sess.Task.Files, models.FileRef{
		FileID: photo.FileID,
		Kind:   models.FilePhoto,
		Ext:    "jpg",
	})
	return b.attachConfirm(c, sess)
}

// taskAttachDocument добавляет документ к вложениям задачи
func (b *Bot) taskAttachDocument(c telebot.Context, sess *session.Session) error {
	doc := c.Message().Document
	if doc == nil {
		return c.Send("Ошибка при получении документа. Пожалуйста, попробуйте снова.")
	}

	sess.Task.Files = append(sess.Task.Files, models.FileRef{
		FileID: doc.FileID,
		Kind:   models.FileDocument,
		Ext:    strings.TrimPrefix(filepath.Ext(doc.FileName), "."),
	})
	return b.attachConfirm(c, sess)
}

func (b *Bot) attachConfirm(c telebot.Context, sess *session.Session) error {
	return c.Send(fmt.Sprintf("✅ Файл добавлен (всего: %d). Отправьте еще или нажмите «Готово ✅».",
		len(sess.Task.Files)), filesKeyboard())
}

// handleFilesDone завершает загрузку вложений и показывает сводку задачи
func (b *Bot) handleFilesDone(c telebot.Context) error {
	sess, ok := b.sessions.Get(c.Sender().ID)
	if !ok || sess.Flow.Current() != flow.StateUploadingFiles {
		return c.Respond()
	}
	if len(sess.Task.Files) == 0 {
		return c.Respond(&telebot.CallbackResponse{Text: "Прикрепите хотя бы один файл!", ShowAlert: true})
	}

	advance(sess.Flow, flow.EventFilesDone)
	summary := "Проверьте данные задачи:\n\n" + format.TaskSummary(sess.Task, b.refdata)
	return editOrSend(c, summary, confirmKeyboard(), telebot.ModeHTML)
}

// handleTaskConfirm сохраняет задачу и выгружает вложения.
// При ошибке сохранения сессия не очищается: вложения остаются
// в очереди и подтверждение можно повторить.
func (b *Bot) handleTaskConfirm(c telebot.Context) error {
	sess, ok := b.sessions.Get(c.Sender().ID)
	if !ok || sess.Flow.Current() != flow.StateConfirmingCreation {
		return c.Respond()
	}

	task, err := b.finalizer.Task(c.Sender().ID, sess.Task, b.downloadFile)
	if err != nil {
		log.Printf("Ошибка создания задачи пользователя %d: %v", c.Sender().ID, err)
		if errors.Is(err, api.ErrNoCustomer) {
			return c.Send("Профиль заказчика не найден. Пройдите регистрацию через /start.")
		}
		return c.Send("Произошла ошибка при создании задачи. Пожалуйста, попробуйте позже.")
	}

	advance(sess.Flow, flow.EventConfirm)
	b.sessions.Clear(c.Sender().ID)
	return editOrSend(c, fmt.Sprintf("✅ Задача №%d создана! Мы уведомим вас об откликах исполнителей.", task.ID))
}

// handleTaskCancel отменяет создание задачи без сохранения
func (b *Bot) handleTaskCancel(c telebot.Context) error {
	sess, ok := b.sessions.Get(c.Sender().ID)
	if !ok || sess.Flow.Current() != flow.StateConfirmingCreation {
		return c.Respond()
	}

	advance(sess.Flow, flow.EventCancel)
	b.sessions.Clear(c.Sender().ID)
	return editOrSend(c, "❌ Создание задачи отменено.")
}
