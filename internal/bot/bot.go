// Package bot содержит Telegram-обработчики: тонкий слой над
// автоматами диалогов, справочниками и финализацией.
package bot

import (
	"fmt"
	"log"
	"os"
	"time"

	"tutor_bot/internal/api"
	"tutor_bot/internal/finalize"
	"tutor_bot/internal/flow"
	"tutor_bot/internal/metrics"
	"tutor_bot/internal/models"
	"tutor_bot/internal/refdata"
	"tutor_bot/internal/session"

	"gopkg.in/telebot.v3"
)

// Кнопки основного меню
var (
	customerMenu  = &telebot.ReplyMarkup{ResizeKeyboard: true}
	btnCreateTask = customerMenu.Text("📝 Создать задачу")
	btnProfile    = customerMenu.Text("👤 Мой профиль")
	btnOrders     = customerMenu.Text("📋 Мои заказы")
	btnSupport    = customerMenu.Text("💬 Написать в поддержку")

	executorMenu = &telebot.ReplyMarkup{ResizeKeyboard: true}
)

// Bot представляет Telegram бота
type Bot struct {
	bot           *telebot.Bot
	client        *api.Client
	refdata       *refdata.Gateway
	sessions      *session.Store
	finalizer     *finalize.Finalizer
	metrics       *metrics.Metrics
	consentText   string
	minNameLen    int
	maxExperience int
}

// NewBot создает нового бота
func NewBot(token string, pollTimeout time.Duration, client *api.Client, ref *refdata.Gateway,
	fin *finalize.Finalizer, m *metrics.Metrics, consentText string, minNameLen, maxExperience int) (*Bot, error) {
	tb, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: pollTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания бота: %w", err)
	}

	bot := &Bot{
		bot:           tb,
		client:        client,
		refdata:       ref,
		sessions:      session.NewStore(),
		finalizer:     fin,
		metrics:       m,
		consentText:   consentText,
		minNameLen:    minNameLen,
		maxExperience: maxExperience,
	}

	// Настраиваем клавиатуры основных меню
	customerMenu.Reply(
		customerMenu.Row(btnCreateTask),
		customerMenu.Row(btnProfile, btnOrders),
		customerMenu.Row(btnSupport),
	)
	executorMenu.Reply(
		executorMenu.Row(btnProfile, btnOrders),
		executorMenu.Row(btnSupport),
	)

	bot.setupHandlers()
	return bot, nil
}

// setupHandlers настраивает обработчики команд
func (b *Bot) setupHandlers() {
	// Стандартные команды
	b.bot.Handle("/start", b.handleStart)
	b.bot.Handle("/help", b.handleHelp)

	// Обработчики кнопок меню
	b.bot.Handle(&btnCreateTask, b.handleCreateTask)
	b.bot.Handle(&btnProfile, b.handleProfileMenu)
	b.bot.Handle(&btnOrders, b.handleOrdersMenu)
	b.bot.Handle(&btnSupport, b.handleSupportMenu)

	// Регистрация
	b.bot.Handle(&telebot.Btn{Unique: "role"}, b.handleRoleChoice)
	b.bot.Handle(&telebot.Btn{Unique: "consent"}, b.handleConsent)
	b.bot.Handle(&telebot.Btn{Unique: "reg_subj"}, b.handleSubjectToggle)
	b.bot.Handle(&telebot.Btn{Unique: "reg_subj_done"}, b.handleSubjectsDone)
	b.bot.Handle(&telebot.Btn{Unique: "reg_sect"}, b.handleSectionToggle)
	b.bot.Handle(&telebot.Btn{Unique: "reg_sect_done"}, b.handleSectionsDone)
	b.bot.Handle(&telebot.Btn{Unique: "reg_tt"}, b.handleTaskTypeToggle)
	b.bot.Handle(&telebot.Btn{Unique: "reg_tt_done"}, b.handleTaskTypesDone)

	// Создание задачи
	b.bot.Handle(&telebot.Btn{Unique: "task_subj"}, b.handleTaskSubject)
	b.bot.Handle(&telebot.Btn{Unique: "task_sect"}, b.handleTaskSection)
	b.bot.Handle(&telebot.Btn{Unique: "task_tt"}, b.handleTaskType)
	b.bot.Handle(&telebot.Btn{Unique: "task_fmt"}, b.handleTaskFormat)
	b.bot.Handle(&telebot.Btn{Unique: "task_files_done"}, b.handleFilesDone)
	b.bot.Handle(&telebot.Btn{Unique: "task_confirm"}, b.handleTaskConfirm)
	b.bot.Handle(&telebot.Btn{Unique: "task_cancel"}, b.handleTaskCancel)

	// Обработчик текстовых сообщений
	b.bot.Handle(telebot.OnText, b.handleText)

	// Обработчики фотографий и документов
	b.bot.Handle(telebot.OnPhoto, b.handlePhoto)
	b.bot.Handle(telebot.OnDocument, b.handleDocument)
}

// editOrSend правит предыдущее сообщение диалога, а при неудаче
// (например, сообщение устарело) отправляет подсказку новым
// сообщением, чтобы пользователь не остался без ответа.
func editOrSend(c telebot.Context, what interface{}, opts ...interface{}) error {
	if err := c.Edit(what, opts...); err != nil {
		log.Printf("Ошибка редактирования сообщения пользователя %d, отправляем новое: %v", c.Sender().ID, err)
		return c.Send(what, opts...)
	}
	return nil
}

// stepHint напоминает, что требуется на текущем шаге диалога.
func stepHint(state string) string {
	switch state {
	case flow.StateWaitingName:
		return "Сейчас нужно ввести имя текстом."
	case flow.StateWaitingDescription:
		return "Сейчас нужно прислать описание о себе текстом."
	case flow.StateWaitingExperience:
		return "Сейчас нужно прислать опыт работы числом."
	case flow.StateWaitingEducation:
		return "Сейчас нужно прислать образование текстом."
	case flow.StateWaitingPhoto:
		return "Сейчас нужно отправить фотографию для профиля."
	case flow.StateEnteringDescription:
		return "Сейчас нужно прислать описание задачи текстом."
	case flow.StateEnteringDeadline:
		return "Сейчас нужно прислать срок выполнения текстом."
	case flow.StateUploadingFiles:
		return "Сейчас нужно прикрепить файлы (фото или документы) или нажать «Готово ✅»."
	}
	return "Пожалуйста, воспользуйтесь кнопками выше."
}

// handleStart обрабатывает команду /start
func (b *Bot) handleStart(c telebot.Context) error {
	// Зарегистрированные пользователи сразу попадают в свое меню
	role, err := b.client.UserRole(c.Sender().ID)
	if err != nil {
		log.Printf("Ошибка проверки роли пользователя %d: %v", c.Sender().ID, err)
	}
	switch role {
	case models.RoleCustomer:
		return c.Send("👋 С возвращением! Вы зарегистрированы как заказчик.", customerMenu)
	case models.RoleExecutor:
		return c.Send("👋 С возвращением! Вы зарегистрированы как исполнитель.", executorMenu)
	}

	return c.Send("Добро пожаловать на площадку помощи с учебой!\nКто вы?", roleKeyboard())
}

// handleHelp обрабатывает команду /help
func (b *Bot) handleHelp(c telebot.Context) error {
	return c.Send(`Доступные команды:
/start - Начать работу с ботом
/help - Показать это сообщение`)
}

// handleText обрабатывает текстовые сообщения в зависимости от шага диалога
func (b *Bot) handleText(c telebot.Context) error {
	sess, ok := b.sessions.Get(c.Sender().ID)
	if !ok {
		return c.Send("Пожалуйста, используйте /start для начала работы с ботом.")
	}

	switch sess.Flow.Current() {
	case flow.StateWaitingName:
		return b.regName(c, sess)
	case flow.StateWaitingDescription:
		return b.regDescription(c, sess)
	case flow.StateWaitingExperience:
		return b.regExperience(c, sess)
	case flow.StateWaitingEducation:
		return b.regEducation(c, sess)
	case flow.StateEnteringDescription:
		return b.taskDescription(c, sess)
	case flow.StateEnteringDeadline:
		return b.taskDeadline(c, sess)
	}
	return c.Send(stepHint(sess.Flow.Current()))
}

// handlePhoto обрабатывает сообщения с фотографиями
func (b *Bot) handlePhoto(c telebot.Context) error {
	sess, ok := b.sessions.Get(c.Sender().ID)
	if !ok {
		return c.Send("Пожалуйста, используйте /start для начала работы с ботом.")
	}

	switch sess.Flow.Current() {
	case flow.StateWaitingPhoto:
		return b.regPhoto(c, sess)
	case flow.StateUploadingFiles:
		return b.taskAttachPhoto(c, sess)
	}
	return c.Send("Фотография сейчас не требуется. " + stepHint(sess.Flow.Current()))
}

// handleDocument обрабатывает отправку документов
func (b *Bot) handleDocument(c telebot.Context) error {
	sess, ok := b.sessions.Get(c.Sender().ID)
	if !ok {
		return c.Send("Пожалуйста, используйте /start для начала работы с ботом.")
	}

	if sess.Flow.Current() == flow.StateUploadingFiles {
		return b.taskAttachDocument(c, sess)
	}
	return c.Send("Документ сейчас не требуется. " + stepHint(sess.Flow.Current()))
}

// handleProfileMenu показывает заглушку раздела профиля
func (b *Bot) handleProfileMenu(c telebot.Context) error {
	return c.Send("Раздел «Мой профиль» находится в разработке.")
}

// handleOrdersMenu показывает заглушку раздела заказов
func (b *Bot) handleOrdersMenu(c telebot.Context) error {
	return c.Send("Раздел «Мои заказы» находится в разработке.")
}

// handleSupportMenu показывает контакт поддержки
func (b *Bot) handleSupportMenu(c telebot.Context) error {
	return c.Send("По всем вопросам напишите нам, и мы ответим в ближайшее время.")
}

// downloadFile скачивает файл из Telegram во временный файл и
// возвращает его содержимое.
func (b *Bot) downloadFile(ref models.FileRef) ([]byte, error) {
	tmpFile, err := os.CreateTemp("", "attachment_*")
	if err != nil {
		return nil, fmt.Errorf("ошибка создания временного файла: %w", err)
	}
	tmpName := tmpFile.Name()
	if err := tmpFile.Close(); err != nil {
		log.Printf("Ошибка закрытия временного файла %s: %v", tmpName, err)
	}
	defer func() {
		if err := os.Remove(tmpName); err != nil {
			log.Printf("Ошибка удаления временного файла %s: %v", tmpName, err)
		}
	}()

	if err := b.bot.Download(&telebot.File{FileID: ref.FileID}, tmpName); err != nil {
		return nil, fmt.Errorf("ошибка загрузки файла из Telegram: %w", err)
	}
	return os.ReadFile(tmpName)
}

// Start запускает бота
func (b *Bot) Start() {
	go b.bot.Start()
}

// Stop останавливает бота
func (b *Bot) Stop() {
	b.bot.Stop()
}
