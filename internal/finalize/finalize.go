// Package finalize фиксирует накопленные черновики во внешнем
// хранилище: анкеты профилей и задачи с вложениями.
package finalize

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"tutor_bot/internal/api"
	"tutor_bot/internal/metrics"
	"tutor_bot/internal/models"
)

// Downloader получает содержимое файла по ссылке Telegram.
// Возвращает байты файла; транспорт подставляет сюда выгрузку
// через Bot API.
type Downloader func(ref models.FileRef) ([]byte, error)

// Finalizer выполняет фиксацию черновиков.
type Finalizer struct {
	client  *api.Client
	metrics *metrics.Metrics
}

// New создает Finalizer поверх клиента хранилища.
func New(client *api.Client, m *metrics.Metrics) *Finalizer {
	return &Finalizer{client: client, metrics: m}
}

// Profile сохраняет завершенную анкету регистрации: запись пользователя
// с ролью и профиль заказчика или исполнителя. Для исполнителя таблицы
// связей с предметами и типами задач полностью заменяются.
func (f *Finalizer) Profile(userID int64, username string, d *models.ProfileDraft) error {
	var err error
	switch d.Role {
	case models.RoleCustomer:
		err = f.client.SaveCustomerProfile(userID, username, d.Name)
	case models.RoleExecutor:
		err = f.client.SaveExecutorProfile(userID, username, d)
	default:
		err = fmt.Errorf("неизвестная роль: %q", d.Role)
	}
	if err != nil {
		return err
	}

	if f.metrics != nil {
		f.metrics.IncRegistrations()
	}
	return nil
}

// Task фиксирует задачу в два этапа: вставка строки без вложений
// (хранилище присваивает идентификатор), затем выгрузка каждого файла
// в путь, содержащий этот идентификатор. Сбой выгрузки отдельного файла
// не прерывает фиксацию: такой файл просто не попадает в итоговый
// список ссылок. Если хотя бы одна выгрузка удалась, ссылки
// дописываются в строку задачи.
func (f *Finalizer) Task(userID int64, d *models.TaskDraft, download Downloader) (*models.Task, error) {
	customerID, err := f.client.CustomerID(userID)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		CustomerID:     customerID,
		SubjectID:      d.SubjectID,
		SectionID:      d.SectionID,
		TaskTypeID:     d.TaskTypeID,
		Description:    d.Description,
		SolutionFormat: d.Format,
		Deadline:       d.Deadline,
	}
	if err := f.client.CreateTask(task); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(d.Files))
	for _, ref := range d.Files {
		data, err := download(ref)
		if err != nil {
			log.Printf("Ошибка загрузки файла %s из Telegram: %v", ref.FileID, err)
			continue
		}

		path := fmt.Sprintf("tasks/%d/%s", task.ID, objectName(ref))
		url, err := f.client.UploadFile(path, data, contentTypeFor(ref))
		if err != nil {
			log.Printf("Ошибка выгрузки вложения задачи %d: %v", task.ID, err)
			continue
		}
		urls = append(urls, url)
	}

	if len(urls) > 0 {
		if err := f.client.UpdateTaskAttachments(task.ID, urls); err != nil {
			// Задача уже создана; потеря ссылок на вложения не откатывает ее.
			log.Printf("Ошибка записи вложений задачи %d: %v", task.ID, err)
		} else {
			task.AttachmentURLs = urls
		}
	}

	if f.metrics != nil {
		f.metrics.IncTasksCreated()
	}
	return task, nil
}

// objectName формирует уникальное имя объекта в хранилище,
// чтобы одинаковые имена файлов разных сообщений не конфликтовали.
func objectName(ref models.FileRef) string {
	ext := ref.Ext
	if ext == "" {
		ext = "bin"
	}
	return uuid.NewString() + "." + ext
}

func contentTypeFor(ref models.FileRef) string {
	switch ref.Ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
