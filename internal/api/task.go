package api

import (
	"fmt"
	"net/url"
	"strconv"

	"tutor_bot/internal/models"
)

// CreateTask вставляет задачу без вложений и записывает присвоенный
// хранилищем идентификатор в task.ID. Ссылки на вложения добавляются
// позже отдельным вызовом UpdateTaskAttachments.
func (c *Client) CreateTask(task *models.Task) error {
	body := []models.Task{*task}
	var saved []models.Task
	if err := c.doJSON("POST", c.restURL("task", nil),
		"return=representation", body, &saved); err != nil {
		return fmt.Errorf("ошибка создания задачи: %w", err)
	}
	if len(saved) == 0 || saved[0].ID == 0 {
		return fmt.Errorf("хранилище не вернуло идентификатор задачи")
	}
	task.ID = saved[0].ID
	return nil
}

// UpdateTaskAttachments записывает список ссылок на вложения задачи.
func (c *Client) UpdateTaskAttachments(taskID int64, urls []string) error {
	query := url.Values{}
	query.Set("task_id", "eq."+strconv.FormatInt(taskID, 10))

	body := map[string][]string{"attachments_urls": urls}
	if err := c.doJSON("PATCH", c.restURL("task", query), "", body, nil); err != nil {
		return fmt.Errorf("ошибка сохранения вложений задачи %d: %w", taskID, err)
	}
	return nil
}
