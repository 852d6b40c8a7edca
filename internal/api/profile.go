package api

import (
	"fmt"
	"net/url"
	"strconv"

	"tutor_bot/internal/models"
)

// SaveExecutorProfile сохраняет полный профиль исполнителя: запись
// пользователя с ролью, анкету и таблицы связей. Связи с предметами
// и типами задач полностью заменяются при каждом сохранении:
// сначала удаляются все существующие строки профиля, затем
// вставляется текущий выбор.
func (c *Client) SaveExecutorProfile(userID int64, username string, d *models.ProfileDraft) error {
	if err := c.UpsertUser(userID, username, models.RoleExecutor); err != nil {
		return err
	}

	query := url.Values{}
	query.Set("on_conflict", "user_id")

	body := []models.ExecutorProfile{{
		UserID:             userID,
		Name:               d.Name,
		Description:        d.Description,
		Experience:         d.Experience,
		Education:          d.Education,
		PhotoURL:           d.PhotoFileID,
		PersonalDataAccess: true,
	}}
	var saved []models.ExecutorProfile
	if err := c.doJSON("POST", c.restURL("executor", query),
		"resolution=merge-duplicates,return=representation", body, &saved); err != nil {
		return fmt.Errorf("ошибка сохранения анкеты исполнителя %d: %w", userID, err)
	}
	if len(saved) == 0 {
		return fmt.Errorf("хранилище не вернуло анкету исполнителя %d", userID)
	}
	executorID := saved[0].ExecutorID

	if err := c.replaceLinks("executor_subject", "subject_id", executorID, d.Subjects); err != nil {
		return err
	}
	return c.replaceLinks("executor_task_type", "task_type_id", executorID, d.TaskTypes)
}

// replaceLinks заменяет строки таблицы связей исполнителя: удаление
// всех прежних строк, затем вставка текущего набора.
func (c *Client) replaceLinks(table, column string, executorID int64, ids []int64) error {
	query := url.Values{}
	query.Set("executor_id", "eq."+strconv.FormatInt(executorID, 10))
	if err := c.doJSON("DELETE", c.restURL(table, query), "", nil, nil); err != nil {
		return fmt.Errorf("ошибка очистки связей %s: %w", table, err)
	}

	if len(ids) == 0 {
		return nil
	}
	rows := make([]map[string]int64, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, map[string]int64{"executor_id": executorID, column: id})
	}
	if err := c.doJSON("POST", c.restURL(table, nil), "", rows, nil); err != nil {
		return fmt.Errorf("ошибка вставки связей %s: %w", table, err)
	}
	return nil
}

// SaveCustomerProfile сохраняет профиль заказчика.
func (c *Client) SaveCustomerProfile(userID int64, username, name string) error {
	if err := c.UpsertUser(userID, username, models.RoleCustomer); err != nil {
		return err
	}

	query := url.Values{}
	query.Set("on_conflict", "user_id")

	body := []models.CustomerProfile{{
		UserID:             userID,
		Name:               name,
		PersonalDataAccess: true,
	}}
	if err := c.doJSON("POST", c.restURL("customer", query),
		"resolution=merge-duplicates", body, nil); err != nil {
		return fmt.Errorf("ошибка сохранения профиля заказчика %d: %w", userID, err)
	}
	return nil
}

// CustomerID возвращает идентификатор профиля заказчика.
// Возвращает ErrNoCustomer, если профиль отсутствует.
func (c *Client) CustomerID(userID int64) (int64, error) {
	query := url.Values{}
	query.Set("select", "customer_id")
	query.Set("user_id", "eq."+strconv.FormatInt(userID, 10))

	var rows []struct {
		CustomerID int64 `json:"customer_id"`
	}
	if err := c.doJSON("GET", c.restURL("customer", query), "", nil, &rows); err != nil {
		return 0, fmt.Errorf("ошибка поиска заказчика для пользователя %d: %w", userID, err)
	}
	if len(rows) == 0 {
		return 0, ErrNoCustomer
	}
	return rows[0].CustomerID, nil
}
