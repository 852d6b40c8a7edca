package api

import (
	"fmt"
	"net/url"
	"strconv"

	"tutor_bot/internal/models"
)

// UserRole возвращает роль пользователя или пустую строку,
// если пользователь еще не зарегистрирован.
func (c *Client) UserRole(userID int64) (models.Role, error) {
	query := url.Values{}
	query.Set("select", "role")
	query.Set("user_id", "eq."+strconv.FormatInt(userID, 10))

	var rows []struct {
		Role models.Role `json:"role"`
	}
	if err := c.doJSON("GET", c.restURL("users", query), "", nil, &rows); err != nil {
		return "", fmt.Errorf("ошибка получения роли пользователя %d: %w", userID, err)
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].Role, nil
}

// UpsertUser добавляет или обновляет запись пользователя с его ролью.
// Повторная регистрация перезаписывает роль.
func (c *Client) UpsertUser(userID int64, username string, role models.Role) error {
	query := url.Values{}
	query.Set("on_conflict", "user_id")

	body := []models.User{{UserID: userID, Username: username, Role: role}}
	if err := c.doJSON("POST", c.restURL("users", query),
		"resolution=merge-duplicates", body, nil); err != nil {
		return fmt.Errorf("ошибка сохранения пользователя %d: %w", userID, err)
	}
	return nil
}
