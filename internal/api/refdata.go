package api

import (
	"fmt"
	"net/url"
	"strconv"

	"tutor_bot/internal/models"
)

// Subjects возвращает список предметов в порядке хранения.
func (c *Client) Subjects() ([]models.Option, error) {
	query := url.Values{}
	query.Set("select", "subject_id,subject_name")
	query.Set("order", "subject_id")

	var rows []struct {
		ID   int64  `json:"subject_id"`
		Name string `json:"subject_name"`
	}
	if err := c.doJSON("GET", c.restURL("subject", query), "", nil, &rows); err != nil {
		return nil, fmt.Errorf("ошибка получения предметов: %w", err)
	}

	options := make([]models.Option, 0, len(rows))
	for _, r := range rows {
		options = append(options, models.Option{ID: r.ID, Name: r.Name})
	}
	return options, nil
}

// Sections возвращает разделы указанного предмета.
func (c *Client) Sections(subjectID int64) ([]models.Option, error) {
	query := url.Values{}
	query.Set("select", "section_id,section_name")
	query.Set("subject_id", "eq."+strconv.FormatInt(subjectID, 10))
	query.Set("order", "section_id")

	var rows []struct {
		ID   int64  `json:"section_id"`
		Name string `json:"section_name"`
	}
	if err := c.doJSON("GET", c.restURL("section", query), "", nil, &rows); err != nil {
		return nil, fmt.Errorf("ошибка получения разделов предмета %d: %w", subjectID, err)
	}

	options := make([]models.Option, 0, len(rows))
	for _, r := range rows {
		options = append(options, models.Option{ID: r.ID, Name: r.Name})
	}
	return options, nil
}

// TaskTypes возвращает список типов задач.
func (c *Client) TaskTypes() ([]models.Option, error) {
	query := url.Values{}
	query.Set("select", "task_type_id,type_name")
	query.Set("order", "task_type_id")

	var rows []struct {
		ID   int64  `json:"task_type_id"`
		Name string `json:"type_name"`
	}
	if err := c.doJSON("GET", c.restURL("task_type", query), "", nil, &rows); err != nil {
		return nil, fmt.Errorf("ошибка получения типов задач: %w", err)
	}

	options := make([]models.Option, 0, len(rows))
	for _, r := range rows {
		options = append(options, models.Option{ID: r.ID, Name: r.Name})
	}
	return options, nil
}
