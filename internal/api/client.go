// Package api реализует клиент REST-хранилища (Supabase): профили,
// справочники, задачи и файловое хранилище вложений.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tutor_bot/internal/metrics"
)

var (
	// ErrUnauthorized возвращается при неверном ключе доступа.
	ErrUnauthorized = fmt.Errorf("unauthorized")
	// ErrNoCustomer возвращается, когда у пользователя нет профиля заказчика.
	ErrNoCustomer = fmt.Errorf("customer profile not found")
)

// Client представляет клиент REST API хранилища.
type Client struct {
	baseURL    string
	apiKey     string
	bucket     string
	httpClient *http.Client
	metrics    *metrics.Metrics
	retryCount int
	retryWait  time.Duration
}

// NewClient создает новый клиент хранилища.
// baseURL — адрес проекта, apiKey — сервисный ключ, bucket — имя
// бакета для вложений.
func NewClient(baseURL, apiKey, bucket string, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		bucket:  bucket,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics:    m,
		retryCount: 1,
		retryWait:  500 * time.Millisecond,
	}
}

// SetRetryPolicy настраивает число попыток и паузу между ними
// для запросов, завершившихся сетевой ошибкой или кодом 5xx.
func (c *Client) SetRetryPolicy(count int, wait time.Duration) {
	if count > 0 {
		c.retryCount = count
	}
	if wait > 0 {
		c.retryWait = wait
	}
}

// restURL строит адрес таблицы REST API с параметрами запроса.
func (c *Client) restURL(table string, query url.Values) string {
	u := c.baseURL + "/rest/v1/" + table
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// doJSON выполняет запрос с JSON-телом и декодирует JSON-ответ в out.
// Ошибки 5xx и сетевые ошибки повторяются согласно retry-политике,
// ошибки 4xx возвращаются сразу.
func (c *Client) doJSON(method, rawURL, prefer string, body, out interface{}) error {
	start := time.Now()
	if c.metrics != nil {
		c.metrics.IncAPIRequests()
		defer func() {
			c.metrics.UpdateLatency(time.Since(start))
		}()
	}

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("ошибка сериализации тела запроса: %w", err)
		}
		payload = data
	}

	var lastErr error
	for attempt := 0; attempt < c.retryCount; attempt++ {
		if attempt > 0 {
			time.Sleep(c.retryWait)
		}

		req, err := http.NewRequest(method, rawURL, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("ошибка создания запроса: %w", err)
		}
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")
		if prefer != "" {
			req.Header.Set("Prefer", prefer)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("ошибка выполнения запроса: %w", err)
			continue
		}

		done, err := c.handleResponse(resp, out)
		if done {
			return err
		}
		lastErr = err
	}

	if c.metrics != nil {
		c.metrics.IncAPIErrors()
	}
	return lastErr
}

// handleResponse разбирает ответ. Второе возвращаемое значение —
// ошибка попытки; done=false означает, что попытку можно повторить.
func (c *Client) handleResponse(resp *http.Response, out interface{}) (done bool, err error) {
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return false, fmt.Errorf("ошибка хранилища: код %d", resp.StatusCode)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return true, ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return true, fmt.Errorf("неверный код ответа: %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return true, fmt.Errorf("ошибка декодирования ответа: %w", err)
		}
	}
	return true, nil
}
