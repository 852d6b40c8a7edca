package api

import (
	"bytes"
	"fmt"
	"net/http"
	"time"
)

// UploadFile выгружает содержимое файла в бакет хранилища по указанному
// пути и возвращает публичную ссылку на него. Повторная выгрузка по тому
// же пути перезаписывает файл.
func (c *Client) UploadFile(path string, data []byte, contentType string) (string, error) {
	start := time.Now()
	if c.metrics != nil {
		c.metrics.IncAPIRequests()
		defer func() {
			c.metrics.UpdateLatency(time.Since(start))
		}()
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path)

	var lastErr error
	for attempt := 0; attempt < c.retryCount; attempt++ {
		if attempt > 0 {
			time.Sleep(c.retryWait)
		}

		req, err := http.NewRequest("POST", uploadURL, bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("ошибка создания запроса: %w", err)
		}
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("x-upsert", "true")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("ошибка выгрузки файла: %w", err)
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("ошибка хранилища при выгрузке: код %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			if c.metrics != nil {
				c.metrics.IncAPIErrors()
			}
			return "", fmt.Errorf("неверный код ответа при выгрузке: %d", resp.StatusCode)
		}

		if c.metrics != nil {
			c.metrics.IncFilesUploaded()
		}
		return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, path), nil
	}

	if c.metrics != nil {
		c.metrics.IncAPIErrors()
	}
	return "", lastErr
}
