package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Проверяет, что UploadFile повторяет запрос при 500 и возвращает
// публичную ссылку на файл.
func TestUploadFileRetriesAndReturnsURL(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/storage/v1/object/attachments/tasks/7/file.jpg", r.URL.Path)
		assert.Equal(t, "image/jpeg", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, []byte("picture"), body)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	url, err := c.UploadFile("tasks/7/file.jpg", []byte("picture"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, ts.URL+"/storage/v1/object/public/attachments/tasks/7/file.jpg", url)
	assert.GreaterOrEqual(t, calls, 2)
}

func TestUploadFileClientError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	c := newTestClient(ts)
	_, err := c.UploadFile("tasks/1/x.bin", []byte("data"), "")
	assert.Error(t, err)
}
