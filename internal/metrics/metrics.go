// Package metrics содержит счётчики работы бота.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics хранит метрики работы приложения
type Metrics struct {
	Registrations  int64
	TasksCreated   int64
	FilesUploaded  int64
	APIRequests    int64
	APIErrors      int64
	AverageLatency time.Duration
	mu             sync.RWMutex
}

// NewMetrics создает новый экземпляр метрик
func NewMetrics() *Metrics {
	return &Metrics{}
}

// IncRegistrations увеличивает счетчик завершенных регистраций
func (m *Metrics) IncRegistrations() { atomic.AddInt64(&m.Registrations, 1) }

// IncTasksCreated увеличивает счетчик созданных задач
func (m *Metrics) IncTasksCreated() { atomic.AddInt64(&m.TasksCreated, 1) }

// IncFilesUploaded увеличивает счетчик выгруженных вложений
func (m *Metrics) IncFilesUploaded() { atomic.AddInt64(&m.FilesUploaded, 1) }

// IncAPIRequests увеличивает счетчик запросов к хранилищу
func (m *Metrics) IncAPIRequests() { atomic.AddInt64(&m.APIRequests, 1) }

// IncAPIErrors увеличивает счетчик ошибок хранилища
func (m *Metrics) IncAPIErrors() { atomic.AddInt64(&m.APIErrors, 1) }

// UpdateLatency обновляет среднее время ответа хранилища
func (m *Metrics) UpdateLatency(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Простое скользящее среднее
	if m.AverageLatency == 0 {
		m.AverageLatency = d
	} else {
		m.AverageLatency = (m.AverageLatency + d) / 2
	}
}

// GetStats возвращает текущие метрики
func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"registrations":   atomic.LoadInt64(&m.Registrations),
		"tasks_created":   atomic.LoadInt64(&m.TasksCreated),
		"files_uploaded":  atomic.LoadInt64(&m.FilesUploaded),
		"api_requests":    atomic.LoadInt64(&m.APIRequests),
		"api_errors":      atomic.LoadInt64(&m.APIErrors),
		"average_latency": m.AverageLatency.String(),
	}
}
