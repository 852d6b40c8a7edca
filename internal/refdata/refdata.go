// Package refdata отдает справочные данные (предметы, разделы, типы
// задач) с кэшированием и мягкой деградацией: сбой хранилища дает
// пустой список вариантов, а не ошибку диалога.
package refdata

import (
	"fmt"
	"log"
	"sync"
	"time"

	"tutor_bot/internal/models"
)

// Source описывает операции чтения справочников из хранилища.
// Реализуется клиентом api.Client.
type Source interface {
	Subjects() ([]models.Option, error)
	Sections(subjectID int64) ([]models.Option, error)
	TaskTypes() ([]models.Option, error)
}

type cacheEntry struct {
	options   []models.Option
	updatedAt time.Time
}

func (e *cacheEntry) fresh(ttl time.Duration) bool {
	return e.options != nil && time.Since(e.updatedAt) < ttl
}

// Gateway кэширует справочники на заданный срок.
type Gateway struct {
	source Source
	ttl    time.Duration

	mu        sync.RWMutex
	subjects  cacheEntry
	taskTypes cacheEntry
	sections  map[int64]*cacheEntry
}

// NewGateway создает шлюз справочных данных поверх источника.
func NewGateway(source Source, ttl time.Duration) *Gateway {
	return &Gateway{
		source:   source,
		ttl:      ttl,
		sections: make(map[int64]*cacheEntry),
	}
}

// Subjects возвращает список предметов; при сбое источника — пустой список.
func (g *Gateway) Subjects() []models.Option {
	g.mu.RLock()
	if g.subjects.fresh(g.ttl) {
		defer g.mu.RUnlock()
		return g.subjects.options
	}
	g.mu.RUnlock()

	options, err := g.source.Subjects()
	if err != nil {
		log.Printf("Ошибка загрузки предметов: %v", err)
		return nil
	}

	g.mu.Lock()
	g.subjects = cacheEntry{options: options, updatedAt: time.Now()}
	g.mu.Unlock()
	return options
}

// Sections возвращает разделы предмета; при сбое источника — пустой список.
func (g *Gateway) Sections(subjectID int64) []models.Option {
	g.mu.RLock()
	if entry, ok := g.sections[subjectID]; ok && entry.fresh(g.ttl) {
		defer g.mu.RUnlock()
		return entry.options
	}
	g.mu.RUnlock()

	options, err := g.source.Sections(subjectID)
	if err != nil {
		log.Printf("Ошибка загрузки разделов предмета %d: %v", subjectID, err)
		return nil
	}

	g.mu.Lock()
	g.sections[subjectID] = &cacheEntry{options: options, updatedAt: time.Now()}
	g.mu.Unlock()
	return options
}

// TaskTypes возвращает типы задач; при сбое источника — пустой список.
func (g *Gateway) TaskTypes() []models.Option {
	g.mu.RLock()
	if g.taskTypes.fresh(g.ttl) {
		defer g.mu.RUnlock()
		return g.taskTypes.options
	}
	g.mu.RUnlock()

	options, err := g.source.TaskTypes()
	if err != nil {
		log.Printf("Ошибка загрузки типов задач: %v", err)
		return nil
	}

	g.mu.Lock()
	g.taskTypes = cacheEntry{options: options, updatedAt: time.Now()}
	g.mu.Unlock()
	return options
}

// SubjectName возвращает название предмета или заглушку "ID <n>".
func (g *Gateway) SubjectName(id int64) string {
	return optionName(g.Subjects(), id)
}

// SectionName возвращает название раздела или заглушку "ID <n>".
func (g *Gateway) SectionName(subjectID, id int64) string {
	return optionName(g.Sections(subjectID), id)
}

// TaskTypeName возвращает название типа задачи или заглушку "ID <n>".
func (g *Gateway) TaskTypeName(id int64) string {
	return optionName(g.TaskTypes(), id)
}

func optionName(options []models.Option, id int64) string {
	for _, o := range options {
		if o.ID == id {
			return o.Name
		}
	}
	return fmt.Sprintf("ID %d", id)
}
