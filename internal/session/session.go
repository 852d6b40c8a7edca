// Package session хранит состояние активных диалогов в памяти:
// конечный автомат и черновик на каждого пользователя.
package session

import (
	"sync"

	"github.com/looplab/fsm"

	"tutor_bot/internal/flow"
	"tutor_bot/internal/models"
)

// Session — активный диалог одного пользователя. Одновременно у
// пользователя ровно один диалог: заполнен либо Profile, либо Task.
type Session struct {
	Flow    *fsm.FSM
	Profile *models.ProfileDraft
	Task    *models.TaskDraft
}

// Store — потокобезопасное хранилище диалогов по идентификатору
// пользователя Telegram. Черновики живут только здесь и удаляются
// при завершении, отмене или отказе от соглашения.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore создает пустое хранилище диалогов.
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
	}
}

// Get возвращает активный диалог пользователя, если он есть.
func (s *Store) Get(userID int64) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

// StartRegistration начинает диалог регистрации, перезаписывая любой
// прежний диалог пользователя.
func (s *Store) StartRegistration(userID int64, role models.Role) *Session {
	sess := &Session{
		Flow:    flow.NewRegistration(role),
		Profile: models.NewProfileDraft(role),
	}
	s.mu.Lock()
	s.sessions[userID] = sess
	s.mu.Unlock()
	return sess
}

// StartTask начинает диалог создания задачи, перезаписывая любой
// прежний диалог пользователя.
func (s *Store) StartTask(userID int64) *Session {
	sess := &Session{
		Flow: flow.NewTaskCreation(),
		Task: &models.TaskDraft{},
	}
	s.mu.Lock()
	s.sessions[userID] = sess
	s.mu.Unlock()
	return sess
}

// Clear удаляет диалог пользователя вместе с черновиком.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}
