package quizplay

import (
	"sync"
	"time"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
)

type memoryEntry struct {
	session   *Session
	expiresAt time.Time
}

// MemoryStore хранит сессии в памяти процесса.
// Карта защищена своим мьютексом, а выбор вопроса сериализуется мьютексом конкретной сессии,
// поэтому независимые викторины не блокируют друг друга.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memoryEntry
	ttl      time.Duration
	now      func() time.Time
	intn     IntnFunc
}

// NewMemoryStore создает хранилище. ttl <= 0 отключает истечение сессий.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*memoryEntry),
		ttl:      ttl,
		now:      time.Now,
		intn:     defaultIntn,
	}
}

// Create регистрирует новую сессию с пустым множеством выданных вопросов
func (s *MemoryStore) Create(info Info) error {
	session := NewSession(info.ID, info.Scope, nil)
	session.CreatedAt = info.CreatedAt
	session.intn = s.intn

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[info.ID] = &memoryEntry{session: session, expiresAt: s.expiry()}
	return nil
}

// Get возвращает данные сессии
func (s *MemoryStore) Get(id string) (*Info, error) {
	session, err := s.touch(id)
	if err != nil {
		return nil, err
	}
	return &Info{ID: session.ID, Scope: session.Scope, CreatedAt: session.CreatedAt}, nil
}

// Draw выбирает следующий вопрос сессии
func (s *MemoryStore) Draw(id string, scope []entity.Question) (*entity.Question, bool, error) {
	session, err := s.touch(id)
	if err != nil {
		return nil, false, err
	}
	question, ok := session.Next(scope)
	return question, ok, nil
}

// Served возвращает выданные вопросы в порядке выдачи
func (s *MemoryStore) Served(id string) ([]uint, error) {
	session, err := s.touch(id)
	if err != nil {
		return nil, err
	}
	return session.Served(), nil
}

// Delete удаляет сессию
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return sessionNotFound(id)
	}
	delete(s.sessions, id)
	return nil
}

// Cleanup удаляет истекшие сессии и возвращает их количество
func (s *MemoryStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.sessions {
		if s.expired(entry, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len возвращает количество хранимых сессий
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// touch находит живую сессию и продлевает ее срок жизни
func (s *MemoryStore) touch(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, sessionNotFound(id)
	}
	if s.expired(entry, s.now()) {
		delete(s.sessions, id)
		return nil, sessionNotFound(id)
	}
	entry.expiresAt = s.expiry()
	return entry.session, nil
}

func (s *MemoryStore) expiry() time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return s.now().Add(s.ttl)
}

func (s *MemoryStore) expired(entry *memoryEntry, now time.Time) bool {
	return !entry.expiresAt.IsZero() && now.After(entry.expiresAt)
}
