package quizplay

import (
	"sync"
	"time"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
)

// State: состояние сессии викторины
type State string

const (
	// StateActive: в пуле кандидатов есть хотя бы один вопрос
	StateActive State = "active"
	// StateExhausted: все вопросы scope уже выданы
	StateExhausted State = "exhausted"
)

// Session: сессия одной викторины: scope и множество уже выданных вопросов.
// Множество меняется только методом Next, который выбирает и записывает вопрос под одним мьютексом.
type Session struct {
	ID        string
	Scope     Scope
	CreatedAt time.Time

	mu     sync.Mutex
	served map[uint]struct{}
	order  []uint
	intn   IntnFunc
}

// NewSession создает сессию. previous: уже показанные вопросы (дубликаты игнорируются).
func NewSession(id string, scope Scope, previous []uint) *Session {
	s := &Session{
		ID:        id,
		Scope:     scope,
		CreatedAt: time.Now(),
		served:    make(map[uint]struct{}, len(previous)),
		intn:      defaultIntn,
	}
	for _, qid := range previous {
		if _, dup := s.served[qid]; dup {
			continue
		}
		s.served[qid] = struct{}{}
		s.order = append(s.order, qid)
	}
	return s
}

// Next выбирает случайный невыданный вопрос из scope и записывает его как выданный.
// ok=false означает исчерпание: это штатное завершение, а не ошибка.
func (s *Session) Next(scope []entity.Question) (*entity.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	picked, ok := PickUniform(CandidatePool(scope, s.served), s.intn)
	if !ok {
		return nil, false
	}

	s.served[picked.ID] = struct{}{}
	s.order = append(s.order, picked.ID)
	return &picked, true
}

// Served возвращает выданные вопросы в порядке выдачи
func (s *Session) Served() []uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]uint, len(s.order))
	copy(result, s.order)
	return result
}

// State вычисляет состояние сессии относительно текущего содержимого scope
func (s *Session) State(scope []entity.Question) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(CandidatePool(scope, s.served)) == 0 {
		return StateExhausted
	}
	return StateActive
}
