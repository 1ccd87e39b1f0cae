package quizplay

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	"github.com/yourusername/trivia-catalog/internal/domain/repository"
)

// AllCategoriesLabel: название scope по всему каталогу
const AllCategoriesLabel = "All Categories"

// CategoryIndex проверяет и называет категории
type CategoryIndex interface {
	NameOf(id uint) (string, error)
}

// Status описывает сессию для клиента
type Status struct {
	Info
	CategoryName string
	Total        int
	Served       int
	State        State
}

// Turn: результат запроса следующего вопроса.
// Exhausted=true: штатное завершение викторины, Question в этом случае nil.
type Turn struct {
	Question  *entity.Question
	Exhausted bool
	Total     int
}

// Manager управляет сессиями викторин: создание, выдача вопросов, завершение
type Manager struct {
	questionRepo repository.QuestionRepository
	categories   CategoryIndex
	store        Store
	intn         IntnFunc
	newID        func() string
	now          func() time.Time
}

// NewManager создает менеджер сессий
func NewManager(questionRepo repository.QuestionRepository, categories CategoryIndex, store Store) *Manager {
	return &Manager{
		questionRepo: questionRepo,
		categories:   categories,
		store:        store,
		intn:         defaultIntn,
		newID:        uuid.NewString,
		now:          time.Now,
	}
}

// Start создает сессию. Категория проверяется до создания; пустой scope дает сессию сразу в StateExhausted.
func (m *Manager) Start(scope Scope) (*Status, error) {
	name, err := m.scopeName(scope)
	if err != nil {
		return nil, err
	}

	questions, err := m.scopeQuestions(scope)
	if err != nil {
		return nil, err
	}

	info := Info{ID: m.newID(), Scope: scope, CreatedAt: m.now()}
	if err := m.store.Create(info); err != nil {
		return nil, fmt.Errorf("failed to create quiz session: %w", err)
	}

	state := StateActive
	if len(questions) == 0 {
		state = StateExhausted
	}

	log.Printf("[QuizPlay] Создана сессия %s (scope=%s, вопросов=%d)", info.ID, name, len(questions))
	return &Status{Info: info, CategoryName: name, Total: len(questions), State: state}, nil
}

// Next выдает следующий случайный невыданный вопрос сессии
func (m *Manager) Next(sessionID string) (*Turn, error) {
	info, err := m.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	// Чтение scope происходит до любой мутации сессии
	questions, err := m.scopeQuestions(info.Scope)
	if err != nil {
		return nil, err
	}

	question, ok, err := m.store.Draw(sessionID, questions)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Printf("[QuizPlay] Сессия %s исчерпана", sessionID)
		return &Turn{Exhausted: true, Total: len(questions)}, nil
	}
	return &Turn{Question: question, Total: len(questions)}, nil
}

// Status возвращает текущее состояние сессии
func (m *Manager) Status(sessionID string) (*Status, error) {
	info, err := m.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	name, err := m.scopeName(info.Scope)
	if err != nil {
		return nil, err
	}

	questions, err := m.scopeQuestions(info.Scope)
	if err != nil {
		return nil, err
	}

	served, err := m.store.Served(sessionID)
	if err != nil {
		return nil, err
	}

	servedSet := make(map[uint]struct{}, len(served))
	for _, id := range served {
		servedSet[id] = struct{}{}
	}
	state := StateActive
	if len(CandidatePool(questions, servedSet)) == 0 {
		state = StateExhausted
	}

	return &Status{Info: *info, CategoryName: name, Total: len(questions), Served: len(served), State: state}, nil
}

// End завершает сессию
func (m *Manager) End(sessionID string) error {
	if err := m.store.Delete(sessionID); err != nil {
		return err
	}
	log.Printf("[QuizPlay] Сессия %s завершена", sessionID)
	return nil
}

// Play выдает вопрос без хранимой сессии: клиент сам передает уже показанные вопросы.
// Используется одноразовая Session, поэтому алгоритм выбора тот же, что и у хранимых сессий.
func (m *Manager) Play(scope Scope, previous []uint) (*Turn, error) {
	if _, err := m.scopeName(scope); err != nil {
		return nil, err
	}

	questions, err := m.scopeQuestions(scope)
	if err != nil {
		return nil, err
	}

	session := NewSession("", scope, previous)
	session.intn = m.intn

	question, ok := session.Next(questions)
	if !ok {
		return &Turn{Exhausted: true, Total: len(questions)}, nil
	}
	return &Turn{Question: question, Total: len(questions)}, nil
}

func (m *Manager) scopeName(scope Scope) (string, error) {
	if scope.IsAll() {
		return AllCategoriesLabel, nil
	}
	return m.categories.NameOf(scope.CategoryID)
}

func (m *Manager) scopeQuestions(scope Scope) ([]entity.Question, error) {
	questions, err := m.questionRepo.Find(scope.Filter())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quiz scope: %w", err)
	}
	return questions, nil
}
