package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	"github.com/yourusername/trivia-catalog/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
)

// QuestionRepo хранит вопросы в памяти и реализует repository.QuestionRepository.
// Используется в режиме database.driver=memory и в тестах.
type QuestionRepo struct {
	mu         sync.RWMutex
	questions  map[uint]entity.Question
	nextID     uint
	categories *CategoryRepo
}

// NewQuestionRepo создает репозиторий вопросов.
// categories используется для проверки внешнего ключа при создании (как FK в Postgres).
func NewQuestionRepo(categories *CategoryRepo, questions ...entity.Question) *QuestionRepo {
	r := &QuestionRepo{
		questions:  make(map[uint]entity.Question, len(questions)),
		nextID:     1,
		categories: categories,
	}
	for _, q := range questions {
		r.questions[q.ID] = q
		if q.ID >= r.nextID {
			r.nextID = q.ID + 1
		}
	}
	return r
}

// Find возвращает вопросы по фильтру в порядке (category, id)
func (r *QuestionRepo) Find(filter repository.QuestionFilter) ([]entity.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]entity.Question, 0, len(r.questions))
	for _, q := range r.questions {
		if filter.CategoryID != nil && q.CategoryID != *filter.CategoryID {
			continue
		}
		if !q.MatchesText(filter.Search) {
			continue
		}
		result = append(result, q)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CategoryID != result[j].CategoryID {
			return result[i].CategoryID < result[j].CategoryID
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.questions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &q, nil
}

// Create сохраняет вопрос и присваивает ему ID
func (r *QuestionRepo) Create(question *entity.Question) error {
	if r.categories != nil && !r.categories.exists(question.CategoryID) {
		return fmt.Errorf("%w: category %d does not exist", apperrors.ErrValidation, question.CategoryID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	question.ID = r.nextID
	question.CreatedAt = now
	question.UpdatedAt = now
	r.nextID++
	r.questions[question.ID] = *question
	return nil
}

// Delete удаляет вопрос
func (r *QuestionRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.questions[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.questions, id)
	return nil
}

// Count возвращает количество вопросов
func (r *QuestionRepo) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.questions)), nil
}
