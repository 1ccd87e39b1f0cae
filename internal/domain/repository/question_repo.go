package repository

import (
	"github.com/yourusername/trivia-catalog/internal/domain/entity"
)

// QuestionFilter определяет предикат выборки вопросов.
// Пустые поля означают отсутствие ограничения; несколько полей объединяются через AND.
type QuestionFilter struct {
	CategoryID *uint  // Фильтр по категории
	Search     string // Регистронезависимый поиск подстроки в тексте вопроса
}

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	// Find возвращает вопросы, подходящие под фильтр, упорядоченные по категории, затем по ID
	Find(filter QuestionFilter) ([]entity.Question, error)
	GetByID(id uint) (*entity.Question, error)
	Create(question *entity.Question) error
	Delete(id uint) error
	Count() (int64, error)
}
