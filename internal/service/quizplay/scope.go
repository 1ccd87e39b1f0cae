package quizplay

import (
	"github.com/yourusername/trivia-catalog/internal/domain/repository"
)

// Scope: подмножество каталога, из которого сессия выбирает вопросы
type Scope struct {
	// CategoryID == 0 означает все категории
	CategoryID uint `json:"category_id"`
}

// AllCategories возвращает scope по всему каталогу
func AllCategories() Scope {
	return Scope{}
}

// CategoryScope возвращает scope по одной категории
func CategoryScope(categoryID uint) Scope {
	return Scope{CategoryID: categoryID}
}

// IsAll сообщает, охватывает ли scope весь каталог
func (s Scope) IsAll() bool {
	return s.CategoryID == 0
}

// Filter возвращает предикат выборки вопросов scope
func (s Scope) Filter() repository.QuestionFilter {
	if s.IsAll() {
		return repository.QuestionFilter{}
	}
	id := s.CategoryID
	return repository.QuestionFilter{CategoryID: &id}
}
