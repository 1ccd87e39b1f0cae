package repository

import (
	"github.com/yourusername/trivia-catalog/internal/domain/entity"
)

// CategoryRepository определяет методы для работы с категориями
type CategoryRepository interface {
	// List возвращает все категории, упорядоченные по ID
	List() ([]entity.Category, error)
	GetByID(id uint) (*entity.Category, error)
}
