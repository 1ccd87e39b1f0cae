package memory

import (
	"sort"
	"sync"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
)

// DefaultCategories: стартовый набор категорий, совпадает с сидом в миграциях
var DefaultCategories = []entity.Category{
	{ID: 1, Type: "Science"},
	{ID: 2, Type: "Art"},
	{ID: 3, Type: "Geography"},
	{ID: 4, Type: "History"},
	{ID: 5, Type: "Entertainment"},
	{ID: 6, Type: "Sports"},
}

// CategoryRepo хранит категории в памяти и реализует repository.CategoryRepository
type CategoryRepo struct {
	mu         sync.RWMutex
	categories map[uint]entity.Category
}

// NewCategoryRepo создает репозиторий с заданными категориями
func NewCategoryRepo(categories ...entity.Category) *CategoryRepo {
	r := &CategoryRepo{categories: make(map[uint]entity.Category, len(categories))}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return r
}

// List возвращает все категории по возрастанию ID
func (r *CategoryRepo) List() ([]entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]entity.Category, 0, len(r.categories))
	for _, c := range r.categories {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// GetByID возвращает категорию по ID
func (r *CategoryRepo) GetByID(id uint) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (r *CategoryRepo) exists(id uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.categories[id]
	return ok
}
