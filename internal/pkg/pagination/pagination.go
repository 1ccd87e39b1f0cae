package pagination

import (
	"fmt"

	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
)

// QuestionsPerPage: фиксированный размер страницы списка вопросов
const QuestionsPerPage = 10

// DefaultPage используется, когда номер страницы не передан
const DefaultPage = 1

// ValidatePage проверяет номер страницы (1-based). Значения < 1: ошибка ввода, без подрезки.
func ValidatePage(page int) error {
	if page < 1 {
		return fmt.Errorf("%w: page must be >= 1, got %d", apperrors.ErrValidation, page)
	}
	return nil
}

// PageCount возвращает количество страниц для total элементов
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate возвращает окно [(page-1)*size, page*size) по items, обрезанное по длине.
// Страница за пределами диапазона: пустой результат, не ошибка.
func Paginate[T any](items []T, page, size int) ([]T, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: page size must be positive, got %d", apperrors.ErrValidation, size)
	}
	if err := ValidatePage(page); err != nil {
		return nil, err
	}

	// Сравниваем номер страницы с количеством страниц, чтобы (page-1)*size не переполнился
	if page > PageCount(len(items), size) {
		return []T{}, nil
	}

	start := (page - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}

	result := make([]T, end-start)
	copy(result, items[start:end])
	return result, nil
}
