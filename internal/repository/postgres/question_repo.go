package postgres

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	"github.com/yourusername/trivia-catalog/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
)

// likeEscaper экранирует спецсимволы шаблона LIKE, чтобы поиск был поиском подстроки
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Find возвращает вопросы по фильтру в детерминированном порядке (category, id)
func (r *QuestionRepo) Find(filter repository.QuestionFilter) ([]entity.Question, error) {
	var questions []entity.Question

	query := r.db.Model(&entity.Question{})

	if filter.CategoryID != nil {
		query = query.Where("category = ?", *filter.CategoryID)
	}

	if filter.Search != "" {
		query = query.Where("question ILIKE ?", "%"+likeEscaper.Replace(filter.Search)+"%")
	}

	err := query.Order("category").Order("id").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(question *entity.Question) error {
	err := r.db.Create(question).Error
	switch {
	case err == nil:
		return nil
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: category %d does not exist", apperrors.ErrValidation, question.CategoryID)
	case isUniqueViolation(err):
		// Обычно означает рассинхрон последовательности id после ручного сидинга
		return fmt.Errorf("%w: duplicate question id: %v", apperrors.ErrConflict, err)
	default:
		return err
	}
}

// Delete удаляет вопрос
func (r *QuestionRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Question{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Count возвращает общее количество вопросов в каталоге
func (r *QuestionRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.Question{}).Count(&count).Error
	return count, err
}
