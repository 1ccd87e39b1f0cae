package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	"github.com/yourusername/trivia-catalog/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
	"github.com/yourusername/trivia-catalog/internal/pkg/pagination"
)

// SearchCriteria: входные параметры фильтра.
// nil означает "параметр не передан"; пустой Term после TrimSpace совпадает со всеми вопросами.
type SearchCriteria struct {
	Term       *string
	CategoryID *uint
}

// QuestionPage: одна страница выборки вместе с размером всей выборки
type QuestionPage struct {
	Questions []entity.Question
	Total     int
	Page      int
	Category  *entity.Category // nil, если выборка не ограничена категорией
}

// CreateQuestionInput: поля нового вопроса
type CreateQuestionInput struct {
	Question   string
	Answer     string
	CategoryID uint
	Difficulty int
}

// QuestionService предоставляет листинг, поиск и изменение каталога вопросов
type QuestionService struct {
	questionRepo repository.QuestionRepository
	categories   *CategoryService
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(questionRepo repository.QuestionRepository, categories *CategoryService) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		categories:   categories,
	}
}

// Filter строит предикат из критериев и возвращает все подходящие вопросы в порядке (category, id).
// Неизвестная категория: ErrNotFound, а не пустой результат.
func (s *QuestionService) Filter(criteria SearchCriteria) ([]entity.Question, error) {
	var filter repository.QuestionFilter

	if criteria.CategoryID != nil {
		if _, err := s.categories.Get(*criteria.CategoryID); err != nil {
			return nil, err
		}
		id := *criteria.CategoryID
		filter.CategoryID = &id
	}

	if criteria.Term != nil {
		filter.Search = strings.TrimSpace(*criteria.Term)
	}

	questions, err := s.questionRepo.Find(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}
	return questions, nil
}

// ListQuestions возвращает страницу всего каталога.
// Пустой каталог: ErrNotFound; страница за пределами непустого каталога: пустая страница.
func (s *QuestionService) ListQuestions(page int) (*QuestionPage, error) {
	if err := pagination.ValidatePage(page); err != nil {
		return nil, err
	}

	questions, err := s.Filter(SearchCriteria{})
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("catalog is empty: %w", apperrors.ErrNotFound)
	}
	if err := s.checkCategoryRefs(questions); err != nil {
		return nil, err
	}

	return s.page(questions, page, nil)
}

// ListByCategory возвращает страницу вопросов категории.
// Категория без вопросов трактуется как ErrNotFound, в отличие от страницы за пределами диапазона.
func (s *QuestionService) ListByCategory(categoryID uint, page int) (*QuestionPage, error) {
	if err := pagination.ValidatePage(page); err != nil {
		return nil, err
	}

	category, err := s.categories.Get(categoryID)
	if err != nil {
		return nil, err
	}

	questions, err := s.Filter(SearchCriteria{CategoryID: &categoryID})
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("category %d has no questions: %w", categoryID, apperrors.ErrNotFound)
	}

	return s.page(questions, page, category)
}

// Search возвращает страницу результатов поиска. Total: размер всей выборки до пагинации.
func (s *QuestionService) Search(criteria SearchCriteria, page int) (*QuestionPage, error) {
	if err := pagination.ValidatePage(page); err != nil {
		return nil, err
	}

	questions, err := s.Filter(criteria)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategoryRefs(questions); err != nil {
		return nil, err
	}

	var category *entity.Category
	if criteria.CategoryID != nil {
		if category, err = s.categories.Get(*criteria.CategoryID); err != nil {
			return nil, err
		}
	}

	return s.page(questions, page, category)
}

// CreateQuestion проверяет поля и сохраняет новый вопрос.
// Вся валидация выполняется до записи, поэтому при ошибке каталог не меняется.
func (s *QuestionService) CreateQuestion(input CreateQuestionInput) (*entity.Question, error) {
	question := &entity.Question{
		Text:       strings.TrimSpace(input.Question),
		Answer:     strings.TrimSpace(input.Answer),
		CategoryID: input.CategoryID,
		Difficulty: input.Difficulty,
	}

	var missing []string
	if question.Text == "" {
		missing = append(missing, "question")
	}
	if question.Answer == "" {
		missing = append(missing, "answer")
	}
	if question.CategoryID == 0 {
		missing = append(missing, "category")
	}
	if question.Difficulty == 0 {
		missing = append(missing, "difficulty")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing fields: %s", apperrors.ErrValidation, strings.Join(missing, ", "))
	}

	if !question.IsValidDifficulty() {
		return nil, fmt.Errorf("%w: difficulty must be between %d and %d, got %d",
			apperrors.ErrValidation, entity.MinDifficulty, entity.MaxDifficulty, question.Difficulty)
	}

	// Висячая ссылка на категорию не допускается
	if _, err := s.categories.Get(question.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %d does not exist", apperrors.ErrValidation, question.CategoryID)
		}
		return nil, err
	}

	if err := s.questionRepo.Create(question); err != nil {
		log.Printf("[QuestionService] Ошибка создания вопроса: %v", err)
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to create question: %v", apperrors.ErrConflict, err)
	}

	log.Printf("[QuestionService] Создан вопрос ID=%d в категории %d", question.ID, question.CategoryID)
	return question, nil
}

// DeleteQuestion удаляет вопрос и возвращает удаленную запись
func (s *QuestionService) DeleteQuestion(id uint) (*entity.Question, error) {
	question, err := s.questionRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("question %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}

	if err := s.questionRepo.Delete(id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("question %d: %w", id, apperrors.ErrNotFound)
		}
		log.Printf("[QuestionService] Ошибка удаления вопроса ID=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to delete question %d: %v", apperrors.ErrConflict, id, err)
	}

	log.Printf("[QuestionService] Удален вопрос ID=%d", id)
	return question, nil
}

// page нарезает выборку на страницу фиксированного размера
func (s *QuestionService) page(questions []entity.Question, page int, category *entity.Category) (*QuestionPage, error) {
	items, err := pagination.Paginate(questions, page, pagination.QuestionsPerPage)
	if err != nil {
		return nil, err
	}
	return &QuestionPage{
		Questions: items,
		Total:     len(questions),
		Page:      page,
		Category:  category,
	}, nil
}

// checkCategoryRefs проверяет, что каждый вопрос ссылается на существующую категорию
func (s *QuestionService) checkCategoryRefs(questions []entity.Question) error {
	if len(questions) == 0 {
		return nil
	}
	categories, err := s.categories.All()
	if err != nil {
		return err
	}
	known := make(map[uint]struct{}, len(categories))
	for _, c := range categories {
		known[c.ID] = struct{}{}
	}
	for _, q := range questions {
		if _, ok := known[q.CategoryID]; !ok {
			return fmt.Errorf("%w: question %d references unknown category %d", apperrors.ErrDataIntegrity, q.ID, q.CategoryID)
		}
	}
	return nil
}
