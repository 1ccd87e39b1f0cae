package service

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	"github.com/yourusername/trivia-catalog/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
)

// categoriesCacheKey: ключ кеша со списком категорий
const categoriesCacheKey = "catalog:categories"

// CategoryService: индекс категорий: id → название.
// Используется для аннотирования ответов и проверки категорий до обращения к вопросам.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	cacheRepo    repository.CacheRepository
	cacheTTL     time.Duration
}

// NewCategoryService создает новый сервис категорий.
// cacheRepo может быть nil: тогда категории читаются из хранилища при каждом запросе.
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		cacheRepo:    cacheRepo,
		cacheTTL:     cacheTTL,
	}
}

// All возвращает все категории по возрастанию ID
func (s *CategoryService) All() ([]entity.Category, error) {
	if s.cacheRepo != nil {
		var cached []entity.Category
		err := s.cacheRepo.GetJSON(categoriesCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			// Кеш недоступен, идем в хранилище
			log.Printf("[CategoryService] WARNING: ошибка чтения кеша категорий: %v", err)
		}
	}

	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if s.cacheRepo != nil && s.cacheTTL > 0 {
		if err := s.cacheRepo.SetJSON(categoriesCacheKey, categories, s.cacheTTL); err != nil {
			log.Printf("[CategoryService] WARNING: не удалось записать категории в кеш: %v", err)
		}
	}

	return categories, nil
}

// Get возвращает категорию по ID или ErrNotFound
func (s *CategoryService) Get(id uint) (*entity.Category, error) {
	categories, err := s.All()
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i], nil
		}
	}
	return nil, fmt.Errorf("category %d: %w", id, apperrors.ErrNotFound)
}

// NameOf возвращает название категории или ErrNotFound
func (s *CategoryService) NameOf(id uint) (string, error) {
	category, err := s.Get(id)
	if err != nil {
		return "", err
	}
	return category.Type, nil
}

// Names возвращает отображение id → название с ключами-строками (формат JSON-объекта)
func (s *CategoryService) Names() (map[string]string, error) {
	categories, err := s.All()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[strconv.FormatUint(uint64(c.ID), 10)] = c.Type
	}
	return names, nil
}

// Invalidate сбрасывает кеш категорий
func (s *CategoryService) Invalidate() {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Delete(categoriesCacheKey); err != nil {
		log.Printf("[CategoryService] WARNING: не удалось сбросить кеш категорий: %v", err)
	}
}
