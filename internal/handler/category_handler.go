package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/trivia-catalog/internal/handler/dto"
	"github.com/yourusername/trivia-catalog/internal/service"
)

// CategoryHandler обрабатывает запросы, связанные с категориями
type CategoryHandler struct {
	categoryService *service.CategoryService
	questionService *service.QuestionService
}

// NewCategoryHandler создает новый обработчик категорий
func NewCategoryHandler(categoryService *service.CategoryService, questionService *service.QuestionService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		questionService: questionService,
	}
}

// ListCategories возвращает все категории в виде {id: название}
// GET /api/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	names, err := h.categoryService.Names()
	if err != nil {
		respondError(c, err)
		return
	}
	if len(names) == 0 {
		c.JSON(http.StatusNotFound, errorBody("No categories found"))
		return
	}

	c.JSON(http.StatusOK, dto.CategoriesResponse{
		Success:         true,
		Categories:      names,
		TotalCategories: len(names),
	})
}

// ListCategoryQuestions возвращает страницу вопросов категории
// GET /api/categories/:id/questions?page=
func (h *CategoryHandler) ListCategoryQuestions(c *gin.Context) {
	categoryID := c.MustGet("categoryID").(uint) // Получаем из контекста

	page, err := pageParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.questionService.ListByCategory(categoryID, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCategoryQuestionsResponse(result))
}
