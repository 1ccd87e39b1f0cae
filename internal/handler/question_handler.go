package handler

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/trivia-catalog/internal/handler/dto"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
	"github.com/yourusername/trivia-catalog/internal/pkg/pagination"
	"github.com/yourusername/trivia-catalog/internal/service"
)

// QuestionHandler обрабатывает запросы к каталогу вопросов
type QuestionHandler struct {
	questionService *service.QuestionService
	categoryService *service.CategoryService
	exportService   *service.ExportService
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(
	questionService *service.QuestionService,
	categoryService *service.CategoryService,
	exportService *service.ExportService,
) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		categoryService: categoryService,
		exportService:   exportService,
	}
}

// CreateQuestionRequest: тело POST /api/questions.
// Если передан searchTerm, запрос трактуется как поиск.
type CreateQuestionRequest struct {
	SearchTerm *string  `json:"searchTerm"`
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Category   flexUint `json:"category"`
	Difficulty flexInt  `json:"difficulty"`
}

// SearchQuestionsRequest: тело POST /api/questions/search
type SearchQuestionsRequest struct {
	SearchTerm *string   `json:"searchTerm"`
	Category   *flexUint `json:"category"`
}

// ListQuestions возвращает страницу всего каталога
// GET /api/questions?page=
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.questionService.ListQuestions(page)
	if err != nil {
		respondError(c, err)
		return
	}

	names, err := h.categoryService.Names()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListQuestionsResponse(result, names))
}

// CreateQuestion создает вопрос либо выполняет поиск, если передан searchTerm
// POST /api/questions
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if req.SearchTerm != nil {
		h.search(c, service.SearchCriteria{Term: req.SearchTerm})
		return
	}

	question, err := h.questionService.CreateQuestion(service.CreateQuestionInput{
		Question:   req.Question,
		Answer:     req.Answer,
		CategoryID: uint(req.Category),
		Difficulty: int(req.Difficulty),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateQuestionResponse{
		Success:  true,
		Created:  question.ID,
		Question: dto.NewQuestionView(question),
	})
}

// SearchQuestions ищет вопросы по подстроке, опционально внутри категории
// POST /api/questions/search?page=
func (h *QuestionHandler) SearchQuestions(c *gin.Context) {
	var req SearchQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.SearchTerm == nil {
		badRequest(c, "searchTerm is required")
		return
	}

	criteria := service.SearchCriteria{Term: req.SearchTerm}
	if req.Category != nil && *req.Category != 0 {
		id := uint(*req.Category)
		criteria.CategoryID = &id
	}
	h.search(c, criteria)
}

func (h *QuestionHandler) search(c *gin.Context, criteria service.SearchCriteria) {
	page, err := pageParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.questionService.Search(criteria, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSearchQuestionsResponse(result))
}

// DeleteQuestion удаляет вопрос и возвращает первую страницу оставшегося каталога
// DELETE /api/questions/:id
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	deleted, err := h.questionService.DeleteQuestion(questionID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.DeleteQuestionResponse{
		Success:   true,
		Deleted:   deleted.ID,
		Questions: []dto.QuestionView{},
	}

	// Пустой каталог после удаления, не ошибка удаления
	remaining, err := h.questionService.ListQuestions(pagination.DefaultPage)
	switch {
	case err == nil:
		resp.Questions = dto.NewQuestionViews(remaining.Questions)
		resp.TotalQuestions = remaining.Total
	case errors.Is(err, apperrors.ErrNotFound):
	default:
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ExportQuestions выгружает каталог в CSV или Excel формате
// GET /api/questions/export?format=csv|xlsx
func (h *QuestionHandler) ExportQuestions(c *gin.Context) {
	format := c.DefaultQuery("format", service.ExportFormatCSV)
	if format != service.ExportFormatCSV && format != service.ExportFormatXLSX {
		badRequest(c, fmt.Sprintf("unsupported export format %q", format))
		return
	}

	var buf bytes.Buffer
	if err := h.exportService.Export(&buf, format); err != nil {
		log.Printf("[QuestionHandler] Ошибка выгрузки каталога: %v", err)
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("questions_%s.%s", time.Now().Format("2006-01-02"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Data(http.StatusOK, service.ContentType(format), buf.Bytes())
}
