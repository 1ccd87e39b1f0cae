package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/trivia-catalog/internal/handler/dto"
	"github.com/yourusername/trivia-catalog/internal/service/quizplay"
)

// QuizHandler обрабатывает запросы игры в викторину
type QuizHandler struct {
	manager *quizplay.Manager
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(manager *quizplay.Manager) *QuizHandler {
	return &QuizHandler{manager: manager}
}

// QuizCategory: категория викторины в формате клиента; id 0 означает все категории
type QuizCategory struct {
	ID   flexUint `json:"id"`
	Type string   `json:"type"`
}

// PlayRequest: тело POST /api/quizzes
type PlayRequest struct {
	PreviousQuestions []uint        `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// StartSessionRequest: тело POST /api/quiz-sessions; пустое тело означает все категории
type StartSessionRequest struct {
	Category flexUint `json:"category"`
}

// Play выдает следующий вопрос без хранимой сессии: клиент сам передает уже показанные вопросы
// POST /api/quizzes
func (h *QuizHandler) Play(c *gin.Context) {
	var req PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	scope := quizplay.AllCategories()
	if req.QuizCategory != nil {
		scope = quizplay.CategoryScope(uint(req.QuizCategory.ID))
	}

	turn, err := h.manager.Play(scope, req.PreviousQuestions)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizTurnResponse(turn))
}

// StartSession создает сессию викторины
// POST /api/quiz-sessions
func (h *QuizHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err.Error())
		return
	}

	status, err := h.manager.Start(quizplay.CategoryScope(uint(req.Category)))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizSessionResponse(status))
}

// GetSession возвращает состояние сессии
// GET /api/quiz-sessions/:id
func (h *QuizHandler) GetSession(c *gin.Context) {
	status, err := h.manager.Status(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizSessionResponse(status))
}

// NextQuestion выдает следующий вопрос сессии или признак исчерпания
// POST /api/quiz-sessions/:id/next
func (h *QuizHandler) NextQuestion(c *gin.Context) {
	turn, err := h.manager.Next(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizTurnResponse(turn))
}

// EndSession завершает сессию
// DELETE /api/quiz-sessions/:id
func (h *QuizHandler) EndSession(c *gin.Context) {
	sessionID := c.Param("id")
	if err := h.manager.End(sessionID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "session_id": sessionID})
}
