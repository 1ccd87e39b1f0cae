package dto

import (
	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	"github.com/yourusername/trivia-catalog/internal/service"
	"github.com/yourusername/trivia-catalog/internal/service/quizplay"
)

// QuestionView представляет вопрос в формате для ответа клиенту
type QuestionView struct {
	ID         uint   `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   uint   `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// ListQuestionsResponse: страница всего каталога
type ListQuestionsResponse struct {
	Success         bool              `json:"success"`
	Questions       []QuestionView    `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	Categories      map[string]string `json:"categories"`
	CurrentCategory map[string]string `json:"current_category"`
}

// CategoryQuestionsResponse: страница вопросов одной категории
type CategoryQuestionsResponse struct {
	Success         bool           `json:"success"`
	Questions       []QuestionView `json:"questions"`
	TotalQuestions  int            `json:"total_questions"`
	CurrentCategory string         `json:"current_category"`
}

// SearchQuestionsResponse: страница результатов поиска
type SearchQuestionsResponse struct {
	Success         bool           `json:"success"`
	Questions       []QuestionView `json:"questions"`
	TotalQuestions  int            `json:"total_questions"`
	CurrentCategory string         `json:"current_category,omitempty"`
}

// CreateQuestionResponse: созданный вопрос
type CreateQuestionResponse struct {
	Success  bool         `json:"success"`
	Created  uint         `json:"created"`
	Question QuestionView `json:"question"`
}

// DeleteQuestionResponse: результат удаления и первая страница каталога после него
type DeleteQuestionResponse struct {
	Success        bool           `json:"success"`
	Deleted        uint           `json:"deleted"`
	Questions      []QuestionView `json:"questions"`
	TotalQuestions int            `json:"total_questions"`
}

// CategoriesResponse: все категории
type CategoriesResponse struct {
	Success         bool              `json:"success"`
	Categories      map[string]string `json:"categories"`
	TotalCategories int               `json:"total_categories"`
}

// QuizTurnResponse: следующий вопрос викторины или признак исчерпания
type QuizTurnResponse struct {
	Success        bool          `json:"success"`
	Question       *QuestionView `json:"question,omitempty"`
	Exhausted      bool          `json:"exhausted,omitempty"`
	TotalQuestions int           `json:"total_questions"`
}

// QuizSessionResponse: состояние сессии викторины
type QuizSessionResponse struct {
	Success         bool   `json:"success"`
	SessionID       string `json:"session_id"`
	CategoryID      uint   `json:"category_id"`
	CurrentCategory string `json:"current_category"`
	TotalQuestions  int    `json:"total_questions"`
	Served          int    `json:"served"`
	State           string `json:"state"`
}

// NewQuestionView создает DTO для вопроса
func NewQuestionView(q *entity.Question) QuestionView {
	return QuestionView{
		ID:         q.ID,
		Question:   q.Text,
		Answer:     q.Answer,
		Category:   q.CategoryID,
		Difficulty: q.Difficulty,
	}
}

// NewQuestionViews создает DTO для списка вопросов; пустой список сериализуется как [], а не null
func NewQuestionViews(questions []entity.Question) []QuestionView {
	views := make([]QuestionView, len(questions))
	for i := range questions {
		views[i] = NewQuestionView(&questions[i])
	}
	return views
}

// NewListQuestionsResponse формирует ответ листинга каталога.
// current_category: пустой объект: листинг не ограничен категорией.
func NewListQuestionsResponse(page *service.QuestionPage, categories map[string]string) *ListQuestionsResponse {
	return &ListQuestionsResponse{
		Success:         true,
		Questions:       NewQuestionViews(page.Questions),
		TotalQuestions:  page.Total,
		Categories:      categories,
		CurrentCategory: map[string]string{},
	}
}

// NewCategoryQuestionsResponse формирует ответ листинга категории
func NewCategoryQuestionsResponse(page *service.QuestionPage) *CategoryQuestionsResponse {
	resp := &CategoryQuestionsResponse{
		Success:        true,
		Questions:      NewQuestionViews(page.Questions),
		TotalQuestions: page.Total,
	}
	if page.Category != nil {
		resp.CurrentCategory = page.Category.Type
	}
	return resp
}

// NewSearchQuestionsResponse формирует ответ поиска
func NewSearchQuestionsResponse(page *service.QuestionPage) *SearchQuestionsResponse {
	resp := &SearchQuestionsResponse{
		Success:        true,
		Questions:      NewQuestionViews(page.Questions),
		TotalQuestions: page.Total,
	}
	if page.Category != nil {
		resp.CurrentCategory = page.Category.Type
	}
	return resp
}

// NewQuizTurnResponse формирует ответ с очередным вопросом викторины
func NewQuizTurnResponse(turn *quizplay.Turn) *QuizTurnResponse {
	resp := &QuizTurnResponse{
		Success:        true,
		Exhausted:      turn.Exhausted,
		TotalQuestions: turn.Total,
	}
	if turn.Question != nil {
		view := NewQuestionView(turn.Question)
		resp.Question = &view
	}
	return resp
}

// NewQuizSessionResponse формирует ответ с состоянием сессии
func NewQuizSessionResponse(status *quizplay.Status) *QuizSessionResponse {
	return &QuizSessionResponse{
		Success:         true,
		SessionID:       status.ID,
		CategoryID:      status.Scope.CategoryID,
		CurrentCategory: status.CategoryName,
		TotalQuestions:  status.Total,
		Served:          status.Served,
		State:           string(status.State),
	}
}
