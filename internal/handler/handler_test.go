package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	"github.com/yourusername/trivia-catalog/internal/handler/dto"
	"github.com/yourusername/trivia-catalog/internal/repository/memory"
	"github.com/yourusername/trivia-catalog/internal/service"
	"github.com/yourusername/trivia-catalog/internal/service/quizplay"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router    *gin.Engine
	questions *memory.QuestionRepo
}

// newTestServer: категории Science, Art, Geography по 5 вопросов и пустая History
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	categories := memory.NewCategoryRepo(
		entity.Category{ID: 1, Type: "Science"},
		entity.Category{ID: 2, Type: "Art"},
		entity.Category{ID: 3, Type: "Geography"},
		entity.Category{ID: 4, Type: "History"},
	)
	var questions []entity.Question
	for i := uint(1); i <= 15; i++ {
		questions = append(questions, entity.Question{
			ID:         i,
			Text:       fmt.Sprintf("Question number %d", i),
			Answer:     "Answer",
			CategoryID: (i-1)/5 + 1,
			Difficulty: 1,
		})
	}
	questions[13].Text = "What is the Title of the 1990 fantasy directed by Tim Burton?"
	questionRepo := memory.NewQuestionRepo(categories, questions...)

	return newServer(categories, questionRepo)
}

func newServer(categories *memory.CategoryRepo, questionRepo *memory.QuestionRepo) *testServer {
	categoryService := service.NewCategoryService(categories, nil, 0)
	questionService := service.NewQuestionService(questionRepo, categoryService)
	exportService := service.NewExportService(questionService, categoryService)
	manager := quizplay.NewManager(questionRepo, categoryService, quizplay.NewMemoryStore(time.Hour))

	router := gin.New()
	RegisterRoutes(
		router.Group("/api"),
		NewCategoryHandler(categoryService, questionService),
		NewQuestionHandler(questionService, categoryService, exportService),
		NewQuizHandler(manager),
		nil,
	)
	return &testServer{router: router, questions: questionRepo}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func viewIDs(views []dto.QuestionView) []uint {
	ids := make([]uint, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	return ids
}

func TestListQuestions(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/questions?page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.ListQuestionsResponse](t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, 15, resp.TotalQuestions)
	assert.Equal(t, []uint{11, 12, 13, 14, 15}, viewIDs(resp.Questions))
	assert.Equal(t, "Art", resp.Categories["2"])
	assert.Len(t, resp.Categories, 4)
	assert.Empty(t, resp.CurrentCategory)
	assert.Contains(t, w.Body.String(), `"current_category":{}`)
}

func TestListQuestions_DefaultsToFirstPage(t *testing.T) {
	s := newTestServer(t)

	resp := decode[dto.ListQuestionsResponse](t, s.do(t, http.MethodGet, "/api/questions", nil))
	assert.Equal(t, []uint{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, viewIDs(resp.Questions))
}

func TestListQuestions_PageBeyondRangeIsEmpty(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/questions?page=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"questions":[]`)
	assert.Equal(t, 15, decode[dto.ListQuestionsResponse](t, w).TotalQuestions)
}

func TestListQuestions_InvalidPage(t *testing.T) {
	s := newTestServer(t)

	for _, page := range []string{"0", "-1", "abc"} {
		w := s.do(t, http.MethodGet, "/api/questions?page="+page, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "page=%s", page)
		assert.Contains(t, w.Body.String(), `"success":false`)
	}
}

func TestListQuestions_EmptyCatalog(t *testing.T) {
	categories := memory.NewCategoryRepo(memory.DefaultCategories...)
	s := newServer(categories, memory.NewQuestionRepo(categories))

	w := s.do(t, http.MethodGet, "/api/questions", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCategories(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.CategoriesResponse](t, w)
	assert.Equal(t, 4, resp.TotalCategories)
	assert.Equal(t, map[string]string{"1": "Science", "2": "Art", "3": "Geography", "4": "History"}, resp.Categories)
}

func TestListCategories_None(t *testing.T) {
	categories := memory.NewCategoryRepo()
	s := newServer(categories, memory.NewQuestionRepo(categories))

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/categories", nil).Code)
}

func TestListCategoryQuestions(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/categories/2/questions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.CategoryQuestionsResponse](t, w)
	assert.Equal(t, []uint{6, 7, 8, 9, 10}, viewIDs(resp.Questions))
	assert.Equal(t, 5, resp.TotalQuestions)
	assert.Equal(t, "Art", resp.CurrentCategory)
}

func TestListCategoryQuestions_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		path string
		code int
	}{
		{"unknown category", "/api/categories/99/questions", http.StatusNotFound},
		{"category without questions", "/api/categories/4/questions", http.StatusNotFound},
		{"malformed id", "/api/categories/abc/questions", http.StatusBadRequest},
		{"invalid page", "/api/categories/1/questions?page=0", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, s.do(t, http.MethodGet, tt.path, nil).Code)
		})
	}
}

func TestSearchQuestions(t *testing.T) {
	s := newTestServer(t)

	for _, term := range []string{"title", "TITLE"} {
		w := s.do(t, http.MethodPost, "/api/questions/search", map[string]string{"searchTerm": term})
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[dto.SearchQuestionsResponse](t, w)
		assert.Equal(t, []uint{14}, viewIDs(resp.Questions), "term %q", term)
		assert.Equal(t, 1, resp.TotalQuestions)
	}
}

func TestSearchQuestions_TotalCountsAllMatches(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/questions/search?page=2", map[string]string{"searchTerm": "number"})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.SearchQuestionsResponse](t, w)
	assert.Equal(t, 14, resp.TotalQuestions)
	assert.Len(t, resp.Questions, 4)
}

func TestSearchQuestions_WithCategory(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/questions/search", `{"searchTerm":"number 1","category":"1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.SearchQuestionsResponse](t, w)
	assert.Equal(t, []uint{1}, viewIDs(resp.Questions))
	assert.Equal(t, "Science", resp.CurrentCategory)
}

func TestSearchQuestions_BadRequests(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/questions/search", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/questions/search", `{"searchTerm":`).Code)
	assert.Equal(t, http.StatusNotFound,
		s.do(t, http.MethodPost, "/api/questions/search", `{"searchTerm":"x","category":42}`).Code)
}

func TestCreateQuestion(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/questions", map[string]interface{}{
		"question":   "Who painted the Mona Lisa?",
		"answer":     "Leonardo da Vinci",
		"category":   "2",
		"difficulty": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[dto.CreateQuestionResponse](t, w)
	assert.Equal(t, uint(16), resp.Created)
	assert.Equal(t, dto.QuestionView{
		ID: 16, Question: "Who painted the Mona Lisa?", Answer: "Leonardo da Vinci", Category: 2, Difficulty: 2,
	}, resp.Question)

	count, err := s.questions.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(16), count)
}

func TestCreateQuestion_Invalid(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"empty answer", `{"question":"Q","answer":"","category":1,"difficulty":1}`, http.StatusBadRequest},
		{"missing category", `{"question":"Q","answer":"A","difficulty":1}`, http.StatusBadRequest},
		{"unknown category", `{"question":"Q","answer":"A","category":42,"difficulty":1}`, http.StatusBadRequest},
		{"difficulty out of range", `{"question":"Q","answer":"A","category":1,"difficulty":9}`, http.StatusBadRequest},
		{"malformed category", `{"question":"Q","answer":"A","category":"science","difficulty":1}`, http.StatusBadRequest},
		{"malformed json", `{"question":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/questions", tt.body)
			assert.Equal(t, tt.code, w.Code)

			count, err := s.questions.Count()
			require.NoError(t, err)
			assert.Equal(t, int64(15), count)
		})
	}
}

func TestCreateQuestion_SearchTermPerformsSearch(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/questions", `{"searchTerm":"burton"}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.SearchQuestionsResponse](t, w)
	assert.Equal(t, []uint{14}, viewIDs(resp.Questions))
}

func TestDeleteQuestion(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodDelete, "/api/questions/3", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.DeleteQuestionResponse](t, w)
	assert.Equal(t, uint(3), resp.Deleted)
	assert.Equal(t, 14, resp.TotalQuestions)
	assert.Equal(t, []uint{1, 2, 4, 5, 6, 7, 8, 9, 10, 11}, viewIDs(resp.Questions))

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/questions/3", nil).Code)
}

func TestDeleteQuestion_LastQuestion(t *testing.T) {
	categories := memory.NewCategoryRepo(memory.DefaultCategories...)
	questions := memory.NewQuestionRepo(categories, entity.Question{ID: 1, Text: "Q", Answer: "A", CategoryID: 1, Difficulty: 1})
	s := newServer(categories, questions)

	w := s.do(t, http.MethodDelete, "/api/questions/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"questions":[]`)
	assert.Contains(t, w.Body.String(), `"total_questions":0`)
}

func TestExportQuestions(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/questions/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Equal(t, 16, strings.Count(w.Body.String(), "\n"))

	w = s.do(t, http.MethodGet, "/api/questions/export?format=xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")), "xlsx: zip-архив")

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/questions/export?format=pdf", nil).Code)
}

func TestQuizSession_CategoryScope(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/quiz-sessions", `{"category":2}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	session := decode[dto.QuizSessionResponse](t, w)
	require.NotEmpty(t, session.SessionID)
	assert.Equal(t, "Art", session.CurrentCategory)
	assert.Equal(t, 5, session.TotalQuestions)
	assert.Equal(t, "active", session.State)

	seen := make(map[uint]bool)
	for i := 0; i < 5; i++ {
		w := s.do(t, http.MethodPost, "/api/quiz-sessions/"+session.SessionID+"/next", nil)
		require.Equal(t, http.StatusOK, w.Code)

		turn := decode[dto.QuizTurnResponse](t, w)
		require.NotNil(t, turn.Question)
		assert.False(t, turn.Exhausted)
		assert.Equal(t, uint(2), turn.Question.Category)
		assert.False(t, seen[turn.Question.ID], "вопрос %d выдан повторно", turn.Question.ID)
		seen[turn.Question.ID] = true
	}
	assert.Len(t, seen, 5)

	w = s.do(t, http.MethodPost, "/api/quiz-sessions/"+session.SessionID+"/next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	turn := decode[dto.QuizTurnResponse](t, w)
	assert.True(t, turn.Exhausted)
	assert.Nil(t, turn.Question)

	status := decode[dto.QuizSessionResponse](t, s.do(t, http.MethodGet, "/api/quiz-sessions/"+session.SessionID, nil))
	assert.Equal(t, 5, status.Served)
	assert.Equal(t, "exhausted", status.State)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/quiz-sessions/"+session.SessionID, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/quiz-sessions/"+session.SessionID+"/next", nil).Code)
}

func TestQuizSession_EmptyBodyMeansAllCategories(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/quiz-sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	session := decode[dto.QuizSessionResponse](t, w)
	assert.Equal(t, quizplay.AllCategoriesLabel, session.CurrentCategory)
	assert.Equal(t, 15, session.TotalQuestions)
}

func TestQuizSession_Errors(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/quiz-sessions", `{"category":99}`).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/quiz-sessions/missing/next", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/quiz-sessions/missing", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/quiz-sessions/missing", nil).Code)
}

func TestPlay(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/quizzes", map[string]interface{}{
		"previous_questions": []uint{1, 2, 3, 4},
		"quiz_category":      map[string]interface{}{"id": "1", "type": "Science"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	turn := decode[dto.QuizTurnResponse](t, w)
	require.NotNil(t, turn.Question)
	assert.Equal(t, uint(5), turn.Question.ID)

	w = s.do(t, http.MethodPost, "/api/quizzes", `{"previous_questions":[1,2,3,4,5],"quiz_category":{"id":1}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[dto.QuizTurnResponse](t, w).Exhausted)
}

func TestPlay_AllCategories(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/quizzes", `{"previous_questions":[],"quiz_category":{"id":0,"type":"click"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	turn := decode[dto.QuizTurnResponse](t, w)
	require.NotNil(t, turn.Question)
	assert.Equal(t, 15, turn.TotalQuestions)
}

func TestPlay_UnknownCategory(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/quizzes", `{"quiz_category":{"id":42}}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
