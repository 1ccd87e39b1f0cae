package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/yourusername/trivia-catalog/internal/middleware"
)

// RegisterRoutes настраивает маршруты API в группе api.
// quizLimit ограничивает частоту запросов к викторинам; nil: без ограничения.
func RegisterRoutes(
	api *gin.RouterGroup,
	categoryHandler *CategoryHandler,
	questionHandler *QuestionHandler,
	quizHandler *QuizHandler,
	quizLimit gin.HandlerFunc,
) {
	// Категории
	categories := api.Group("/categories")
	{
		categories.GET("", categoryHandler.ListCategories)
		categories.GET("/:id/questions", middleware.ExtractUintParam("id", "categoryID"), categoryHandler.ListCategoryQuestions)
	}

	// Вопросы
	questions := api.Group("/questions")
	{
		questions.GET("", questionHandler.ListQuestions)
		questions.POST("", questionHandler.CreateQuestion)
		questions.POST("/search", questionHandler.SearchQuestions)
		questions.GET("/export", questionHandler.ExportQuestions)
		questions.DELETE("/:id", middleware.ExtractUintParam("id", "questionID"), questionHandler.DeleteQuestion)
	}

	// Викторины
	quiz := api.Group("")
	if quizLimit != nil {
		quiz.Use(quizLimit)
	}
	{
		quiz.POST("/quizzes", quizHandler.Play)

		sessions := quiz.Group("/quiz-sessions")
		sessions.POST("", quizHandler.StartSession)
		sessions.GET("/:id", quizHandler.GetSession)
		sessions.POST("/:id/next", quizHandler.NextQuestion)
		sessions.DELETE("/:id", quizHandler.EndSession)
	}
}
