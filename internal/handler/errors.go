package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
)

// respondError превращает ошибку сервиса в HTTP ответ
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusUnprocessableEntity, errorBody(err.Error()))
	case errors.Is(err, apperrors.ErrDataIntegrity):
		log.Printf("ERROR: нарушение целостности каталога: %v", err)
		c.JSON(http.StatusInternalServerError, errorBody("Catalog data is inconsistent"))
	default:
		log.Printf("ERROR: Internal server error: %v", err)
		c.JSON(http.StatusInternalServerError, errorBody("Internal server error"))
	}
}

// badRequest отвечает 400 с текстом ошибки
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorBody(msg))
}

func errorBody(msg string) gin.H {
	return gin.H{"success": false, "error": msg}
}
