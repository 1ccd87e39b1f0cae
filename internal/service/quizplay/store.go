package quizplay

import (
	"fmt"
	"time"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
)

// Info: неизменяемые данные сессии
type Info struct {
	ID        string    `json:"id"`
	Scope     Scope     `json:"scope"`
	CreatedAt time.Time `json:"created_at"`
}

// Store хранит сессии викторин.
// Draw обязан выбирать и записывать вопрос атомарно: любой идентификатор
// может получить ровно один вызывающий, даже при конкурентных вызовах для одной сессии.
type Store interface {
	Create(info Info) error
	Get(id string) (*Info, error)
	Draw(id string, scope []entity.Question) (*entity.Question, bool, error)
	Served(id string) ([]uint, error)
	Delete(id string) error
}

func sessionNotFound(id string) error {
	return fmt.Errorf("quiz session %s: %w", id, apperrors.ErrNotFound)
}
