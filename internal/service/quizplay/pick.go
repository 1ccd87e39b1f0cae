package quizplay

import (
	"math/rand/v2"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
)

// IntnFunc возвращает равномерно распределенное число в [0, n)
type IntnFunc func(n int) int

// defaultIntn: источник случайности по умолчанию
var defaultIntn IntnFunc = rand.IntN

// CandidatePool возвращает вопросы scope, которые еще не выдавались.
// Пул строится вычитанием множества идентификаторов и пересчитывается перед каждым выбором,
// поэтому индексы уже выданных вопросов нигде не хранятся.
func CandidatePool(scope []entity.Question, served map[uint]struct{}) []entity.Question {
	pool := make([]entity.Question, 0, len(scope))
	for _, q := range scope {
		if _, seen := served[q.ID]; seen {
			continue
		}
		pool = append(pool, q)
	}
	return pool
}

// PickUniform выбирает элемент пула равновероятно. Пустой пул: ok=false.
func PickUniform(pool []entity.Question, intn IntnFunc) (entity.Question, bool) {
	if len(pool) == 0 {
		return entity.Question{}, false
	}
	if intn == nil {
		intn = defaultIntn
	}
	return pool[intn(len(pool))], true
}
