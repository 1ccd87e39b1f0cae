package entity

import (
	"strings"
	"time"
)

// Границы шкалы сложности вопроса
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Question представляет вопрос каталога
type Question struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Text       string    `gorm:"column:question;type:text;not null" json:"question"`
	Answer     string    `gorm:"type:text;not null" json:"answer"`
	CategoryID uint      `gorm:"column:category;not null;index" json:"category"`
	Difficulty int       `gorm:"not null" json:"difficulty"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsValidDifficulty проверяет, что сложность попадает в шкалу 1..5
func (q *Question) IsValidDifficulty() bool {
	return q.Difficulty >= MinDifficulty && q.Difficulty <= MaxDifficulty
}

// MatchesText проверяет регистронезависимое вхождение подстроки в текст вопроса.
// Пустой term совпадает с любым вопросом.
func (q *Question) MatchesText(term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(q.Text), strings.ToLower(term))
}
