package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yourusername/trivia-catalog/internal/pkg/errors"
	"github.com/yourusername/trivia-catalog/internal/pkg/pagination"
)

// flexUint принимает как число, так и строку с числом: фронтенд передает id категории строкой
type flexUint uint

func (f *flexUint) UnmarshalJSON(data []byte) error {
	raw, err := numberText(data)
	if err != nil || raw == "" {
		*f = 0
		return err
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid identifier %q", raw)
	}
	*f = flexUint(v)
	return nil
}

// flexInt: то же для сложности
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	raw, err := numberText(data)
	if err != nil || raw == "" {
		*f = 0
		return err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid number %q", raw)
	}
	*f = flexInt(v)
	return nil
}

// numberText возвращает текст числа из JSON-значения; null и пустая строка дают ""
func numberText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	return string(data), nil
}

// pageParam читает ?page=; отсутствие параметра означает первую страницу
func pageParam(c *gin.Context) (int, error) {
	raw, ok := c.GetQuery("page")
	if !ok {
		return pagination.DefaultPage, nil
	}
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid page %q", apperrors.ErrValidation, raw)
	}
	if err := pagination.ValidatePage(page); err != nil {
		return 0, err
	}
	return page, nil
}
