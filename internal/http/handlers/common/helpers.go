package common

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrInvalidUUID is returned when UUID parsing fails
var ErrInvalidUUID = errors.New("неверный формат UUID")

// ParseUUIDParam parses UUID from URL parameter.
// Only the canonical lowercase 8-4-4-4-12 form is accepted.
func ParseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, error) {
	param := c.Param(paramName)
	if param == "" {
		return uuid.Nil, fmt.Errorf("параметр %s отсутствует", paramName)
	}

	parsed, err := uuid.Parse(param)
	if err != nil || parsed.String() != param {
		return uuid.Nil, ErrInvalidUUID
	}

	return parsed, nil
}

// OptionalPostForm возвращает значение поля формы или nil, если поле не передано.
// Пустое значение переданного поля сохраняется как пустая строка.
func OptionalPostForm(c *gin.Context, key string) *string {
	value, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &value
}
