package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UUIDValidator проверяет, что параметр с указанным именем является UUID в канонической записи.
// Иначе запрос прерывается с ошибкой invalid, которую рендерит ErrorHandler.
// Использование: router.GET("/portfolio/:public_id", UUIDValidator("public_id", apperror.ErrProfileNotFound), handler.View)
func UUIDValidator(paramName string, invalid error) gin.HandlerFunc {
	return func(c *gin.Context) {
		param := c.Param(paramName)
		if parsed, err := uuid.Parse(param); err != nil || parsed.String() != param {
			_ = c.Error(invalid)
			c.Abort()
			return
		}

		c.Next()
	}
}
