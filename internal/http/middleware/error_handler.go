package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
)

// ErrorHandler обрабатывает ошибки централизованно.
// Сообщение AppError показывается клиенту, остальные ошибки маскируются.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Ответ уже отправлен хэндлером
		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		// Неизвестные ошибки считаются внутренними
		appErr, ok := apperror.As(err)
		if !ok {
			appErr = apperror.Wrap(err, apperror.ErrCodeInternal, http.StatusText(http.StatusInternalServerError))
		}

		statusCode := appErr.HTTPStatus
		if statusCode == 0 {
			statusCode = http.StatusInternalServerError
		}
		message := http.StatusText(http.StatusInternalServerError)
		if statusCode < http.StatusInternalServerError {
			message = appErr.Message
		}

		entry := logger.Log.WithFields(logrus.Fields{
			"code":   appErr.Code,
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"status": statusCode,
		})
		if statusCode >= http.StatusInternalServerError {
			entry.Error("Request error")
		} else {
			entry.Warn("Request error")
		}

		c.String(statusCode, message)
	}
}
