package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/session"
)

// ThemeHandler переключает тему оформления в сессии.
type ThemeHandler struct {
	sessions *session.Manager
}

// NewThemeHandler создаёт новый хэндлер.
func NewThemeHandler(sessions *session.Manager) *ThemeHandler {
	return &ThemeHandler{sessions: sessions}
}

// SetTheme обрабатывает GET /set_theme/:theme.
// Недопустимое значение темы молча игнорируется.
func (h *ThemeHandler) SetTheme(c *gin.Context) {
	if theme, ok := session.ParseTheme(c.Param("theme")); ok {
		s := session.FromContext(c)
		s.Theme = theme
		if err := h.sessions.Save(c.Writer, s); err != nil {
			logger.Log.WithError(err).Error("failed to save session")
		}
	}

	next := c.Query("next")
	if next == "" {
		next = "/"
	}
	c.Redirect(http.StatusFound, next)
}
