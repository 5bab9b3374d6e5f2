package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ignatzorin/portfolio-backend/internal/config"
	"github.com/ignatzorin/portfolio-backend/internal/http/handlers"
	"github.com/ignatzorin/portfolio-backend/internal/http/middleware"
	"github.com/ignatzorin/portfolio-backend/internal/metrics"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/session"
	"github.com/ignatzorin/portfolio-backend/web"
)

func SetupRouter(
	cfg *config.Config,
	sessions *session.Manager,
	profileHandler *handlers.ProfileHandler,
	themeHandler *handlers.ThemeHandler,
	mediaHandler *handlers.MediaHandler,
	healthHandler *handlers.HealthHandler,
) (*gin.Engine, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := web.Templates(handlers.TemplateFuncs())
	if err != nil {
		return nil, fmt.Errorf("router: не удалось разобрать шаблоны: %w", err)
	}

	r := gin.Default()
	r.SetHTMLTemplate(tmpl)
	r.Use(metrics.GinMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(sessions.Middleware())

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/static/*filepath", mediaHandler.Serve)

	r.GET("/", profileHandler.List)
	r.GET("/form", profileHandler.Form)
	r.POST("/generate", profileHandler.Generate)
	r.GET("/portfolio/:public_id",
		middleware.UUIDValidator("public_id", apperror.ErrProfileNotFound),
		profileHandler.View,
	)
	r.GET("/set_theme/:theme", themeHandler.SetTheme)

	return r, nil
}
