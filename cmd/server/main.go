package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/portfolio-backend/internal/config"
	"github.com/ignatzorin/portfolio-backend/internal/db"
	"github.com/ignatzorin/portfolio-backend/internal/github"
	"github.com/ignatzorin/portfolio-backend/internal/goroutine"
	httpHandlers "github.com/ignatzorin/portfolio-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/portfolio-backend/internal/http/router"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/metrics"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
	"github.com/ignatzorin/portfolio-backend/internal/service"
	"github.com/ignatzorin/portfolio-backend/internal/session"
	"github.com/ignatzorin/portfolio-backend/internal/storage"
	"github.com/ignatzorin/portfolio-backend/migrations"
	"github.com/ignatzorin/portfolio-backend/web"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, migrations.FS); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	avatarStorage, err := newAvatarStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("main: ошибка инициализации хранилища аватаров: %v", err)
	}

	metrics.Register()

	// Репозитории и сервисы.
	profileRepo := repository.NewProfileRepository(dbConn)

	profileService := service.NewProfileService(profileRepo)
	avatarService := service.NewAvatarService(avatarStorage, cfg.UploadRequireImage)
	projectService := service.NewProjectService(github.NewClient(cfg.GitHubAPIURL, cfg.GitHubTimeout))

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, cfg.Env == "production")

	// HTTP-хэндлеры.
	profileHandler := httpHandlers.NewProfileHandler(profileService, avatarService, projectService)
	themeHandler := httpHandlers.NewThemeHandler(sessions)
	mediaHandler := httpHandlers.NewMediaHandler(web.Static(), avatarStorage)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine, err := httpRouter.SetupRouter(cfg, sessions, profileHandler, themeHandler, mediaHandler, healthHandler)
	if err != nil {
		log.Fatalf("main: ошибка инициализации роутера: %v", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGoWithContext(ctx, func(ctx context.Context) {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	})

	logger.Log.WithField("port", cfg.HTTPPort).WithField("avatar_storage", cfg.AvatarStorage).Info("HTTP server started")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// newAvatarStorage выбирает хранилище аватаров по конфигурации.
func newAvatarStorage(ctx context.Context, cfg *config.Config) (storage.AvatarStorage, error) {
	if cfg.AvatarStorage == config.AvatarStorageMinIO {
		s, err := storage.NewMinIOStorage(ctx, cfg.MinIO, cfg.MaxUploadSizeMB)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	s, err := storage.NewDiskStorage(cfg.UploadDir, cfg.MaxUploadSizeMB)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
