package service

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/portfolio-backend/internal/github"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/metrics"
	"github.com/ignatzorin/portfolio-backend/internal/models"
)

// MaxProjects — сколько репозиториев показываем на странице анкеты.
const MaxProjects = 6

// RepoLister возвращает публичные репозитории пользователя GitHub.
type RepoLister interface {
	ListUserRepos(ctx context.Context, username string) ([]github.Repository, error)
}

// ProjectService подтягивает проекты автора с GitHub для страницы анкеты.
// Ошибки внешнего API не выходят наружу: страница просто остаётся без проектов.
type ProjectService struct {
	repos RepoLister
}

// NewProjectService создаёт сервис проектов.
func NewProjectService(repos RepoLister) *ProjectService {
	return &ProjectService{repos: repos}
}

// ExtractUsername достаёт имя пользователя из поля github.
// Ссылка вида https://github.com/<user>/?tab=repositories сводится к последнему сегменту пути.
func ExtractUsername(field string) string {
	username := strings.TrimSpace(field)
	if strings.Contains(username, "github.com") {
		// Query и fragment не относятся к пути профиля
		if idx := strings.IndexAny(username, "?#"); idx >= 0 {
			username = username[:idx]
		}
		username = strings.TrimRight(username, "/")
		if idx := strings.LastIndex(username, "/"); idx >= 0 {
			username = username[idx+1:]
		}
	}
	return username
}

// FetchProjects возвращает до MaxProjects проектов в порядке API.
// При любой ошибке возвращается пустой список.
func (s *ProjectService) FetchProjects(ctx context.Context, githubField string) []models.Project {
	projects := []models.Project{}

	username := ExtractUsername(githubField)
	if username == "" {
		metrics.ObserveEnrichment(metrics.OutcomeSkipped)
		return projects
	}

	repos, err := s.repos.ListUserRepos(ctx, username)
	if err != nil {
		outcome := classifyEnrichmentError(err)
		metrics.ObserveEnrichment(outcome)

		entry := logger.Log.WithFields(logrus.Fields{
			"github_username": username,
			"outcome":         outcome,
			"error":           err.Error(),
		})
		if outcome == metrics.OutcomeStatus {
			entry.Warn("GitHub request failed")
		} else {
			entry.Error("error while requesting GitHub API")
		}
		return projects
	}
	metrics.ObserveEnrichment(metrics.OutcomeSuccess)

	if len(repos) > MaxProjects {
		repos = repos[:MaxProjects]
	}
	for _, repo := range repos {
		description := models.NoDescription
		if repo.Description != nil && *repo.Description != "" {
			description = *repo.Description
		}
		projects = append(projects, models.Project{
			Title:       repo.Name,
			Description: description,
			Link:        repo.HTMLURL,
		})
	}

	return projects
}

// classifyEnrichmentError сводит ошибку клиента к исходу для логов и метрик.
func classifyEnrichmentError(err error) string {
	var statusErr *github.StatusError
	if errors.As(err, &statusErr) {
		return metrics.OutcomeStatus
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return metrics.OutcomeTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return metrics.OutcomeTimeout
		}
		return metrics.OutcomeNetwork
	}
	if errors.Is(err, context.Canceled) {
		return metrics.OutcomeNetwork
	}
	return metrics.OutcomeDecode
}
