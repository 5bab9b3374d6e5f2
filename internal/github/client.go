// Package github — минимальный клиент публичного REST API GitHub.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL — адрес публичного API.
const DefaultBaseURL = "https://api.github.com"

// ErrEmptyUsername возвращается, если имя пользователя не задано.
var ErrEmptyUsername = errors.New("github: пустое имя пользователя")

// StatusError — ответ API с кодом вне диапазона 2xx.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github: код ответа %d", e.StatusCode)
}

// Repository — поля репозитория, которые нужны приложению.
type Repository struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	HTMLURL     string  `json:"html_url"`
}

// Client выполняет запросы к API без авторизации.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент с ограничением времени на запрос.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListUserRepos возвращает публичные репозитории пользователя в порядке API.
func (c *Client) ListUserRepos(ctx context.Context, username string) ([]Repository, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}

	endpoint := c.baseURL + "/users/" + url.PathEscape(username) + "/repos"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("github: не удалось собрать запрос: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "portfolio-backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: запрос %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Тело дочитываем, чтобы соединение вернулось в пул.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var repos []Repository
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("github: некорректный ответ: %w", err)
	}

	return repos, nil
}
