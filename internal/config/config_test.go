package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, AvatarStorageDisk, cfg.AvatarStorage)
	assert.Equal(t, "https://api.github.com", cfg.GitHubAPIURL)
	assert.Equal(t, 5*time.Second, cfg.GitHubTimeout)
	assert.Equal(t, int64(10), cfg.MaxUploadSizeMB)
	assert.False(t, cfg.UploadRequireImage)
	assert.NotEmpty(t, cfg.SessionSecret)
}

func TestFromEnv_ProductionRequiresSessionSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "short")

	_, err := fromEnv()
	assert.Error(t, err)
}

func TestFromEnv_MinIORequiresCredentials(t *testing.T) {
	t.Setenv("AVATAR_STORAGE", "minio")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")

	_, err := fromEnv()
	assert.Error(t, err)

	t.Setenv("MINIO_ACCESS_KEY", "key")
	t.Setenv("MINIO_SECRET_KEY", "secret")

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, "portfolio", cfg.MinIO.Bucket)
}

func TestFromEnv_UnknownAvatarStorage(t *testing.T) {
	t.Setenv("AVATAR_STORAGE", "ftp")

	_, err := fromEnv()
	assert.Error(t, err)
}

func TestFromEnv_DatabaseURLFromParts(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRESQL_HOST", "db")
	t.Setenv("POSTGRESQL_USER", "app")
	t.Setenv("POSTGRESQL_PASSWORD", "p@ss")
	t.Setenv("POSTGRESQL_DBNAME", "portfolio")

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, "postgres://app:p%40ss@db:5432/portfolio?sslmode=disable", cfg.DatabaseURL)
}

func TestFromEnv_TrimsGitHubURL(t *testing.T) {
	t.Setenv("GITHUB_API_URL", "http://localhost:9999/")
	t.Setenv("GITHUB_TIMEOUT", "250ms")

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cfg.GitHubAPIURL)
	assert.Equal(t, 250*time.Millisecond, cfg.GitHubTimeout)
}
