package handlers

import (
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/storage"
)

// MediaHandler отдаёт статику приложения и загруженные аватары.
type MediaHandler struct {
	assets  fs.FS
	storage storage.AvatarStorage
}

// NewMediaHandler создаёт новый хэндлер.
func NewMediaHandler(assets fs.FS, storage storage.AvatarStorage) *MediaHandler {
	return &MediaHandler{assets: assets, storage: storage}
}

// Serve обрабатывает GET /static/*filepath.
// Пути img/uploads/* читаются из хранилища аватаров, остальное — из встроенной статики.
func (h *MediaHandler) Serve(c *gin.Context) {
	rel := strings.TrimPrefix(path.Clean("/"+c.Param("filepath")), "/")
	if rel == "" || strings.HasSuffix(c.Param("filepath"), "/") {
		c.String(http.StatusNotFound, "Not found")
		return
	}

	if name, ok := strings.CutPrefix(rel, models.UploadedAvatarPrefix); ok {
		h.serveUpload(c, name)
		return
	}

	if info, err := fs.Stat(h.assets, rel); err != nil || info.IsDir() {
		c.String(http.StatusNotFound, "Not found")
		return
	}
	c.FileFromFS(rel, http.FS(h.assets))
}

func (h *MediaHandler) serveUpload(c *gin.Context, name string) {
	rc, err := h.storage.Open(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.String(http.StatusNotFound, "Not found")
			return
		}
		logger.Log.WithError(err).WithField("name", name).Error("failed to open avatar")
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{
		"X-Content-Type-Options": "nosniff",
	})
}
