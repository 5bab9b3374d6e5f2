package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/session"
	"github.com/ignatzorin/portfolio-backend/internal/skills"
)

// ProfileService — операции с анкетами, нужные хэндлеру.
type ProfileService interface {
	CreateProfile(ctx context.Context, input models.CreateProfileInput) (uuid.UUID, error)
	ListProfiles(ctx context.Context, skillFilter string) ([]models.Profile, error)
	GetProfile(ctx context.Context, publicID uuid.UUID) (*models.Profile, error)
}

// AvatarService сохраняет аватар и возвращает его относительный путь.
type AvatarService interface {
	StoreAvatar(ctx context.Context, file *multipart.FileHeader) (string, error)
}

// ProjectService подтягивает проекты с GitHub. Никогда не возвращает ошибку.
type ProjectService interface {
	FetchProjects(ctx context.Context, githubField string) []models.Project
}

// ProfileHandler обслуживает страницы анкет.
type ProfileHandler struct {
	profiles ProfileService
	avatars  AvatarService
	projects ProjectService
}

// NewProfileHandler создаёт новый хэндлер.
func NewProfileHandler(profiles ProfileService, avatars AvatarService, projects ProjectService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, avatars: avatars, projects: projects}
}

// List обрабатывает GET /.
func (h *ProfileHandler) List(c *gin.Context) {
	skillFilter := c.Query("skill")

	profiles, err := h.profiles.ListProfiles(c.Request.Context(), skillFilter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	cards := make([]profileCard, 0, len(profiles))
	for _, p := range profiles {
		cards = append(cards, newProfileCard(p))
	}

	c.HTML(http.StatusOK, templateIndex, indexView{
		pageView:     newPageView(c),
		Cards:        cards,
		CurrentSkill: skills.NormalizeFilter(skillFilter),
	})
}

// Form обрабатывает GET /form.
func (h *ProfileHandler) Form(c *gin.Context) {
	c.HTML(http.StatusOK, templateForm, newPageView(c))
}

// Generate обрабатывает POST /generate.
func (h *ProfileHandler) Generate(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			_ = c.Error(apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректная форма"))
			return
		}
		file = nil
	}

	avatarPath, err := h.avatars.StoreAvatar(c.Request.Context(), file)
	if err != nil {
		_ = c.Error(err)
		return
	}

	input := models.CreateProfileInput{
		Name:       c.PostForm("name"),
		Bio:        common.OptionalPostForm(c, "bio"),
		GitHub:     common.OptionalPostForm(c, "github"),
		Telegram:   common.OptionalPostForm(c, "telegram"),
		AvatarPath: avatarPath,
		SkillsRaw:  common.OptionalPostForm(c, "skills"),
	}

	if _, err := h.profiles.CreateProfile(c.Request.Context(), input); err != nil {
		_ = c.Error(err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// View обрабатывает GET /portfolio/:public_id.
func (h *ProfileHandler) View(c *gin.Context) {
	publicID, err := common.ParseUUIDParam(c, "public_id")
	if err != nil {
		_ = c.Error(apperror.ErrProfileNotFound)
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), publicID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.HTML(http.StatusOK, templatePortfolio, portfolioView{
		pageView: newPageView(c),
		Profile:  newProfileView(profile),
		Skills:   skills.Split(profile.Skills()),
		Projects: h.projects.FetchProjects(c.Request.Context(), profile.GitHubField()),
	})
}

func newPageView(c *gin.Context) pageView {
	return pageView{
		Theme:       session.FromContext(c).Theme,
		CurrentPath: c.Request.URL.RequestURI(),
	}
}
