package handlers

import (
	"html/template"
	"strings"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/session"
	"github.com/ignatzorin/portfolio-backend/internal/skills"
)

// Имена шаблонов из каталога web/templates.
const (
	templateIndex     = "index.html"
	templateForm      = "form.html"
	templatePortfolio = "portfolio.html"
)

// TemplateFuncs возвращает функции, доступные в шаблонах.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"skillIcon": skills.Icon,
		"staticURL": staticURL,
	}
}

// staticURL превращает относительный путь аватара в URL.
func staticURL(relative string) string {
	return "/static/" + strings.TrimPrefix(relative, "/")
}

type pageView struct {
	Theme       session.Theme
	CurrentPath string
}

type profileCard struct {
	PublicID   string
	Name       string
	Bio        string
	AvatarPath string
	Skills     []string
}

type indexView struct {
	pageView
	Cards        []profileCard
	CurrentSkill string
}

type profileView struct {
	Name       string
	Bio        string
	GitHub     string
	Telegram   string
	AvatarPath string
}

type portfolioView struct {
	pageView
	Profile  profileView
	Skills   []string
	Projects []models.Project
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func newProfileCard(p models.Profile) profileCard {
	return profileCard{
		PublicID:   p.PublicID.String(),
		Name:       p.Name,
		Bio:        deref(p.Bio),
		AvatarPath: p.AvatarPath,
		Skills:     skills.Split(p.Skills()),
	}
}

func newProfileView(p *models.Profile) profileView {
	return profileView{
		Name:       p.Name,
		Bio:        deref(p.Bio),
		GitHub:     deref(p.GitHub),
		Telegram:   deref(p.Telegram),
		AvatarPath: p.AvatarPath,
	}
}
