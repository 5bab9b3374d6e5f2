package models

import (
	"time"

	"github.com/google/uuid"
)

// PlaceholderAvatarPath — аватар по умолчанию, если файл не был загружен.
const PlaceholderAvatarPath = "img/avatars/placeholder.png"

// UploadedAvatarPrefix — префикс относительного пути загруженных аватаров.
const UploadedAvatarPrefix = "img/uploads/"

// NoDescription подставляется вместо пустого описания репозитория.
const NoDescription = "No description"

// Profile описывает анкету, отправленную посетителем.
type Profile struct {
	ID         int64     `db:"id" json:"id"`
	PublicID   uuid.UUID `db:"public_id" json:"public_id"`
	Name       string    `db:"name" json:"name"`
	Bio        *string   `db:"bio" json:"bio,omitempty"`
	GitHub     *string   `db:"github" json:"github,omitempty"`
	Telegram   *string   `db:"telegram" json:"telegram,omitempty"`
	AvatarPath string    `db:"avatar_path" json:"avatar_path"`
	SkillsRaw  *string   `db:"skills_raw" json:"skills_raw,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Skills возвращает сырую строку навыков или пустую строку.
func (p *Profile) Skills() string {
	if p.SkillsRaw == nil {
		return ""
	}
	return *p.SkillsRaw
}

// GitHubField возвращает значение поля github или пустую строку.
func (p *Profile) GitHubField() string {
	if p.GitHub == nil {
		return ""
	}
	return *p.GitHub
}

// CreateProfileInput — поля формы отправки анкеты.
// Отсутствующие поля формы остаются nil.
type CreateProfileInput struct {
	Name       string
	Bio        *string
	GitHub     *string
	Telegram   *string
	AvatarPath string
	SkillsRaw  *string
}

// Project — репозиторий GitHub, подготовленный для отображения.
type Project struct {
	Title       string
	Description string
	Link        string
}
