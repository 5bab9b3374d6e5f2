package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/repository/common"
)

// ErrProfileNotFound возвращается, когда анкета не найдена.
var ErrProfileNotFound = errors.New("profile not found")

const profileColumns = `id, public_id, name, bio, github, telegram, avatar_path, skills_raw, created_at`

// ProfileRepository работает с таблицей profiles.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository создаёт экземпляр репозитория.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create вставляет анкету. PublicID должен быть заполнен вызывающей стороной.
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if profile.PublicID == uuid.Nil {
		return fmt.Errorf("profile repository: create: %w", common.ErrInvalidInput)
	}

	query := `
		INSERT INTO profiles (public_id, name, bio, github, telegram, avatar_path, skills_raw)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		profile.PublicID,
		profile.Name,
		profile.Bio,
		profile.GitHub,
		profile.Telegram,
		profile.AvatarPath,
		profile.SkillsRaw,
	).Scan(&profile.ID, &profile.CreatedAt); err != nil {
		return fmt.Errorf("profile repository: create %w", err)
	}

	return nil
}

// List возвращает все анкеты в порядке вставки.
func (r *ProfileRepository) List(ctx context.Context) ([]models.Profile, error) {
	profiles := []models.Profile{}
	if err := r.db.SelectContext(ctx, &profiles, `SELECT `+profileColumns+` FROM profiles ORDER BY id`); err != nil {
		return nil, fmt.Errorf("profile repository: list %w", err)
	}
	return profiles, nil
}

// GetByPublicID возвращает анкету по внешнему идентификатору.
func (r *ProfileRepository) GetByPublicID(ctx context.Context, publicID uuid.UUID) (*models.Profile, error) {
	return common.GetByField[models.Profile](ctx, r.db, "profiles", profileColumns, "public_id", publicID, ErrProfileNotFound)
}
