package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
	"github.com/ignatzorin/portfolio-backend/internal/skills"
)

// ProfileRepository описывает взаимодействие сервиса с хранилищем анкет.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	List(ctx context.Context) ([]models.Profile, error)
	GetByPublicID(ctx context.Context, publicID uuid.UUID) (*models.Profile, error)
}

// ProfileService содержит логику создания и чтения анкет.
type ProfileService struct {
	repo ProfileRepository
}

// NewProfileService создаёт новый сервис анкет.
func NewProfileService(repo ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// CreateProfile выдаёт анкете новый public_id и сохраняет её.
// Пустое имя допускается.
func (s *ProfileService) CreateProfile(ctx context.Context, input models.CreateProfileInput) (uuid.UUID, error) {
	avatarPath := input.AvatarPath
	if avatarPath == "" {
		avatarPath = models.PlaceholderAvatarPath
	}

	profile := &models.Profile{
		PublicID:   uuid.New(),
		Name:       input.Name,
		Bio:        input.Bio,
		GitHub:     input.GitHub,
		Telegram:   input.Telegram,
		AvatarPath: avatarPath,
		SkillsRaw:  input.SkillsRaw,
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		return uuid.Nil, apperror.Wrap(err, apperror.ErrCodeStorage, "не удалось сохранить анкету")
	}

	return profile.PublicID, nil
}

// ListProfiles возвращает анкеты в порядке хранения, отфильтрованные по навыку.
// Пустой фильтр возвращает все анкеты.
func (s *ProfileService) ListProfiles(ctx context.Context, skillFilter string) ([]models.Profile, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "не удалось получить список анкет")
	}

	if skills.NormalizeFilter(skillFilter) == "" {
		return profiles, nil
	}

	filtered := make([]models.Profile, 0, len(profiles))
	for _, p := range profiles {
		if skills.Matches(p.Skills(), skillFilter) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// GetProfile возвращает анкету по public_id.
func (s *ProfileService) GetProfile(ctx context.Context, publicID uuid.UUID) (*models.Profile, error) {
	profile, err := s.repo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, apperror.ErrProfileNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeStorage, "не удалось получить анкету")
	}
	return profile, nil
}
