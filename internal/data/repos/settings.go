package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xelyqor/xelyqor-backend/internal/domain"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
)

type UserSettingsRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*domain.UserSettings, error)
	Upsert(ctx context.Context, tx *gorm.DB, settings *domain.UserSettings) (*domain.UserSettings, error)
}

type userSettingsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserSettingsRepo(db *gorm.DB, baseLog *logger.Logger) UserSettingsRepo {
	repoLog := baseLog.With("repo", "UserSettingsRepo")
	return &userSettingsRepo{db: db, log: repoLog}
}

func (r *userSettingsRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*domain.UserSettings, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result domain.UserSettings
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userSettingsRepo) Upsert(ctx context.Context, tx *gorm.DB, settings *domain.UserSettings) (*domain.UserSettings, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "avatar_colour", "chatbot_name", "chatbot_tone"}),
		}).
		Create(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
