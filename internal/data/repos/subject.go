package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xelyqor/xelyqor-backend/internal/domain"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
)

type SubjectRepo interface {
	Create(ctx context.Context, tx *gorm.DB, subject *domain.Subject) (*domain.Subject, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Subject, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID string) ([]*domain.Subject, error)

	// DeleteAndDetachLectures nullifies subject_id on the subject's lectures
	// and removes the subject, in one transaction.
	DeleteAndDetachLectures(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type subjectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubjectRepo(db *gorm.DB, baseLog *logger.Logger) SubjectRepo {
	repoLog := baseLog.With("repo", "SubjectRepo")
	return &subjectRepo{db: db, log: repoLog}
}

func (r *subjectRepo) Create(ctx context.Context, tx *gorm.DB, subject *domain.Subject) (*domain.Subject, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(subject).Error; err != nil {
		return nil, err
	}
	return subject, nil
}

func (r *subjectRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Subject, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result domain.Subject
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *subjectRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) ([]*domain.Subject, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Subject
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *subjectRepo) DeleteAndDetachLectures(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Transaction(func(inner *gorm.DB) error {
		if err := inner.Model(&domain.Lecture{}).
			Where("subject_id = ?", id).
			Update("subject_id", nil).Error; err != nil {
			return err
		}
		return inner.
			Where("id = ?", id).
			Delete(&domain.Subject{}).Error
	})
}
