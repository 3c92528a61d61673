package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xelyqor/xelyqor-backend/internal/domain"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
)

type LectureRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lecture *domain.Lecture) (*domain.Lecture, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Lecture, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID string, subjectID *uuid.UUID) ([]*domain.Lecture, error)
	UpdateSubject(ctx context.Context, tx *gorm.DB, id uuid.UUID, subjectID *uuid.UUID) error

	// DeleteByID removes the lecture and its study_materials row.
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type lectureRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLectureRepo(db *gorm.DB, baseLog *logger.Logger) LectureRepo {
	repoLog := baseLog.With("repo", "LectureRepo")
	return &lectureRepo{db: db, log: repoLog}
}

func (r *lectureRepo) Create(ctx context.Context, tx *gorm.DB, lecture *domain.Lecture) (*domain.Lecture, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(lecture).Error; err != nil {
		return nil, err
	}
	return lecture, nil
}

func (r *lectureRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Lecture, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result domain.Lecture
	if err := transaction.WithContext(ctx).
		Preload("Subject").
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *lectureRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID string, subjectID *uuid.UUID) ([]*domain.Lecture, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).
		Preload("Subject").
		Where("user_id = ?", userID)
	if subjectID != nil {
		query = query.Where("subject_id = ?", *subjectID)
	}

	var results []*domain.Lecture
	if err := query.
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lectureRepo) UpdateSubject(ctx context.Context, tx *gorm.DB, id uuid.UUID, subjectID *uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&domain.Lecture{}).
		Where("id = ?", id).
		Update("subject_id", subjectID).Error
}

func (r *lectureRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Transaction(func(inner *gorm.DB) error {
		if err := inner.
			Where("lecture_id = ?", id).
			Delete(&domain.StudyMaterials{}).Error; err != nil {
			return err
		}
		return inner.
			Where("id = ?", id).
			Delete(&domain.Lecture{}).Error
	})
}
