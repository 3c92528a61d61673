package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/xelyqor/xelyqor-backend/internal/domain"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
)

type StudyMaterialsRepo interface {
	Create(ctx context.Context, tx *gorm.DB, materials *domain.StudyMaterials) (*domain.StudyMaterials, error)
	GetByLectureID(ctx context.Context, tx *gorm.DB, lectureID uuid.UUID) (*domain.StudyMaterials, error)
	GetByLectureIDs(ctx context.Context, tx *gorm.DB, lectureIDs []uuid.UUID) ([]*domain.StudyMaterials, error)
	UpdateQuiz(ctx context.Context, tx *gorm.DB, lectureID uuid.UUID, quiz datatypes.JSON) error
	UpdateFlashcards(ctx context.Context, tx *gorm.DB, lectureID uuid.UUID, flashcards datatypes.JSON) error
}

type studyMaterialsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudyMaterialsRepo(db *gorm.DB, baseLog *logger.Logger) StudyMaterialsRepo {
	repoLog := baseLog.With("repo", "StudyMaterialsRepo")
	return &studyMaterialsRepo{db: db, log: repoLog}
}

func (r *studyMaterialsRepo) Create(ctx context.Context, tx *gorm.DB, materials *domain.StudyMaterials) (*domain.StudyMaterials, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *studyMaterialsRepo) GetByLectureID(ctx context.Context, tx *gorm.DB, lectureID uuid.UUID) (*domain.StudyMaterials, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result domain.StudyMaterials
	if err := transaction.WithContext(ctx).
		Where("lecture_id = ?", lectureID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *studyMaterialsRepo) GetByLectureIDs(ctx context.Context, tx *gorm.DB, lectureIDs []uuid.UUID) ([]*domain.StudyMaterials, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.StudyMaterials
	if len(lectureIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("lecture_id IN ?", lectureIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *studyMaterialsRepo) UpdateQuiz(ctx context.Context, tx *gorm.DB, lectureID uuid.UUID, quiz datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&domain.StudyMaterials{}).
		Where("lecture_id = ?", lectureID).
		Update("quiz", quiz).Error
}

func (r *studyMaterialsRepo) UpdateFlashcards(ctx context.Context, tx *gorm.DB, lectureID uuid.UUID, flashcards datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&domain.StudyMaterials{}).
		Where("lecture_id = ?", lectureID).
		Update("flashcards", flashcards).Error
}
