package db

import (
	"gorm.io/gorm"

	"github.com/xelyqor/xelyqor-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Subject{},
		&domain.Lecture{},
		&domain.StudyMaterials{},
		&domain.UserSettings{},
	)
}
