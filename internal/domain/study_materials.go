package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StudyMaterials holds the generated artifacts for one lecture. Summary,
// notes and glossary are produced at ingestion time; quiz and flashcards
// stay null until first requested.
type StudyMaterials struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LectureID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"lecture_id"`
	Lecture   *Lecture  `gorm:"constraint:OnDelete:CASCADE;foreignKey:LectureID;references:ID" json:"lecture,omitempty"`
	UserID    string    `gorm:"column:user_id;not null;index" json:"user_id"`

	Summary    string         `gorm:"column:summary;type:text" json:"summary"`
	Notes      string         `gorm:"column:notes;type:text" json:"notes"`
	Glossary   datatypes.JSON `gorm:"column:glossary;type:jsonb" json:"glossary"`
	Quiz       datatypes.JSON `gorm:"column:quiz;type:jsonb" json:"quiz,omitempty"`
	Flashcards datatypes.JSON `gorm:"column:flashcards;type:jsonb" json:"flashcards,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (StudyMaterials) TableName() string { return "study_materials" }
