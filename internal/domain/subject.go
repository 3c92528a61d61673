package domain

import (
	"time"

	"github.com/google/uuid"
)

type Subject struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID string    `gorm:"column:user_id;not null;index" json:"user_id"`
	Name   string    `gorm:"column:name;not null" json:"name"`
	Colour string    `gorm:"column:colour;not null;default:'#c17b2e'" json:"colour"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Subject) TableName() string { return "subjects" }
