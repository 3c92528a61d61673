package domain

import (
	"time"

	"github.com/google/uuid"
)

// Source types accepted by lecture ingestion.
const (
	SourceYouTube    = "youtube"
	SourceTranscript = "transcript"
	SourcePDF        = "pdf"
	SourcePPTX       = "pptx"
	SourceRecording  = "recording"
)

type Lecture struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    string     `gorm:"column:user_id;not null;index" json:"user_id"`
	SubjectID *uuid.UUID `gorm:"type:uuid;index" json:"subject_id,omitempty"`
	Subject   *Subject   `gorm:"foreignKey:SubjectID;references:ID" json:"subject,omitempty"`

	Title         string `gorm:"column:title;not null" json:"title"`
	SourceType    string `gorm:"column:source_type;not null" json:"source_type"`
	SourceRef     string `gorm:"column:source_ref" json:"source_ref"`
	RawTranscript string `gorm:"column:raw_transcript;type:text" json:"raw_transcript,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (Lecture) TableName() string { return "lectures" }
