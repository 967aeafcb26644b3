package entity

import (
	"time"

	"gorm.io/gorm"
)

// Material - an uploaded study document plus the text extracted from it
type Material struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	MaterialID    string         `gorm:"uniqueIndex;size:100;not null" json:"material_id"`
	Subject       string         `gorm:"size:100;not null;index" json:"subject"`
	Filename      string         `gorm:"size:255;not null" json:"filename"`
	MimeType      string         `gorm:"size:120" json:"mime_type"`
	SizeBytes     int64          `gorm:"not null" json:"size_bytes"`
	SourceFormat  string         `gorm:"size:20;index" json:"source_format"` // pdf, docx, pptx, image, video, text
	ExtractedText string         `gorm:"type:text" json:"extracted_text"`
	PageCount     int            `json:"page_count"`
	SlideCount    int            `json:"slide_count"`
	OCRConfidence float64        `json:"ocr_confidence"`
	DocTitle      string         `gorm:"size:255" json:"doc_title"`
	DocAuthor     string         `gorm:"size:255" json:"doc_author"`
	DocSubject    string         `gorm:"size:255" json:"doc_subject"`
	DocCreator    string         `gorm:"size:255" json:"doc_creator"`
	Status        string         `gorm:"size:20;not null;default:processed" json:"status"` // processed, empty, failed
	ErrorMessage  string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Material) TableName() string {
	return "materials"
}

// Topic - a subject topic that questions and responses are tagged with
type Topic struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"size:150;not null;uniqueIndex:idx_topics_subject_name" json:"name"`
	Subject   string         `gorm:"size:100;not null;uniqueIndex:idx_topics_subject_name" json:"subject"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Topic) TableName() string {
	return "topics"
}
