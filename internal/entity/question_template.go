package entity

import (
	"time"

	"gorm.io/gorm"
)

// QuestionTemplate - a canned question used when AI generation exhausts its
// retries. Seeded at startup.
type QuestionTemplate struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	TemplateID    string         `gorm:"uniqueIndex;size:50;not null" json:"template_id"`
	Subject       string         `gorm:"size:100;index" json:"subject"` // empty means any subject
	Difficulty    string         `gorm:"size:20;not null;index" json:"difficulty"`
	Type          string         `gorm:"size:30;not null" json:"type"`
	Text          string         `gorm:"type:text;not null" json:"text"`
	Options       string         `gorm:"type:text;not null" json:"options"` // JSON array
	CorrectAnswer string         `gorm:"size:500;not null" json:"correct_answer"`
	Explanation   string         `gorm:"type:text" json:"explanation"`
	Tags          string         `gorm:"type:text" json:"tags"` // JSON array
	Points        int            `gorm:"not null;default:1" json:"points"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (QuestionTemplate) TableName() string {
	return "question_templates"
}
