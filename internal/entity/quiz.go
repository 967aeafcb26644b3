package entity

import (
	"time"

	"gorm.io/gorm"
)

// Quiz - a generated assessment over one material/subject
type Quiz struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	QuizID         string         `gorm:"uniqueIndex;size:100;not null" json:"quiz_id"`
	Subject        string         `gorm:"size:100;not null;index" json:"subject"`
	Title          string         `gorm:"size:255" json:"title"`
	MaterialID     string         `gorm:"size:100;index" json:"material_id"`
	QuestionCount  int            `gorm:"not null" json:"question_count"`
	Difficulty     string         `gorm:"size:20" json:"difficulty"`
	UsedFallback   bool           `gorm:"not null;default:false" json:"used_fallback"`
	FallbackReason string         `gorm:"type:text" json:"fallback_reason,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Question - one validated AI-produced assessment item, immutable once stored
type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	QuestionID    string         `gorm:"uniqueIndex;size:100;not null" json:"question_id"` // hash unique
	QuizID        string         `gorm:"size:100;not null;index" json:"quiz_id"`
	Text          string         `gorm:"type:text;not null" json:"text"`
	Type          string         `gorm:"size:30;not null" json:"type"` // multiple-choice, true-false
	Options       string         `gorm:"type:text;not null" json:"options"` // JSON array
	CorrectAnswer string         `gorm:"size:500;not null" json:"correct_answer"`
	Explanation   string         `gorm:"type:text" json:"explanation"`
	Difficulty    string         `gorm:"size:20;not null;index" json:"difficulty"`
	Tags          string         `gorm:"type:text" json:"tags"` // JSON array
	Points        int            `gorm:"not null;default:1" json:"points"`
	TopicName     string         `gorm:"size:150;index" json:"topic_name"`
	GeneratedBy   string         `gorm:"size:20;default:ai" json:"generated_by"` // ai, template
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// QuizAttempt - one completed run through a quiz
type QuizAttempt struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	AttemptID   string         `gorm:"uniqueIndex;size:100;not null" json:"attempt_id"`
	QuizID      string         `gorm:"size:100;not null;index" json:"quiz_id"`
	UserID      string         `gorm:"size:100;not null;index" json:"user_id"`
	Subject     string         `gorm:"size:100;not null;index" json:"subject"`
	Score       float64        `gorm:"not null" json:"score"` // 0-100
	Passed      bool           `gorm:"not null" json:"passed"`
	CompletedAt time.Time      `gorm:"autoCreateTime" json:"completed_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// QuestionResponse - a single answer within an attempt, denormalized with the
// question text and topic so analysis never needs extra joins
type QuestionResponse struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	AttemptID     string         `gorm:"size:100;not null;index" json:"attempt_id"`
	QuestionID    string         `gorm:"size:100;not null;index" json:"question_id"`
	Subject       string         `gorm:"size:100;not null;index" json:"subject"`
	TopicName     string         `gorm:"size:150;index" json:"topic_name"`
	QuestionText  string         `gorm:"type:text" json:"question_text"`
	QuestionType  string         `gorm:"size:30" json:"question_type"`
	UserAnswer    string         `gorm:"size:500" json:"user_answer"`
	CorrectAnswer string         `gorm:"size:500" json:"correct_answer"`
	IsCorrect     bool           `gorm:"not null" json:"is_correct"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (QuestionResponse) TableName() string {
	return "question_responses"
}
