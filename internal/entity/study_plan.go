package entity

import (
	"time"

	"gorm.io/gorm"
)

// StudyPlan - a persisted AI study plan. A subject has at most one active
// plan; generating a new one deactivates the prior plan instead of deleting
// it.
type StudyPlan struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	PlanID          string         `gorm:"uniqueIndex;size:100;not null" json:"plan_id"`
	Subject         string         `gorm:"size:100;not null;index" json:"subject"`
	UserID          string         `gorm:"size:100;index" json:"user_id"`
	Active          bool           `gorm:"not null;default:true;index" json:"active"`
	Strengths       string         `gorm:"type:text" json:"strengths"`   // JSON array
	Weaknesses      string         `gorm:"type:text" json:"weaknesses"`  // JSON array
	FocusAreas      string         `gorm:"type:text" json:"focus_areas"` // JSON array
	EstimatedHours  float64        `json:"estimated_hours"`
	Confidence      float64        `json:"confidence"` // 0-100
	Immediate       string         `gorm:"type:text" json:"immediate"`
	ShortTerm       string         `gorm:"type:text" json:"short_term"`
	LongTerm        string         `gorm:"type:text" json:"long_term"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (StudyPlan) TableName() string {
	return "study_plans"
}

// StudyTask - one task exploded out of a generated plan
type StudyTask struct {
	ID                   uint           `gorm:"primarykey" json:"id"`
	TaskID               string         `gorm:"uniqueIndex;size:100;not null" json:"task_id"`
	PlanID               string         `gorm:"size:100;not null;index" json:"plan_id"`
	Title                string         `gorm:"size:255;not null" json:"title"`
	Description          string         `gorm:"type:text;not null" json:"description"`
	Type                 string         `gorm:"size:20;not null" json:"type"`     // review, practice, quiz, flashcards, material
	Priority             string         `gorm:"size:10;not null" json:"priority"` // high, medium, low
	EstimatedMinutes     int            `gorm:"not null;default:30" json:"estimated_minutes"`
	TopicName            string         `gorm:"size:150" json:"topic_name"`
	RequiresVerification bool           `gorm:"not null;default:false" json:"requires_verification"`
	Reasoning            string         `gorm:"type:text" json:"reasoning"`
	DueDate              *time.Time     `json:"due_date,omitempty"`
	Status               string         `gorm:"size:20;not null;default:pending" json:"status"`
	SortOrder            int            `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (StudyTask) TableName() string {
	return "study_tasks"
}
