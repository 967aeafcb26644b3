package database

import (
	"github.com/passai/passai-be/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Material{},
		&entity.Topic{},
		&entity.Quiz{},
		&entity.Question{},
		&entity.QuizAttempt{},
		&entity.QuestionResponse{},
		&entity.QuestionTemplate{},
		&entity.StudyPlan{},
		&entity.StudyTask{},
	)
	return err
}
