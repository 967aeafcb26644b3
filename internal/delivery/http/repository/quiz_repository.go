package repository

import (
	"github.com/passai/passai-be/internal/entity"
	"gorm.io/gorm"
)

type (
	QuizRepository interface {
		// Quiz operations
		CreateQuiz(db *gorm.DB, quiz *entity.Quiz) error
		FindByQuizID(db *gorm.DB, quizID string) (*entity.Quiz, error)
		FindBySubject(db *gorm.DB, subject string) ([]entity.Quiz, error)

		// Question operations
		CreateQuestions(db *gorm.DB, questions []entity.Question) error
		FindQuestionsByQuizID(db *gorm.DB, quizID string) ([]entity.Question, error)

		// Attempt operations
		CreateAttempt(db *gorm.DB, attempt *entity.QuizAttempt) error
		CreateResponses(db *gorm.DB, responses []entity.QuestionResponse) error
		FindAttemptsBySubject(db *gorm.DB, subject string) ([]entity.QuizAttempt, error)
		FindResponsesBySubject(db *gorm.DB, subject string) ([]entity.QuestionResponse, error)

		// Fallback template operations
		FindTemplates(db *gorm.DB, subject, difficulty string, limit int) ([]entity.QuestionTemplate, error)
	}

	quizRepository struct {
		db *gorm.DB
	}
)

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

// Quiz operations
func (r *quizRepository) CreateQuiz(db *gorm.DB, quiz *entity.Quiz) error {
	if db == nil {
		db = r.db
	}
	return db.Create(quiz).Error
}

func (r *quizRepository) FindByQuizID(db *gorm.DB, quizID string) (*entity.Quiz, error) {
	if db == nil {
		db = r.db
	}
	var quiz entity.Quiz
	err := db.Where("quiz_id = ?", quizID).First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindBySubject(db *gorm.DB, subject string) ([]entity.Quiz, error) {
	if db == nil {
		db = r.db
	}
	var quizzes []entity.Quiz
	err := db.Where("subject = ?", subject).Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

// Question operations
func (r *quizRepository) CreateQuestions(db *gorm.DB, questions []entity.Question) error {
	if db == nil {
		db = r.db
	}
	if len(questions) == 0 {
		return nil
	}
	return db.Create(&questions).Error
}

func (r *quizRepository) FindQuestionsByQuizID(db *gorm.DB, quizID string) ([]entity.Question, error) {
	if db == nil {
		db = r.db
	}
	var questions []entity.Question
	err := db.Where("quiz_id = ?", quizID).Order("id ASC").Find(&questions).Error
	return questions, err
}

// Attempt operations
func (r *quizRepository) CreateAttempt(db *gorm.DB, attempt *entity.QuizAttempt) error {
	if db == nil {
		db = r.db
	}
	return db.Create(attempt).Error
}

func (r *quizRepository) CreateResponses(db *gorm.DB, responses []entity.QuestionResponse) error {
	if db == nil {
		db = r.db
	}
	if len(responses) == 0 {
		return nil
	}
	return db.Create(&responses).Error
}

func (r *quizRepository) FindAttemptsBySubject(db *gorm.DB, subject string) ([]entity.QuizAttempt, error) {
	if db == nil {
		db = r.db
	}
	var attempts []entity.QuizAttempt
	err := db.Where("subject = ?", subject).Order("completed_at ASC").Find(&attempts).Error
	return attempts, err
}

func (r *quizRepository) FindResponsesBySubject(db *gorm.DB, subject string) ([]entity.QuestionResponse, error) {
	if db == nil {
		db = r.db
	}
	var responses []entity.QuestionResponse
	err := db.Where("subject = ?", subject).Order("created_at ASC").Find(&responses).Error
	return responses, err
}

// Fallback template operations
func (r *quizRepository) FindTemplates(db *gorm.DB, subject, difficulty string, limit int) ([]entity.QuestionTemplate, error) {
	if db == nil {
		db = r.db
	}
	var templates []entity.QuestionTemplate
	query := db.Where("difficulty = ?", difficulty)
	if subject != "" {
		query = query.Where("subject = ? OR subject = ''", subject)
	}
	err := query.Limit(limit).Find(&templates).Error
	return templates, err
}
