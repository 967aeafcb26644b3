package repository

import (
	"github.com/passai/passai-be/internal/entity"
	"gorm.io/gorm"
)

type (
	StudyPlanRepository interface {
		CreatePlan(db *gorm.DB, plan *entity.StudyPlan) error
		CreateTasks(db *gorm.DB, tasks []entity.StudyTask) error
		FindActiveBySubject(db *gorm.DB, subject string) (*entity.StudyPlan, error)
		FindByPlanID(db *gorm.DB, planID string) (*entity.StudyPlan, error)
		FindAllActive(db *gorm.DB) ([]entity.StudyPlan, error)
		FindTasksByPlanID(db *gorm.DB, planID string) ([]entity.StudyTask, error)
		DeactivateBySubject(db *gorm.DB, subject string) error
		UpdateTaskStatus(db *gorm.DB, taskID, status string) error
	}

	studyPlanRepository struct {
		db *gorm.DB
	}
)

func NewStudyPlanRepository(db *gorm.DB) StudyPlanRepository {
	return &studyPlanRepository{db: db}
}

func (r *studyPlanRepository) CreatePlan(db *gorm.DB, plan *entity.StudyPlan) error {
	if db == nil {
		db = r.db
	}
	return db.Create(plan).Error
}

func (r *studyPlanRepository) CreateTasks(db *gorm.DB, tasks []entity.StudyTask) error {
	if db == nil {
		db = r.db
	}
	if len(tasks) == 0 {
		return nil
	}
	return db.Create(&tasks).Error
}

func (r *studyPlanRepository) FindActiveBySubject(db *gorm.DB, subject string) (*entity.StudyPlan, error) {
	if db == nil {
		db = r.db
	}
	var plan entity.StudyPlan
	err := db.Where("subject = ? AND active = ?", subject, true).Order("created_at DESC").First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *studyPlanRepository) FindByPlanID(db *gorm.DB, planID string) (*entity.StudyPlan, error) {
	if db == nil {
		db = r.db
	}
	var plan entity.StudyPlan
	err := db.Where("plan_id = ?", planID).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *studyPlanRepository) FindAllActive(db *gorm.DB) ([]entity.StudyPlan, error) {
	if db == nil {
		db = r.db
	}
	var plans []entity.StudyPlan
	err := db.Where("active = ?", true).Order("created_at DESC").Find(&plans).Error
	return plans, err
}

func (r *studyPlanRepository) FindTasksByPlanID(db *gorm.DB, planID string) ([]entity.StudyTask, error) {
	if db == nil {
		db = r.db
	}
	var tasks []entity.StudyTask
	err := db.Where("plan_id = ?", planID).Order("sort_order ASC").Find(&tasks).Error
	return tasks, err
}

func (r *studyPlanRepository) DeactivateBySubject(db *gorm.DB, subject string) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&entity.StudyPlan{}).
		Where("subject = ? AND active = ?", subject, true).
		Update("active", false).Error
}

func (r *studyPlanRepository) UpdateTaskStatus(db *gorm.DB, taskID, status string) error {
	if db == nil {
		db = r.db
	}
	result := db.Model(&entity.StudyTask{}).
		Where("task_id = ?", taskID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
