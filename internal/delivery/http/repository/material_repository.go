package repository

import (
	"github.com/passai/passai-be/internal/entity"
	"gorm.io/gorm"
)

type (
	MaterialRepository interface {
		Create(db *gorm.DB, material *entity.Material) error
		FindByMaterialID(db *gorm.DB, materialID string) (*entity.Material, error)
		FindBySubject(db *gorm.DB, subject string) ([]entity.Material, error)
		FindAll(db *gorm.DB) ([]entity.Material, error)
		DeleteByMaterialID(db *gorm.DB, materialID string) error

		// Topic operations
		UpsertTopic(db *gorm.DB, topic *entity.Topic) error
		FindTopicsBySubject(db *gorm.DB, subject string) ([]entity.Topic, error)
	}

	materialRepository struct {
		db *gorm.DB
	}
)

func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(db *gorm.DB, material *entity.Material) error {
	if db == nil {
		db = r.db
	}
	return db.Create(material).Error
}

func (r *materialRepository) FindByMaterialID(db *gorm.DB, materialID string) (*entity.Material, error) {
	if db == nil {
		db = r.db
	}
	var material entity.Material
	err := db.Where("material_id = ?", materialID).First(&material).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepository) FindBySubject(db *gorm.DB, subject string) ([]entity.Material, error) {
	if db == nil {
		db = r.db
	}
	var materials []entity.Material
	err := db.Where("subject = ?", subject).Order("created_at DESC").Find(&materials).Error
	return materials, err
}

func (r *materialRepository) FindAll(db *gorm.DB) ([]entity.Material, error) {
	if db == nil {
		db = r.db
	}
	var materials []entity.Material
	err := db.Order("created_at DESC").Find(&materials).Error
	return materials, err
}

func (r *materialRepository) DeleteByMaterialID(db *gorm.DB, materialID string) error {
	if db == nil {
		db = r.db
	}
	return db.Where("material_id = ?", materialID).Delete(&entity.Material{}).Error
}

// Topic operations
func (r *materialRepository) UpsertTopic(db *gorm.DB, topic *entity.Topic) error {
	if db == nil {
		db = r.db
	}
	var existing entity.Topic
	err := db.Where("subject = ? AND name = ?", topic.Subject, topic.Name).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return db.Create(topic).Error
	}
	return err
}

func (r *materialRepository) FindTopicsBySubject(db *gorm.DB, subject string) ([]entity.Topic, error) {
	if db == nil {
		db = r.db
	}
	var topics []entity.Topic
	err := db.Where("subject = ?", subject).Order("name ASC").Find(&topics).Error
	return topics, err
}
