package repository

import (
	"ai_tutor_backend/internal/model"

	"gorm.io/gorm"
)

type TeacherRepository struct {
	DB *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) *TeacherRepository {
	return &TeacherRepository{DB: db}
}

func (r *TeacherRepository) Create(teacher *model.Teacher) error {
	return r.DB.Create(teacher).Error
}

func (r *TeacherRepository) FindByID(id uint) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.DB.First(&teacher, id).Error
	return &teacher, err
}

func (r *TeacherRepository) FindByName(name string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.DB.Where("name = ?", name).First(&teacher).Error
	return &teacher, err
}

func (r *TeacherRepository) FindByIdentifier(id model.Identifier) (*model.Teacher, error) {
	if id.IsID() {
		return r.FindByID(id.ID)
	}
	return r.FindByName(id.Name)
}

func (r *TeacherRepository) UpdatePassword(id uint, passwordHash string) error {
	return r.DB.Model(&model.Teacher{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).
		Error
}

func (r *TeacherRepository) BulkCreate(teachers []model.Teacher) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range teachers {
			if err := tx.Create(&teachers[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
