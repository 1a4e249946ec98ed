package repository

import (
	"ai_tutor_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) Create(student *model.Student) error {
	return r.DB.Create(student).Error
}

func (r *StudentRepository) FindByID(id uint) (*model.Student, error) {
	var student model.Student
	err := r.DB.First(&student, id).Error
	return &student, err
}

func (r *StudentRepository) FindByName(name string) (*model.Student, error) {
	var student model.Student
	err := r.DB.Where("name = ?", name).First(&student).Error
	return &student, err
}

// FindByIdentifier 在边界解码后的标识符解析为唯一账号行
func (r *StudentRepository) FindByIdentifier(id model.Identifier) (*model.Student, error) {
	if id.IsID() {
		return r.FindByID(id.ID)
	}
	return r.FindByName(id.Name)
}

func (r *StudentRepository) UpdatePassword(id uint, passwordHash string) error {
	return r.DB.Model(&model.Student{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).
		Error
}

// BulkCreate 批量导入，逐行插入在一个事务里完成
func (r *StudentRepository) BulkCreate(students []model.Student) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range students {
			if err := tx.Create(&students[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *StudentRepository) FindByIDs(ids []uint) ([]model.Student, error) {
	var students []model.Student
	err := r.DB.Where("id IN ?", ids).Find(&students).Error
	return students, err
}
