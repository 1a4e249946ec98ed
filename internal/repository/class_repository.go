package repository

import (
	"ai_tutor_backend/internal/model"

	"gorm.io/gorm"
)

type ClassRepository struct {
	DB *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{DB: db}
}

func (r *ClassRepository) Create(m *model.ClassMembership) error {
	return r.DB.Create(m).Error
}

// ClassExists 同 (teacher_id, class_name) 是否已有任意成员行
func (r *ClassRepository) ClassExists(teacherID uint, className string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ClassMembership{}).
		Where("teacher_id = ? AND class_name = ?", teacherID, className).
		Count(&count).Error
	return count > 0, err
}

// MemberExists 三元组存在性检查，代替数据库唯一约束
func (r *ClassRepository) MemberExists(teacherID uint, className string, studentID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ClassMembership{}).
		Where("teacher_id = ? AND class_name = ? AND student_id = ?", teacherID, className, studentID).
		Count(&count).Error
	return count > 0, err
}

// DeleteMember 踢出单个成员，返回删除的行数
func (r *ClassRepository) DeleteMember(teacherID uint, className string, studentID uint) (int64, error) {
	result := r.DB.Where("teacher_id = ? AND class_name = ? AND student_id = ?", teacherID, className, studentID).
		Delete(&model.ClassMembership{})
	return result.RowsAffected, result.Error
}

// DeleteClass 解散班级：删除该键下所有成员行
func (r *ClassRepository) DeleteClass(teacherID uint, className string) (int64, error) {
	result := r.DB.Where("teacher_id = ? AND class_name = ?", teacherID, className).
		Delete(&model.ClassMembership{})
	return result.RowsAffected, result.Error
}

func (r *ClassRepository) FindMembers(teacherID uint, className string) ([]model.ClassMembership, error) {
	var members []model.ClassMembership
	err := r.DB.Where("teacher_id = ? AND class_name = ?", teacherID, className).
		Find(&members).Error
	return members, err
}

// BulkAddMembers 批量拉学生进班，一个事务内逐行插入
func (r *ClassRepository) BulkAddMembers(teacherID uint, className string, studentIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for _, sid := range studentIDs {
			m := model.ClassMembership{
				TeacherID: teacherID,
				ClassName: className,
				StudentID: sid,
			}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
