package service

import (
	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/internal/util"
	"strings"

	"go.uber.org/zap"
)

// ClassRoster 班级成员行的存取
type ClassRoster interface {
	Create(m *model.ClassMembership) error
	ClassExists(teacherID uint, className string) (bool, error)
	MemberExists(teacherID uint, className string, studentID uint) (bool, error)
	DeleteMember(teacherID uint, className string, studentID uint) (int64, error)
	DeleteClass(teacherID uint, className string) (int64, error)
	FindMembers(teacherID uint, className string) ([]model.ClassMembership, error)
	BulkAddMembers(teacherID uint, className string, studentIDs []uint) error
}

// ClassService 班级花名册管理：建班/拉人、解散、踢出、学生加入、详情。
// 三元组唯一性靠存在性检查保证。
type ClassService struct {
	roster   ClassRoster
	students StudentAccounts
	teachers TeacherAccounts
	logger   *zap.Logger
}

func NewClassService(roster ClassRoster, students StudentAccounts, teachers TeacherAccounts, logger *zap.Logger) *ClassService {
	return &ClassService{
		roster:   roster,
		students: students,
		teachers: teachers,
		logger:   logger,
	}
}

// ResolveStudent 标识符解析为学生行。
// 请求体缺字段时标识符是零值，不会经过 JSON 解码的空值校验，这里兜一道。
func (s *ClassService) ResolveStudent(id model.Identifier) (*model.Student, error) {
	if id.IsZero() {
		return nil, util.Validation("标识符不能为空")
	}
	student, err := s.students.FindByIdentifier(id)
	if err != nil {
		return nil, util.ErrStudentNotFound
	}
	return student, nil
}

// ResolveTeacher 标识符解析为教师行
func (s *ClassService) ResolveTeacher(id model.Identifier) (*model.Teacher, error) {
	if id.IsZero() {
		return nil, util.Validation("标识符不能为空")
	}
	teacher, err := s.teachers.FindByIdentifier(id)
	if err != nil {
		return nil, util.ErrTeacherNotFound
	}
	return teacher, nil
}

// CreateOrAdd 创建班级或拉学生进已有班级。重复成员是幂等成功。
func (s *ClassService) CreateOrAdd(teacherID uint, className string, studentID model.Identifier) error {
	if strings.TrimSpace(className) == "" {
		return util.Validation("班级名称不能为空")
	}

	student, err := s.ResolveStudent(studentID)
	if err != nil {
		return err
	}

	exists, err := s.roster.MemberExists(teacherID, className, student.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := s.roster.Create(&model.ClassMembership{
		TeacherID: teacherID,
		ClassName: className,
		StudentID: student.ID,
	}); err != nil {
		return err
	}

	s.logger.Info("student added to class",
		zap.Uint("teacherId", teacherID),
		zap.String("class", className),
		zap.String("student", student.Name))
	return nil
}

// Join 学生主动加入某教师的已有班级。班级必须已存在。
func (s *ClassService) Join(teacherID model.Identifier, className string, studentID uint) error {
	if strings.TrimSpace(className) == "" {
		return util.Validation("班级名称不能为空")
	}

	teacher, err := s.ResolveTeacher(teacherID)
	if err != nil {
		return err
	}

	exists, err := s.roster.ClassExists(teacher.ID, className)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrClassNotFound
	}

	member, err := s.roster.MemberExists(teacher.ID, className, studentID)
	if err != nil {
		return err
	}
	if member {
		return nil
	}

	return s.roster.Create(&model.ClassMembership{
		TeacherID: teacher.ID,
		ClassName: className,
		StudentID: studentID,
	})
}

// Kick 教师踢出成员，逐行删除
func (s *ClassService) Kick(teacherID uint, className string, studentID model.Identifier) error {
	if strings.TrimSpace(className) == "" {
		return util.Validation("班级名称不能为空")
	}

	exists, err := s.roster.ClassExists(teacherID, className)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrClassNotFound
	}

	student, err := s.ResolveStudent(studentID)
	if err != nil {
		return err
	}

	deleted, err := s.roster.DeleteMember(teacherID, className, student.ID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return util.NotFoundErr("该学生不在班级中")
	}
	return nil
}

// Dissolve 解散班级：删掉键下的全部成员行
func (s *ClassService) Dissolve(teacherID uint, className string) (int64, error) {
	if strings.TrimSpace(className) == "" {
		return 0, util.Validation("班级名称不能为空")
	}

	deleted, err := s.roster.DeleteClass(teacherID, className)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, util.ErrClassNotFound
	}

	s.logger.Info("class dissolved",
		zap.Uint("teacherId", teacherID),
		zap.String("class", className),
		zap.Int64("members", deleted))
	return deleted, nil
}

// Details 班级详情：教师名 + 学生 ID/名字列表
func (s *ClassService) Details(teacherID uint, className string) (*model.ClassDetail, error) {
	if strings.TrimSpace(className) == "" {
		return nil, util.Validation("班级名称不能为空")
	}

	teacher, err := s.teachers.FindByIdentifier(model.ByID(teacherID))
	if err != nil {
		return nil, util.ErrTeacherNotFound
	}

	detail := &model.ClassDetail{
		ClassName: className,
		Teacher:   teacher.Name,
		Students:  []model.ClassStudent{},
	}

	members, err := s.roster.FindMembers(teacherID, className)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return detail, nil
	}

	ids := make([]uint, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.StudentID)
	}

	students, err := s.students.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	for _, st := range students {
		detail.Students = append(detail.Students, model.ClassStudent{ID: st.ID, Name: st.Name})
	}
	return detail, nil
}

// BulkAdd 批量拉学生进班
func (s *ClassService) BulkAdd(teacherID uint, className string, studentIDs []uint) error {
	if strings.TrimSpace(className) == "" {
		return util.Validation("班级名称不能为空")
	}
	if len(studentIDs) == 0 {
		return util.Validation("学生列表不能为空")
	}
	return s.roster.BulkAddMembers(teacherID, className, studentIDs)
}
