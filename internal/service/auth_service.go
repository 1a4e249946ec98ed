package service

import (
	"ai_tutor_backend/internal/config"
	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/internal/util"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// StudentAccounts 学生账号存取
type StudentAccounts interface {
	Create(student *model.Student) error
	FindByName(name string) (*model.Student, error)
	FindByIdentifier(id model.Identifier) (*model.Student, error)
	FindByIDs(ids []uint) ([]model.Student, error)
	UpdatePassword(id uint, passwordHash string) error
	BulkCreate(students []model.Student) error
}

// TeacherAccounts 教师账号存取
type TeacherAccounts interface {
	Create(teacher *model.Teacher) error
	FindByName(name string) (*model.Teacher, error)
	FindByIdentifier(id model.Identifier) (*model.Teacher, error)
	UpdatePassword(id uint, passwordHash string) error
	BulkCreate(teachers []model.Teacher) error
}

// AuthService 注册、登录、改密、批量导入。
// 学生登录成功后用聊天记录文件重建内存会话历史。
type AuthService struct {
	students StudentAccounts
	teachers TeacherAccounts
	files    *FileStore
	sessions *SessionStore
	cfg      *config.Config
}

func NewAuthService(students StudentAccounts, teachers TeacherAccounts, files *FileStore, sessions *SessionStore, cfg *config.Config) *AuthService {
	return &AuthService{
		students: students,
		teachers: teachers,
		files:    files,
		sessions: sessions,
		cfg:      cfg,
	}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Register 按角色注册。用户名只在各自角色的表内唯一。
func (s *AuthService) Register(role model.Role, name, password string) (uint, error) {
	hashed, err := hashPassword(password)
	if err != nil {
		return 0, err
	}

	switch role {
	case model.RoleTeacher:
		if _, err := s.teachers.FindByName(name); err == nil {
			return 0, util.ErrNameRegistered
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		teacher := &model.Teacher{Name: name, PasswordHash: hashed}
		if err := s.teachers.Create(teacher); err != nil {
			return 0, err
		}
		return teacher.ID, nil
	default:
		if _, err := s.students.FindByName(name); err == nil {
			return 0, util.ErrNameRegistered
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		student := &model.Student{Name: name, PasswordHash: hashed}
		if err := s.students.Create(student); err != nil {
			return 0, err
		}
		return student.ID, nil
	}
}

// Login 校验凭据并签发 JWT。学生登录时同步重建会话历史。
func (s *AuthService) Login(role model.Role, name, password string) (string, error) {
	var id uint
	var hash string

	switch role {
	case model.RoleTeacher:
		teacher, err := s.teachers.FindByName(name)
		if err != nil {
			return "", errors.New("invalid credentials")
		}
		id, hash = teacher.ID, teacher.PasswordHash
	default:
		student, err := s.students.FindByName(name)
		if err != nil {
			return "", errors.New("invalid credentials")
		}
		id, hash = student.ID, student.PasswordHash
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	if role == model.RoleStudent {
		s.rehydrateSession(name)
	}

	return util.GenerateJWT(id, name, role, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
}

func (s *AuthService) rehydrateSession(name string) {
	transcript, err := s.files.ReadTranscript(name)
	if err != nil {
		// 历史丢失只影响连续性，不阻断登录
		s.sessions.Rehydrate(name, "")
		return
	}
	s.sessions.Rehydrate(name, transcript)
}

// ChangePassword 显式改密，账号行的哈希只在这里变更
func (s *AuthService) ChangePassword(role model.Role, id uint, oldPassword, newPassword string) error {
	var hash string
	switch role {
	case model.RoleTeacher:
		teacher, err := s.teachers.FindByIdentifier(model.ByID(id))
		if err != nil {
			return util.ErrTeacherNotFound
		}
		hash = teacher.PasswordHash
	default:
		student, err := s.students.FindByIdentifier(model.ByID(id))
		if err != nil {
			return util.ErrStudentNotFound
		}
		hash = student.PasswordHash
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(oldPassword)); err != nil {
		return util.Validation("用户名或密码错误")
	}

	newHash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	if role == model.RoleTeacher {
		return s.teachers.UpdatePassword(id, newHash)
	}
	return s.students.UpdatePassword(id, newHash)
}

// ImportAccount 批量导入的一行
type ImportAccount struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// BulkImport 批量导入账号，每行单独加盐哈希
func (s *AuthService) BulkImport(role model.Role, accounts []ImportAccount) error {
	if role != model.RoleStudent && role != model.RoleTeacher {
		return util.Validation("不正确传入")
	}

	if role == model.RoleTeacher {
		teachers := make([]model.Teacher, 0, len(accounts))
		for _, a := range accounts {
			hashed, err := hashPassword(a.Password)
			if err != nil {
				return err
			}
			teachers = append(teachers, model.Teacher{Name: a.Name, PasswordHash: hashed})
		}
		return s.teachers.BulkCreate(teachers)
	}

	students := make([]model.Student, 0, len(accounts))
	for _, a := range accounts {
		hashed, err := hashPassword(a.Password)
		if err != nil {
			return err
		}
		students = append(students, model.Student{Name: a.Name, PasswordHash: hashed})
	}
	return s.students.BulkCreate(students)
}
