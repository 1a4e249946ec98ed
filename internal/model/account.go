package model

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// Student 学生账号。用户名在学生表内唯一，作为大多数调用点的主键标识。
// swagger:model Student
type Student struct {
	BaseModel
	Name         string `gorm:"size:50;unique;not null" json:"name"`
	PasswordHash string `gorm:"size:60;not null" json:"-"`
}

func (Student) TableName() string {
	return "students"
}

// Teacher 教师账号。与学生表物理分离，用户名仅在教师表内唯一。
// swagger:model Teacher
type Teacher struct {
	BaseModel
	Name         string `gorm:"size:50;unique;not null" json:"name"`
	PasswordHash string `gorm:"size:60;not null" json:"-"`
}

func (Teacher) TableName() string {
	return "teachers"
}
