package model

// ClassMembership 班级成员行。班级不是一等实体：
// 同一 (teacher_id, class_name) 的行集合即为一个班级。
// (teacher_id, class_name, student_id) 三元组的唯一性由存在性检查保证，
// 不依赖数据库约束。
// swagger:model ClassMembership
type ClassMembership struct {
	BaseModel
	TeacherID uint   `gorm:"not null;index:idx_class,priority:1" json:"teacherId"`
	ClassName string `gorm:"size:100;not null;index:idx_class,priority:2" json:"className"`
	StudentID uint   `gorm:"not null" json:"studentId"`
}

func (ClassMembership) TableName() string {
	return "class_memberships"
}

// ClassStudent 班级详情中的学生条目
type ClassStudent struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ClassDetail 班级详情：教师名 + 学生列表
type ClassDetail struct {
	ClassName string         `json:"classname"`
	Teacher   string         `json:"teacher"`
	Students  []ClassStudent `json:"students"`
}
