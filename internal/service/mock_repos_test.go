package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"ai_tutor_backend/internal/model"
)

// ── Mock 账号仓库 ──

type mockStudentRepo struct {
	nextID   uint
	students map[uint]*model.Student
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{nextID: 1, students: make(map[uint]*model.Student)}
}

func (m *mockStudentRepo) Create(student *model.Student) error {
	if student.ID == 0 {
		student.ID = m.nextID
		m.nextID++
	}
	m.students[student.ID] = student
	return nil
}

func (m *mockStudentRepo) FindByName(name string) (*model.Student, error) {
	for _, s := range m.students {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) FindByIdentifier(id model.Identifier) (*model.Student, error) {
	if id.IsID() {
		if s, ok := m.students[id.ID]; ok {
			return s, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
	return m.FindByName(id.Name)
}

func (m *mockStudentRepo) FindByIDs(ids []uint) ([]model.Student, error) {
	var result []model.Student
	for _, id := range ids {
		if s, ok := m.students[id]; ok {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockStudentRepo) UpdatePassword(id uint, passwordHash string) error {
	s, ok := m.students[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.PasswordHash = passwordHash
	return nil
}

func (m *mockStudentRepo) BulkCreate(students []model.Student) error {
	for i := range students {
		s := students[i]
		_ = m.Create(&s)
	}
	return nil
}

type mockTeacherRepo struct {
	nextID   uint
	teachers map[uint]*model.Teacher
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{nextID: 1, teachers: make(map[uint]*model.Teacher)}
}

func (m *mockTeacherRepo) Create(teacher *model.Teacher) error {
	if teacher.ID == 0 {
		teacher.ID = m.nextID
		m.nextID++
	}
	m.teachers[teacher.ID] = teacher
	return nil
}

func (m *mockTeacherRepo) FindByName(name string) (*model.Teacher, error) {
	for _, t := range m.teachers {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) FindByIdentifier(id model.Identifier) (*model.Teacher, error) {
	if id.IsID() {
		if t, ok := m.teachers[id.ID]; ok {
			return t, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
	return m.FindByName(id.Name)
}

func (m *mockTeacherRepo) UpdatePassword(id uint, passwordHash string) error {
	t, ok := m.teachers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.PasswordHash = passwordHash
	return nil
}

func (m *mockTeacherRepo) BulkCreate(teachers []model.Teacher) error {
	for i := range teachers {
		t := teachers[i]
		_ = m.Create(&t)
	}
	return nil
}

// ── Mock 班级仓库 ──

type mockRosterRepo struct {
	rows []model.ClassMembership
}

func newMockRosterRepo() *mockRosterRepo {
	return &mockRosterRepo{}
}

func (m *mockRosterRepo) Create(row *model.ClassMembership) error {
	m.rows = append(m.rows, *row)
	return nil
}

func (m *mockRosterRepo) ClassExists(teacherID uint, className string) (bool, error) {
	for _, r := range m.rows {
		if r.TeacherID == teacherID && r.ClassName == className {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRosterRepo) MemberExists(teacherID uint, className string, studentID uint) (bool, error) {
	for _, r := range m.rows {
		if r.TeacherID == teacherID && r.ClassName == className && r.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRosterRepo) DeleteMember(teacherID uint, className string, studentID uint) (int64, error) {
	var kept []model.ClassMembership
	var deleted int64
	for _, r := range m.rows {
		if r.TeacherID == teacherID && r.ClassName == className && r.StudentID == studentID {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	m.rows = kept
	return deleted, nil
}

func (m *mockRosterRepo) DeleteClass(teacherID uint, className string) (int64, error) {
	var kept []model.ClassMembership
	var deleted int64
	for _, r := range m.rows {
		if r.TeacherID == teacherID && r.ClassName == className {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	m.rows = kept
	return deleted, nil
}

func (m *mockRosterRepo) FindMembers(teacherID uint, className string) ([]model.ClassMembership, error) {
	var result []model.ClassMembership
	for _, r := range m.rows {
		if r.TeacherID == teacherID && r.ClassName == className {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockRosterRepo) BulkAddMembers(teacherID uint, className string, studentIDs []uint) error {
	for _, id := range studentIDs {
		exists, _ := m.MemberExists(teacherID, className, id)
		if !exists {
			m.rows = append(m.rows, model.ClassMembership{TeacherID: teacherID, ClassName: className, StudentID: id})
		}
	}
	return nil
}

// ── Mock 评分仓库（同时充当读写两侧） ──

type mockScoreStore struct {
	nextID uint
	rows   []model.ConversationScore
}

func newMockScoreStore() *mockScoreStore {
	return &mockScoreStore{nextID: 1}
}

func (m *mockScoreStore) Create(score *model.ConversationScore) error {
	if score.ID == 0 {
		score.ID = m.nextID
		m.nextID++
	}
	if score.Timestamp.IsZero() {
		score.Timestamp = time.Now()
	}
	m.rows = append(m.rows, *score)
	return nil
}

func (m *mockScoreStore) FindLatestByStudent(name string) (*model.ConversationScore, error) {
	var latest *model.ConversationScore
	for i := range m.rows {
		r := &m.rows[i]
		if r.StudentName != name {
			continue
		}
		if latest == nil ||
			r.Timestamp.After(latest.Timestamp) ||
			(r.Timestamp.Equal(latest.Timestamp) && r.ID > latest.ID) {
			latest = r
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	out := *latest
	return &out, nil
}

func (m *mockScoreStore) CountByDateSince(name string, since time.Time) ([]model.DailyCount, error) {
	counts := make(map[string]int64)
	for _, r := range m.rows {
		if r.StudentName != name || r.Timestamp.Before(since) {
			continue
		}
		counts[r.Timestamp.Format("2006-01-02")]++
	}
	var dates []string
	for d := range counts {
		dates = append(dates, d)
	}
	// 日期升序
	for i := 0; i < len(dates); i++ {
		for j := i + 1; j < len(dates); j++ {
			if dates[j] < dates[i] {
				dates[i], dates[j] = dates[j], dates[i]
			}
		}
	}
	var result []model.DailyCount
	for _, d := range dates {
		result = append(result, model.DailyCount{Date: d, Count: counts[d]})
	}
	return result, nil
}

func (m *mockScoreStore) CountBetween(name string, start, end time.Time) (int64, error) {
	var count int64
	for _, r := range m.rows {
		if r.StudentName == name && !r.Timestamp.Before(start) && !r.Timestamp.After(end) {
			count++
		}
	}
	return count, nil
}

func (m *mockScoreStore) FindAllByStudent(name string) ([]model.ConversationScore, error) {
	var result []model.ConversationScore
	for _, r := range m.rows {
		if r.StudentName == name {
			result = append(result, r)
		}
	}
	return result, nil
}

// ── Mock 模型网关 ──

type mockGateway struct {
	reply string
	err   error

	calls        int
	lastHistory  []AIChatMessage
	lastPrompt   string
	lastImageURL string
}

func (m *mockGateway) Invoke(_ context.Context, instruction string, history []AIChatMessage) (string, error) {
	m.calls++
	m.lastPrompt = instruction
	m.lastHistory = history
	return m.reply, m.err
}

func (m *mockGateway) InvokeVision(_ context.Context, imageDataURL, prompt string) (string, error) {
	m.calls++
	m.lastImageURL = imageDataURL
	m.lastPrompt = prompt
	return m.reply, m.err
}

func (m *mockGateway) InvokeAdvice(_ context.Context, prompt string) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	return m.reply, m.err
}
