package service

import (
	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ScoreReader 评分查询入口
type ScoreReader interface {
	FindLatestByStudent(name string) (*model.ConversationScore, error)
	CountByDateSince(name string, since time.Time) ([]model.DailyCount, error)
	CountBetween(name string, start, end time.Time) (int64, error)
	FindAllByStudent(name string) ([]model.ConversationScore, error)
}

// ScoreService 评估读取与提问频率统计。只读，无副作用。
type ScoreService struct {
	scores ScoreReader
}

func NewScoreService(scores ScoreReader) *ScoreService {
	return &ScoreService{scores: scores}
}

// Latest 学生最新的一条评分。无记录返回 NotFound。
func (s *ScoreService) Latest(studentName string) (*model.ConversationScore, error) {
	score, err := s.scores.FindLatestByStudent(studentName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNoEvaluation
		}
		return nil, err
	}
	return score, nil
}

// RecentActivity 最近 windowDays 天按日历日统计的提问次数，日期升序。
// 没有记录的日期不补零，调用方不能假设序列稠密。
func (s *ScoreService) RecentActivity(studentName string, windowDays int) ([]model.DailyCount, error) {
	if windowDays <= 0 {
		windowDays = 7
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	since := today.AddDate(0, 0, -windowDays)

	return s.scores.CountByDateSince(studentName, since)
}

// Frequency 闭区间内的提问总次数
func (s *ScoreService) Frequency(studentName string, start, end time.Time) (int64, error) {
	if start.After(end) {
		return 0, util.Validation("起始时间不能晚于结束时间")
	}
	return s.scores.CountBetween(studentName, start, end)
}

// AllScores 学生全部评分，时间升序，导出用
func (s *ScoreService) AllScores(studentName string) ([]model.ConversationScore, error) {
	return s.scores.FindAllByStudent(studentName)
}
