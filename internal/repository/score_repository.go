package repository

import (
	"ai_tutor_backend/internal/model"
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const latestScoreKeyPrefix = "tutor:score:latest:"
const latestScoreTTL = 24 * time.Hour

// ScoreRepository 学习状态评分的追加存储。
// Redis 作为最新一条评分的直写缓存，查询评估页时免掉一次 ORDER BY 扫描；
// 缓存不可用时透明回落到 MySQL。
type ScoreRepository struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewScoreRepository(db *gorm.DB, rdb *redis.Client) *ScoreRepository {
	return &ScoreRepository{DB: db, RDB: rdb}
}

func (r *ScoreRepository) Create(score *model.ConversationScore) error {
	if score.Timestamp.IsZero() {
		score.Timestamp = time.Now()
	}
	if err := r.DB.Create(score).Error; err != nil {
		return err
	}
	r.cacheLatest(score)
	return nil
}

func (r *ScoreRepository) cacheLatest(score *model.ConversationScore) {
	if r.RDB == nil {
		return
	}
	key := latestScoreKeyPrefix + score.StudentName
	// 回填历史数据时新插入的行可能比缓存里的旧，不能盲目覆盖
	if cached, err := r.RDB.Get(context.Background(), key).Bytes(); err == nil {
		if !replacesCachedLatest(cached, score) {
			return
		}
	}
	data, err := json.Marshal(score)
	if err != nil {
		return
	}
	r.RDB.Set(context.Background(), key, data, latestScoreTTL)
}

// replacesCachedLatest 候选行是否应取代缓存值。同刻取后插入的一条，因此
// 时间戳相等时也替换；缓存解析失败按可替换处理。
func replacesCachedLatest(cached []byte, candidate *model.ConversationScore) bool {
	var prev model.ConversationScore
	if json.Unmarshal(cached, &prev) != nil {
		return true
	}
	return !prev.Timestamp.After(candidate.Timestamp)
}

// FindLatestByStudent 最新一条评分：时间戳降序，同刻取最后插入的一条
func (r *ScoreRepository) FindLatestByStudent(name string) (*model.ConversationScore, error) {
	if r.RDB != nil {
		if data, err := r.RDB.Get(context.Background(), latestScoreKeyPrefix+name).Bytes(); err == nil {
			var cached model.ConversationScore
			if json.Unmarshal(data, &cached) == nil {
				return &cached, nil
			}
		}
	}

	var score model.ConversationScore
	err := r.DB.Where("student_name = ?", name).
		Order("timestamp DESC, id DESC").
		First(&score).Error
	if err != nil {
		return nil, err
	}
	r.cacheLatest(&score)
	return &score, nil
}

// CountByDateSince 自 since 起按日历日分组的提问次数，日期升序，无记录的日期不出现
func (r *ScoreRepository) CountByDateSince(name string, since time.Time) ([]model.DailyCount, error) {
	var rows []model.DailyCount
	err := r.DB.Model(&model.ConversationScore{}).
		Select("DATE_FORMAT(timestamp, '%Y-%m-%d') AS date, COUNT(id) AS count").
		Where("student_name = ? AND timestamp >= ?", name, since).
		Group("DATE_FORMAT(timestamp, '%Y-%m-%d')").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}

// CountBetween 闭区间内的提问总次数
func (r *ScoreRepository) CountBetween(name string, start, end time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ConversationScore{}).
		Where("student_name = ? AND timestamp >= ? AND timestamp <= ?", name, start, end).
		Count(&count).Error
	return count, err
}

// FindAllByStudent 导出用：该学生全部评分，时间升序
func (r *ScoreRepository) FindAllByStudent(name string) ([]model.ConversationScore, error) {
	var scores []model.ConversationScore
	err := r.DB.Where("student_name = ?", name).
		Order("timestamp ASC, id ASC").
		Find(&scores).Error
	return scores, err
}
