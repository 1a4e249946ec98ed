package model

import "time"

// ConversationScore 一次对话轮次的学习状态评分样本。只追加，不更新不删除。
// 总分由外部模型给出，服务端不重新计算也不校验与四个子分的加权关系。
// swagger:model ConversationScore
type ConversationScore struct {
	ID                    uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentName           string    `gorm:"size:50;not null;index" json:"studentName"`
	Timestamp             time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"timestamp"`
	QuestionDepth         float64   `gorm:"not null" json:"questionDepth"`
	ResponseTimeliness    float64   `gorm:"not null" json:"responseTimeliness"`
	CorrectionProactivity float64   `gorm:"not null" json:"correctionProactivity"`
	EmotionalEngagement   float64   `gorm:"not null" json:"emotionalEngagement"`
	TotalScore            float64   `gorm:"not null" json:"totalScore"`
}

func (ConversationScore) TableName() string {
	return "conversation_scores"
}

// DailyCount 某个日历日内的提问次数
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}
