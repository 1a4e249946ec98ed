package service

import (
	"ai_tutor_backend/internal/model"
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// chatPreprompt 固定的系统框架：助手人设 + 要求的 JSON 应答格式 +
// 学习状态评分规则。四个维度均为 10 分制，总分由模型按占比给出。
const chatPreprompt = "你是一个侧重逆向学习的教育助手，负责分析用户的对话内容，有逻辑地引导学生正向积极地学习。" +
	"请按照以下 JSON 格式返回结果：" +
	"{" +
	`    "用户画像": {` +
	`        "学段": "小学/初中/高中/大学",` +
	`        "教材": "如人教版、苏教版等",` +
	`        "困难的知识点": ["知识点1", "知识点2"]` +
	`    },` +
	`    "学习状态分数": {` +
	`        "学习深度": 0,` +
	`        "响应及时性": 0,` +
	`        "自我修正主动性": 0,` +
	`        "情感参与度": 0,` +
	`        "学习状态总分": 0` +
	`    },` +
	`    "回复内容": "用教师语气,对用户输入的回复"` +
	"}" +
	"计算学习状态分数规则如下(均为10分制)：" +
	"学习深度(分数占比30％)：基于问题链长度（平均值）。" +
	"响应及时性(分数占比20％)：基于AI的平均响应时间。" +
	"自我修正主动性(分数占比25％)：基于用户对错误的自我修正次数。" +
	"情感参与度(分数占比25％)：基于用户对话中的情感词汇密度。"

// ModelGateway 对话模型网关
type ModelGateway interface {
	Invoke(ctx context.Context, instruction string, history []AIChatMessage) (string, error)
}

// ScoreWriter 评分样本的追加入口
type ScoreWriter interface {
	Create(score *model.ConversationScore) error
}

// ChatService 驱动一个对话轮次：取画像和历史、拼指令、调网关、
// 解析结构化应答、更新画像、落评分、追加聊天记录、返回回复。
//
// 同一学生的并发轮次不在这里串行化：两个并发请求会读到同一份
// 画像/历史快照，画像覆盖以后写者为准，聊天记录两次追加都会落盘。
// 需要严格按序的调用方应在外部按学生排队。
type ChatService struct {
	gateway  ModelGateway
	files    *FileStore
	sessions *SessionStore
	scores   ScoreWriter
	logger   *zap.Logger
}

func NewChatService(gateway ModelGateway, files *FileStore, sessions *SessionStore, scores ScoreWriter, logger *zap.Logger) *ChatService {
	return &ChatService{
		gateway:  gateway,
		files:    files,
		sessions: sessions,
		scores:   scores,
		logger:   logger,
	}
}

// Chat 执行一个对话轮次，返回面向用户的回复文本。
// 网关失败或应答不是合法 JSON 时整轮终止，什么都不持久化；
// 之后的画像/评分/聊天记录写入按序尽力而为，单步失败记日志不回滚。
func (s *ChatService) Chat(ctx context.Context, studentName, prompt string) (string, error) {
	history := s.sessions.History(studentName)

	profile, err := s.files.ReadProfile(studentName)
	if err != nil {
		return "", err
	}

	instruction := fmt.Sprintf("%s\n\n用户画像：\n%s\n\n用户输入内容:\n%s", chatPreprompt, profile, prompt)

	raw, err := s.gateway.Invoke(ctx, instruction, history)
	if err != nil {
		return "", err
	}

	decoded, err := DecodeModelReply(raw)
	if err != nil {
		s.logger.Warn("model reply is not valid JSON",
			zap.String("student", studentName),
			zap.Error(err))
		return "", err
	}

	if decoded.Profile != nil {
		if err := s.files.WriteProfile(studentName, decoded.Profile); err != nil {
			s.logger.Error("profile overwrite failed", zap.String("student", studentName), zap.Error(err))
		}
	}

	if decoded.Scores != nil {
		score := &model.ConversationScore{
			StudentName:           studentName,
			Timestamp:             time.Now(),
			QuestionDepth:         decoded.Scores.QuestionDepth,
			ResponseTimeliness:    decoded.Scores.ResponseTimeliness,
			CorrectionProactivity: decoded.Scores.CorrectionProactivity,
			EmotionalEngagement:   decoded.Scores.EmotionalEngagement,
			TotalScore:            decoded.Scores.TotalScore,
		}
		if err := s.scores.Create(score); err != nil {
			s.logger.Error("score insert failed", zap.String("student", studentName), zap.Error(err))
		}
	}

	reply := strings.TrimSpace(decoded.Content)

	s.sessions.Append(studentName, "user", prompt)
	s.sessions.Append(studentName, "assistant", reply)

	if err := s.files.AppendTranscript(studentName, prompt, reply); err != nil {
		s.logger.Error("transcript append failed", zap.String("student", studentName), zap.Error(err))
	}

	return reply, nil
}
