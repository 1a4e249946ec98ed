package service

import (
	"ai_tutor_backend/internal/util"
	"encoding/json"
	"strings"
)

// ModelReply 对话模型应答的结构化信封
type ModelReply struct {
	Profile *ReplyProfile `json:"用户画像"`
	Scores  *ReplyScores  `json:"学习状态分数"`
	Content string        `json:"回复内容"`
}

type ReplyProfile struct {
	Stage           string   `json:"学段"`
	Textbook        string   `json:"教材"`
	DifficultTopics []string `json:"困难的知识点"`
}

type ReplyScores struct {
	QuestionDepth         float64 `json:"学习深度"`
	ResponseTimeliness    float64 `json:"响应及时性"`
	CorrectionProactivity float64 `json:"自我修正主动性"`
	EmotionalEngagement   float64 `json:"情感参与度"`
	TotalScore            float64 `json:"学习状态总分"`
}

// DecodeModelReply 解析对话模型的 JSON 应答。
// 解析前把所有反斜杠加倍：模型经常按 LaTeX 习惯输出 \frac、\sqrt 之类的
// 裸转义，直接解析会失败。这是针对该模型怪癖的定点处理，不是通用的
// JSON 清洗器。缺失的字段保持零值。
func DecodeModelReply(raw string) (*ModelReply, error) {
	escaped := strings.ReplaceAll(raw, `\`, `\\`)

	var reply ModelReply
	if err := json.Unmarshal([]byte(escaped), &reply); err != nil {
		return nil, util.Parse("AI 返回的内容不是有效的 JSON 格式", err)
	}
	return &reply, nil
}

// VisionReply 视觉模型应答：识别出的题目与解析
type VisionReply struct {
	Question string        `json:"题目"`
	Answer   *VisionAnswer `json:"正确答案"`
}

type VisionAnswer struct {
	Explanation     string   `json:"详细解析"`
	KnowledgePoints []string `json:"考察知识点"`
}

// DecodeVisionReply 解析视觉模型应答。模型偶尔无视指令用 Markdown
// 代码块包裹 JSON，这里先剥掉 ```json 围栏再解析。
func DecodeVisionReply(raw string) (*VisionReply, error) {
	content := strings.TrimSpace(raw)
	if strings.HasPrefix(content, "```json") && strings.HasSuffix(content, "```") {
		content = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(content, "```json"), "```"))
	}

	var reply VisionReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return nil, util.Parse("模型返回的内容不是有效的 JSON 格式", err)
	}
	if reply.Question == "" {
		return nil, util.Parse("无法从模型响应中提取题目内容", nil)
	}
	if reply.Answer == nil {
		reply.Answer = &VisionAnswer{}
	}
	return &reply, nil
}
