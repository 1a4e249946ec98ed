package service

import (
	"context"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"

	"ai_tutor_backend/internal/util"
)

const testModelReply = `{
	"用户画像": {
		"学段": "高中",
		"教材": "人教版",
		"困难的知识点": ["导数"]
	},
	"学习状态分数": {
		"学习深度": 6,
		"响应及时性": 8,
		"自我修正主动性": 5,
		"情感参与度": 7,
		"学习状态总分": 6.5
	},
	"回复内容": "试着用极限定义..."
}`

func setupTestChatService(t *testing.T, gateway *mockGateway) (*ChatService, *FileStore, *SessionStore, *mockScoreStore) {
	t.Helper()
	files := NewFileStore(t.TempDir())
	sessions := NewSessionStore()
	scores := newMockScoreStore()
	svc := NewChatService(gateway, files, sessions, scores, zap.NewNop())
	return svc, files, sessions, scores
}

func TestChat_FullTurn(t *testing.T) {
	gateway := &mockGateway{reply: testModelReply}
	svc, files, sessions, scores := setupTestChatService(t, gateway)

	reply, err := svc.Chat(context.Background(), "小明", "如何求导")
	if err != nil {
		t.Fatalf("Chat 应成功: %v", err)
	}
	if reply != "试着用极限定义..." {
		t.Errorf("期望回复内容原样返回，实际: %q", reply)
	}

	// 评分只落一条，总分取模型给出的值
	if len(scores.rows) != 1 {
		t.Fatalf("期望落 1 条评分，实际=%d", len(scores.rows))
	}
	score := scores.rows[0]
	if score.StudentName != "小明" || score.TotalScore != 6.5 {
		t.Errorf("评分内容错误: %+v", score)
	}
	if score.QuestionDepth != 6 || score.ResponseTimeliness != 8 ||
		score.CorrectionProactivity != 5 || score.EmotionalEngagement != 7 {
		t.Errorf("四维分数落库错误: %+v", score)
	}

	// 画像整体覆盖成约定格式
	profile, _ := files.ReadProfile("小明")
	want := "学生信息：\n- 学段：高中\n- 教材：人教版\n- 困难的知识点：导数\n"
	if profile != want {
		t.Errorf("画像文件不符\n期望: %q\n实际: %q", want, profile)
	}

	// 会话历史追加一问一答
	if sessions.Len("小明") != 2 {
		t.Errorf("期望会话历史 2 条，实际=%d", sessions.Len("小明"))
	}

	// 聊天记录落盘
	transcript, _ := files.ReadTranscript("小明")
	if !strings.Contains(transcript, "用户: 如何求导") || !strings.Contains(transcript, "AI: 试着用极限定义...") {
		t.Errorf("聊天记录缺失轮次: %q", transcript)
	}
}

func TestChat_InstructionCarriesProfileAndPrompt(t *testing.T) {
	gateway := &mockGateway{reply: testModelReply}
	svc, files, _, _ := setupTestChatService(t, gateway)

	_ = files.WriteProfile("小明", &ReplyProfile{Stage: "初中", Textbook: "苏教版"})

	if _, err := svc.Chat(context.Background(), "小明", "如何求导"); err != nil {
		t.Fatalf("Chat 应成功: %v", err)
	}

	if !strings.Contains(gateway.lastPrompt, "用户画像：") {
		t.Error("指令应携带画像段")
	}
	if !strings.Contains(gateway.lastPrompt, "初中") {
		t.Error("指令应携带已有画像内容")
	}
	if !strings.Contains(gateway.lastPrompt, "用户输入内容:\n如何求导") {
		t.Errorf("指令应以用户输入收尾: %q", gateway.lastPrompt)
	}
}

func TestChat_HistoryFlattenedIntoCall(t *testing.T) {
	gateway := &mockGateway{reply: testModelReply}
	svc, _, sessions, _ := setupTestChatService(t, gateway)

	sessions.Append("小明", "user", "上一轮问题")
	sessions.Append("小明", "assistant", "上一轮回复")

	if _, err := svc.Chat(context.Background(), "小明", "新问题"); err != nil {
		t.Fatalf("Chat 应成功: %v", err)
	}

	if len(gateway.lastHistory) != 2 {
		t.Errorf("既往轮次应平铺进网关调用，期望 2 条，实际=%d", len(gateway.lastHistory))
	}
}

func TestChat_GatewayFailureAbortsTurn(t *testing.T) {
	gateway := &mockGateway{err: util.Gateway("调用 AI 失败", nil)}
	svc, files, sessions, scores := setupTestChatService(t, gateway)

	_, err := svc.Chat(context.Background(), "小明", "如何求导")
	if err == nil {
		t.Fatal("网关失败应返回错误")
	}
	if util.KindOf(err) != util.KindGateway {
		t.Errorf("期望 KindGateway，实际: %v", util.KindOf(err))
	}

	// 整轮终止，什么都不持久化
	if len(scores.rows) != 0 {
		t.Error("网关失败不应落评分")
	}
	if sessions.Len("小明") != 0 {
		t.Error("网关失败不应追加会话历史")
	}
	if _, err := os.Stat(files.TranscriptPath("小明")); !os.IsNotExist(err) {
		t.Error("网关失败不应写聊天记录")
	}
}

func TestChat_MalformedReplyAbortsTurn(t *testing.T) {
	gateway := &mockGateway{reply: "抱歉，我无法按格式回答"}
	svc, files, sessions, scores := setupTestChatService(t, gateway)

	_, err := svc.Chat(context.Background(), "小明", "如何求导")
	if err == nil {
		t.Fatal("非 JSON 应答应返回错误")
	}
	if util.KindOf(err) != util.KindParse {
		t.Errorf("期望 KindParse，实际: %v", util.KindOf(err))
	}

	if len(scores.rows) != 0 {
		t.Error("解析失败不应落评分")
	}
	if sessions.Len("小明") != 0 {
		t.Error("解析失败不应追加会话历史")
	}
	if profile, _ := files.ReadProfile("小明"); profile != "" {
		t.Error("解析失败不应写画像")
	}
}

func TestChat_MissingScoresSkipsInsert(t *testing.T) {
	gateway := &mockGateway{reply: `{"回复内容": "只有回复"}`}
	svc, _, _, scores := setupTestChatService(t, gateway)

	reply, err := svc.Chat(context.Background(), "小明", "你好")
	if err != nil {
		t.Fatalf("Chat 应成功: %v", err)
	}
	if reply != "只有回复" {
		t.Errorf("期望回复原样返回: %q", reply)
	}
	if len(scores.rows) != 0 {
		t.Error("应答缺少分数段时不应落评分")
	}
}
