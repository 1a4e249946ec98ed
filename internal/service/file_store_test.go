package service

import (
	"os"
	"strings"
	"testing"
)

func TestFileStore_WriteProfileFormat(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	err := fs.WriteProfile("小明", &ReplyProfile{
		Stage:           "高中",
		Textbook:        "人教版",
		DifficultTopics: []string{"导数", "三角函数"},
	})
	if err != nil {
		t.Fatalf("WriteProfile 应成功: %v", err)
	}

	data, err := os.ReadFile(fs.ProfilePath("小明"))
	if err != nil {
		t.Fatalf("读取画像失败: %v", err)
	}

	want := "学生信息：\n- 学段：高中\n- 教材：人教版\n- 困难的知识点：导数， 三角函数\n"
	if string(data) != want {
		t.Errorf("画像格式不符\n期望: %q\n实际: %q", want, string(data))
	}
}

func TestFileStore_WriteProfileOverwrites(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	_ = fs.WriteProfile("小明", &ReplyProfile{Stage: "初中", Textbook: "苏教版", DifficultTopics: []string{"方程"}})
	_ = fs.WriteProfile("小明", &ReplyProfile{Stage: "高中", Textbook: "人教版"})

	content, _ := fs.ReadProfile("小明")
	if strings.Contains(content, "方程") || strings.Contains(content, "初中") {
		t.Errorf("画像应整体覆盖而非追加: %q", content)
	}
	if !strings.Contains(content, "高中") {
		t.Errorf("新画像未写入: %q", content)
	}
	if strings.Contains(content, "困难的知识点") {
		t.Errorf("空知识点列表不应输出该行: %q", content)
	}
}

func TestFileStore_ReadProfileMissing(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	content, err := fs.ReadProfile("不存在的学生")
	if err != nil {
		t.Fatalf("画像缺失应按空处理: %v", err)
	}
	if content != "" {
		t.Errorf("期望空画像，实际: %q", content)
	}
}

func TestFileStore_TranscriptShape(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	_ = fs.AppendTranscript("小明", "什么是导数", "先想想变化率")
	_ = fs.AppendTranscript("小明", "懂了", "很好")

	transcript, err := fs.ReadTranscript("小明")
	if err != nil {
		t.Fatalf("读取聊天记录失败: %v", err)
	}

	userLines := strings.Count(transcript, "用户: ")
	aiLines := strings.Count(transcript, "AI: ")
	if userLines != 2 || aiLines != 2 {
		t.Errorf("两轮对话应有 2+2 条前缀行，实际 用户=%d AI=%d", userLines, aiLines)
	}

	// 追加的轮次可以被会话存储原样解析回来
	store := NewSessionStore()
	store.Rehydrate("小明", transcript)
	if store.Len("小明") != 4 {
		t.Errorf("聊天记录应可重建为 4 条历史，实际=%d", store.Len("小明"))
	}
}

func TestFileStore_AppendProblem(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	err := fs.AppendProblem("小明", &VisionReply{
		Question: "1+1=?",
		Answer: &VisionAnswer{
			Explanation:     "等于2",
			KnowledgePoints: []string{"加法", "算术"},
		},
	})
	if err != nil {
		t.Fatalf("AppendProblem 应成功: %v", err)
	}

	data, _ := os.ReadFile(fs.ProblemLogPath("小明"))
	content := string(data)
	if !strings.Contains(content, "题目: 1+1=?") {
		t.Errorf("错题本缺少题目: %q", content)
	}
	if !strings.Contains(content, "加法，算术") {
		t.Errorf("知识点应以中文逗号连接: %q", content)
	}
}

func TestFileStore_AppendAdvice(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	_ = fs.AppendAdvice("小明", "多做错题")
	_ = fs.AppendAdvice("小明", "规律复习")

	data, _ := os.ReadFile(fs.AdvicePath("小明"))
	content := string(data)
	if strings.Count(content, "获取学习建议：") != 2 {
		t.Errorf("建议应追加两条: %q", content)
	}
	if !strings.Contains(content, "多做错题") || !strings.Contains(content, "规律复习") {
		t.Errorf("建议内容缺失: %q", content)
	}
}
