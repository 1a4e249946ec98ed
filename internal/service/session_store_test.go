package service

import "testing"

func TestSessionStore_LazyInit(t *testing.T) {
	store := NewSessionStore()

	history := store.History("小明")
	if len(history) != 0 {
		t.Errorf("新学生历史应为空，实际长度=%d", len(history))
	}
	if store.Len("小明") != 0 {
		t.Errorf("Len 应为 0，实际=%d", store.Len("小明"))
	}
}

func TestSessionStore_AppendAndSnapshot(t *testing.T) {
	store := NewSessionStore()
	store.Append("小明", "user", "什么是导数")
	store.Append("小明", "assistant", "先想想变化率")

	history := store.History("小明")
	if len(history) != 2 {
		t.Fatalf("期望 2 条历史，实际=%d", len(history))
	}
	if history[0].Role != "user" || history[1].Role != "assistant" {
		t.Errorf("角色顺序错误: %+v", history)
	}

	// History 返回快照，改动不应影响存储
	history[0].Content = "被篡改"
	fresh := store.History("小明")
	if fresh[0].Content != "什么是导数" {
		t.Error("History 应返回快照而非内部切片")
	}
}

func TestSessionStore_Rehydrate(t *testing.T) {
	store := NewSessionStore()
	transcript := "用户: 什么是导数\n\nAI: 先想想变化率\n\n用户: 懂了\n\nAI: 很好\n\n"

	store.Rehydrate("小明", transcript)

	history := store.History("小明")
	if len(history) != 4 {
		t.Fatalf("期望 4 条历史，实际=%d", len(history))
	}
	if history[0].Role != "user" || history[0].Content != "什么是导数" {
		t.Errorf("第一条解析错误: %+v", history[0])
	}
	if history[1].Role != "assistant" || history[1].Content != "先想想变化率" {
		t.Errorf("第二条解析错误: %+v", history[1])
	}
}

func TestSessionStore_RehydrateReplacesExisting(t *testing.T) {
	store := NewSessionStore()
	store.Append("小明", "user", "旧消息")

	store.Rehydrate("小明", "用户: 新消息\n")

	history := store.History("小明")
	if len(history) != 1 || history[0].Content != "新消息" {
		t.Errorf("Rehydrate 应整体替换历史: %+v", history)
	}
}

func TestSessionStore_RehydrateSkipsUnknownLines(t *testing.T) {
	store := NewSessionStore()
	store.Rehydrate("小明", "杂项行\n\n用户: 你好\n说明文字\nAI: 你好呀\n")

	if store.Len("小明") != 2 {
		t.Errorf("前缀之外的行应跳过，期望 2 条，实际=%d", store.Len("小明"))
	}
}
