package service

import (
	"strings"
	"sync"
)

const (
	userLinePrefix = "用户: "
	aiLinePrefix   = "AI: "
)

// SessionStore 进程生命周期内的会话历史，按学生名分列。
// 登录时从聊天记录文件重建，进程重启且未登录则丢失。
// 只追加不裁剪，长会话无界增长。
//
// 并发契约：映射和每个列表都由同一把锁保护。同一学生的并发轮次
// 不会破坏列表结构，但画像文件与聊天记录文件上的竞争仍由调用方
// 自行序列化（见 ChatService 说明）。
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string][]AIChatMessage
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string][]AIChatMessage),
	}
}

// History 返回学生历史的快照，列表不存在时惰性建空
func (s *SessionStore) History(name string) []AIChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.sessions[name]
	if !ok {
		s.sessions[name] = nil
		return nil
	}
	out := make([]AIChatMessage, len(history))
	copy(out, history)
	return out
}

// Append 追加一条轮次消息
func (s *SessionStore) Append(name, role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[name] = append(s.sessions[name], AIChatMessage{Role: role, Content: content})
}

// Rehydrate 用聊天记录文件内容整体重建某学生的历史。
// 按行前缀区分角色，两种前缀之外的行（空行等）跳过。
func (s *SessionStore) Rehydrate(name, transcript string) {
	var history []AIChatMessage
	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, userLinePrefix):
			history = append(history, AIChatMessage{Role: "user", Content: strings.TrimPrefix(line, userLinePrefix)})
		case strings.HasPrefix(line, aiLinePrefix):
			history = append(history, AIChatMessage{Role: "assistant", Content: strings.TrimPrefix(line, aiLinePrefix)})
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[name] = history
}

// Len 当前历史长度，测试用
func (s *SessionStore) Len(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions[name])
}
