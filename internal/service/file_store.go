package service

import (
	"ai_tutor_backend/internal/util"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileStore 每个学生一个目录的文件存储：画像快照、聊天记录、
// 错题本、学习建议。文件名与行前缀约定是对外契约——登录重建会话
// 历史依赖聊天记录的两种行前缀，前端资源下载依赖固定文件名。
type FileStore struct {
	Root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{Root: root}
}

func (f *FileStore) studentDir(name string) (string, error) {
	dir := filepath.Join(f.Root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", util.Storage("创建用户文件夹失败", err)
	}
	return dir, nil
}

// ProfilePath 画像文件路径（不保证存在）
func (f *FileStore) ProfilePath(name string) string {
	return filepath.Join(f.Root, name, name+"_profile.txt")
}

// TranscriptPath 聊天记录文件路径
func (f *FileStore) TranscriptPath(name string) string {
	return filepath.Join(f.Root, name, name+"_chat_history.txt")
}

// ProblemLogPath 错题本文件路径
func (f *FileStore) ProblemLogPath(name string) string {
	return filepath.Join(f.Root, name, name+"_problem_txt.txt")
}

// AdvicePath 学习建议文件路径
func (f *FileStore) AdvicePath(name string) string {
	return filepath.Join(f.Root, name, name+"_advice.txt")
}

// ReadProfile 读取画像快照，文件不存在按空画像处理
func (f *FileStore) ReadProfile(name string) (string, error) {
	data, err := os.ReadFile(f.ProfilePath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", util.Storage("读取用户画像失败", err)
	}
	return string(data), nil
}

// WriteProfile 整体覆盖画像快照：整替换，不合并
func (f *FileStore) WriteProfile(name string, profile *ReplyProfile) error {
	if _, err := f.studentDir(name); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("学生信息：\n")
	b.WriteString(fmt.Sprintf("- 学段：%s\n", profile.Stage))
	b.WriteString(fmt.Sprintf("- 教材：%s\n", profile.Textbook))
	if len(profile.DifficultTopics) > 0 {
		b.WriteString(fmt.Sprintf("- 困难的知识点：%s\n", strings.Join(profile.DifficultTopics, "， ")))
	}

	if err := os.WriteFile(f.ProfilePath(name), []byte(b.String()), 0644); err != nil {
		return util.Storage("写入用户画像失败", err)
	}
	return nil
}

// AppendTranscript 追加一轮对话。行格式是登录重建历史的解析依据。
func (f *FileStore) AppendTranscript(name, prompt, reply string) error {
	if _, err := f.studentDir(name); err != nil {
		return err
	}
	entry := fmt.Sprintf("%s%s\n\n%s%s\n\n", userLinePrefix, prompt, aiLinePrefix, reply)
	return f.appendFile(f.TranscriptPath(name), entry)
}

// ReadTranscript 读整个聊天记录，不存在按空处理
func (f *FileStore) ReadTranscript(name string) (string, error) {
	data, err := os.ReadFile(f.TranscriptPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", util.Storage("读取聊天记录失败", err)
	}
	return string(data), nil
}

// AppendProblem 向错题本追加一道识别出的题目
func (f *FileStore) AppendProblem(name string, reply *VisionReply) error {
	if _, err := f.studentDir(name); err != nil {
		return err
	}

	var explanation string
	var points []string
	if reply.Answer != nil {
		explanation = reply.Answer.Explanation
		points = reply.Answer.KnowledgePoints
	}

	dateStr := time.Now().Format("2006-01-02")
	var b strings.Builder
	b.WriteString(fmt.Sprintf("日期: %s\n\n", dateStr))
	b.WriteString(fmt.Sprintf("题目: %s\n\n", reply.Question))
	b.WriteString("正确答案:\n")
	b.WriteString(fmt.Sprintf("- 详细解析: %s\n", explanation))
	b.WriteString(fmt.Sprintf("- 考察知识点: %s\n\n", strings.Join(points, "，")))

	return f.appendFile(f.ProblemLogPath(name), b.String())
}

// AppendAdvice 向学习建议文件追加一条建议
func (f *FileStore) AppendAdvice(name, advice string) error {
	if _, err := f.studentDir(name); err != nil {
		return err
	}
	dateStr := time.Now().Format("2006-01-02")
	entry := fmt.Sprintf("在%s\n\n%s获取学习建议：\n\n%s\n\n", dateStr, name, advice)
	return f.appendFile(f.AdvicePath(name), entry)
}

func (f *FileStore) appendFile(path, content string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return util.Storage("打开文件失败", err)
	}
	defer file.Close()

	if _, err := file.WriteString(content); err != nil {
		return util.Storage("写入文件失败", err)
	}
	return nil
}
