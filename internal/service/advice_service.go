package service

import (
	"ai_tutor_backend/internal/util"
	"context"
	"fmt"
	"strings"
)

const advicePreprompt = "根据用户画像，给出用户学习建议。" +
	"格式以二级标题'学习建议开头'，正文部分写学习建议。"

// AdviceGateway 建议模型网关
type AdviceGateway interface {
	InvokeAdvice(ctx context.Context, prompt string) (string, error)
}

// AdviceService 基于用户画像生成学习建议并入册。
// 画像是使用问答助手的副产品，没有画像就没有建议可生成。
type AdviceService struct {
	gateway AdviceGateway
	files   *FileStore
}

func NewAdviceService(gateway AdviceGateway, files *FileStore) *AdviceService {
	return &AdviceService{gateway: gateway, files: files}
}

// Advise 读取画像，调用建议模型，把结果追加到学生的建议文件
func (s *AdviceService) Advise(ctx context.Context, studentName, prompt string) (string, error) {
	profile, err := s.files.ReadProfile(studentName)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(profile) == "" {
		return "", util.ErrProfileMissing
	}

	fullPrompt := fmt.Sprintf("%s\n\n用户画像：\n%s\n\n用户输入内容:\n%s", advicePreprompt, profile, prompt)

	advice, err := s.gateway.InvokeAdvice(ctx, fullPrompt)
	if err != nil {
		return "", err
	}

	if err := s.files.AppendAdvice(studentName, advice); err != nil {
		return "", err
	}
	return advice, nil
}
