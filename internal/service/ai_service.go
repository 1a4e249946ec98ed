package service

import (
	"ai_tutor_backend/internal/config"
	"ai_tutor_backend/internal/util"
	"ai_tutor_backend/pkg/monitoring"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AIService 外部大模型网关。一次调用一个请求/响应，不重试不降级，
// 超时由配置的 HTTP 客户端超时和调用方 context 共同约束。
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: cfg.TimeoutSeconds},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Invoke 带历史调用对话模型。history 里的既往轮次原样平铺进 messages，
// 连续性交给模型处理。
func (s *AIService) Invoke(ctx context.Context, instruction string, history []AIChatMessage) (string, error) {
	messages := make([]AIChatMessage, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, AIChatMessage{Role: "user", Content: instruction})

	reqBody := ChatCompletionRequest{
		Model:    s.config.Model,
		Messages: messages,
	}

	start := time.Now()
	content, err := s.postChatCompletion(ctx, reqBody)
	monitoring.ObserveModelCall(s.config.Model, start, err)
	return content, err
}

func (s *AIService) postChatCompletion(ctx context.Context, reqBody interface{}) (string, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", util.Gateway("调用 AI 失败", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", util.Gateway("调用 AI 失败", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body)))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", util.Gateway("调用 AI 失败", err)
	}

	if result.Error != nil {
		return "", util.Gateway("调用 AI 失败", fmt.Errorf("AI API error: %s", result.Error.Message))
	}

	if len(result.Choices) == 0 {
		return "", util.Gateway("调用 AI 失败", fmt.Errorf("AI returned no choices"))
	}

	return result.Choices[0].Message.Content, nil
}

type visionContent struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL *struct {
		URL string `json:"url"`
	} `json:"image_url,omitempty"`
}

type visionMessage struct {
	Role    string          `json:"role"`
	Content []visionContent `json:"content"`
}

// InvokeVision 调用视觉模型识别题目图片。imageDataURL 形如
// data:image/png;base64,... 与兼容接口要求的 Content Type 一致。
func (s *AIService) InvokeVision(ctx context.Context, imageDataURL, prompt string) (string, error) {
	image := visionContent{Type: "image_url"}
	image.ImageURL = &struct {
		URL string `json:"url"`
	}{URL: imageDataURL}

	reqBody := struct {
		Model    string          `json:"model"`
		Messages []visionMessage `json:"messages"`
	}{
		Model: s.config.VisionModel,
		Messages: []visionMessage{
			{
				Role:    "system",
				Content: []visionContent{{Type: "text", Text: "根据要求做出应答，保证格式正确"}},
			},
			{
				Role: "user",
				Content: []visionContent{
					image,
					{Type: "text", Text: prompt},
				},
			},
		},
	}

	start := time.Now()
	content, err := s.postChatCompletion(ctx, reqBody)
	monitoring.ObserveModelCall(s.config.VisionModel, start, err)
	return content, err
}

type generationRequest struct {
	Model string `json:"model"`
	Input struct {
		Messages []AIChatMessage `json:"messages"`
	} `json:"input"`
	Parameters struct {
		ResultFormat string `json:"result_format"`
	} `json:"parameters"`
}

type generationResponse struct {
	Output *struct {
		Choices []struct {
			Message AIChatMessage `json:"message"`
		} `json:"choices"`
	} `json:"output"`
}

// InvokeAdvice 调用建议模型。走 DashScope 原生 text-generation 接口，
// 响应包裹在 output.choices 里。
func (s *AIService) InvokeAdvice(ctx context.Context, prompt string) (string, error) {
	var reqBody generationRequest
	reqBody.Model = s.config.AdviceModel
	reqBody.Input.Messages = []AIChatMessage{{Role: "user", Content: prompt}}
	reqBody.Parameters.ResultFormat = "message"

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	start := time.Now()
	content, err := s.postGeneration(ctx, jsonData)
	monitoring.ObserveModelCall(s.config.AdviceModel, start, err)
	return content, err
}

func (s *AIService) postGeneration(ctx context.Context, jsonData []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", s.config.AdviceBaseURL+"/services/aigc/text-generation/generation", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", util.Gateway("调用 AI 失败", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", util.Gateway("调用 AI 失败", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body)))
	}

	var result generationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", util.Gateway("调用 AI 失败", err)
	}

	if result.Output == nil || len(result.Output.Choices) == 0 {
		return "", util.Gateway("调用 AI 失败", fmt.Errorf("AI returned no choices"))
	}

	return result.Output.Choices[0].Message.Content, nil
}
