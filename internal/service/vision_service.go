package service

import (
	"ai_tutor_backend/internal/util"
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const visionPreprompt = "请按照以下 JSON 格式返回结果，不要使用markdown格式：" +
	"{" +
	`    "题目": "识别到的完整题目，如果是选择题，需要加入选项",` +
	`    "正确答案": {` +
	`        "详细解析": "详细的解答过程",` +
	`        "考察知识点": ["知识点1", "知识点2"]` +
	"    }" +
	"}"

var dataURLPattern = regexp.MustCompile(`^data:(image/(\w+));base64,(.*)$`)

// VisionGateway 视觉模型网关
type VisionGateway interface {
	InvokeVision(ctx context.Context, imageDataURL, prompt string) (string, error)
}

// VisionService 拍照解题：保存题目图片，调用视觉模型识别并解答，
// 把题目与解析追加进学生错题本。
type VisionService struct {
	gateway VisionGateway
	storage *StorageService
	files   *FileStore
}

func NewVisionService(gateway VisionGateway, storage *StorageService, files *FileStore) *VisionService {
	return &VisionService{gateway: gateway, storage: storage, files: files}
}

// Solve 处理一张 Base64 data URL 形式的题目图片
func (s *VisionService) Solve(ctx context.Context, studentName, dataURL string) (*VisionReply, error) {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return nil, util.Validation("只支持图片文件！")
	}

	match := dataURLPattern.FindStringSubmatch(dataURL)
	if match == nil {
		return nil, util.Validation("无效的图片数据！")
	}

	mimeType, ext, b64 := match[1], strings.ToLower(match[2]), match[3]
	if ext != "png" && ext != "jpg" && ext != "jpeg" {
		return nil, util.Validation("不支持的图片格式！")
	}

	b64 = strings.NewReplacer("\n", "", "\r", "").Replace(b64)
	imageData, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, util.Validation("无效的图片数据！")
	}

	// 时间戳加随机后缀，避免同秒上传互相覆盖
	filename := fmt.Sprintf("%s_%s.%s", time.Now().Format("20060102150405"), uuid.New().String()[:8], ext)
	objectName := path.Join(studentName, "Problem", filename)
	if _, err := s.storage.Upload(ctx, objectName, bytes.NewReader(imageData), int64(len(imageData)), mimeType); err != nil {
		return nil, util.Storage("保存题目图片失败", err)
	}

	raw, err := s.gateway.InvokeVision(ctx, dataURL, visionPreprompt)
	if err != nil {
		s.discardImage(ctx, objectName)
		return nil, err
	}

	decoded, err := DecodeVisionReply(raw)
	if err != nil {
		s.discardImage(ctx, objectName)
		return nil, err
	}

	if err := s.files.AppendProblem(studentName, decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

// discardImage 识别失败时清理已上传的题目图片，清理失败不影响主流程
func (s *VisionService) discardImage(ctx context.Context, objectName string) {
	_ = s.storage.Delete(ctx, objectName)
}
