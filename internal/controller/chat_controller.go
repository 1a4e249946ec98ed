package controller

import (
	"ai_tutor_backend/internal/service"
	"ai_tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	ChatService   *service.ChatService
	VisionService *service.VisionService
	AdviceService *service.AdviceService
}

func NewChatController(chatService *service.ChatService, visionService *service.VisionService, adviceService *service.AdviceService) *ChatController {
	return &ChatController{
		ChatService:   chatService,
		VisionService: visionService,
		AdviceService: adviceService,
	}
}

type ChatRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// Chat godoc
// @Summary 逆向学习问答
// @Description 携带会话历史调用大模型，更新用户画像、学习状态分数与聊天记录后返回回复
// @Tags 对话
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ChatRequest true "用户输入"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 500 {object} util.Response "模型调用或解析失败"
// @Router /api/chat [post]
func (c *ChatController) Chat(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.ChatService.Chat(ctx.Request.Context(), user.Name, req.Prompt)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"response": reply})
}

type UploadImageRequest struct {
	Image string `json:"image" binding:"required"`
}

// UploadImage godoc
// @Summary 拍照解题
// @Description 上传 base64 图片，由视觉模型识别题目并给出解析，结果记入错题本
// @Tags 对话
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body UploadImageRequest true "data URL 图片"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "图片数据无效"
// @Failure 500 {object} util.Response "模型调用或解析失败"
// @Router /api/upload-image [post]
func (c *ChatController) UploadImage(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UploadImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.VisionService.Solve(ctx.Request.Context(), user.Name, req.Image)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"题目":   reply.Question,
		"详细解析": reply.Answer.Explanation,
		"考察知识点": reply.Answer.KnowledgePoints,
	})
}

type AdviceRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// Advice godoc
// @Summary 学习建议
// @Description 基于用户画像生成个性化学习建议并记入建议文件
// @Tags 对话
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AdviceRequest true "建议请求"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "尚无用户画像"
// @Failure 500 {object} util.Response "模型调用失败"
// @Router /api/advice [post]
func (c *ChatController) Advice(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AdviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	advice, err := c.AdviceService.Advise(ctx.Request.Context(), user.Name, req.Prompt)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"advice": advice})
}
