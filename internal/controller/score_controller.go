package controller

import (
	"ai_tutor_backend/internal/service"
	"ai_tutor_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type ScoreController struct {
	ScoreService *service.ScoreService
}

func NewScoreController(scoreService *service.ScoreService) *ScoreController {
	return &ScoreController{ScoreService: scoreService}
}

// Evaluation godoc
// @Summary 学习状态评估
// @Description 返回指定学生最近一次对话的学习状态分数
// @Tags 评估
// @Produce  json
// @Security ApiKeyAuth
// @Param   username path string true "学生用户名"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "暂无评估数据"
// @Router /api/evaluation/{username} [get]
func (c *ScoreController) Evaluation(ctx *gin.Context) {
	username := ctx.Param("username")
	if username == "" {
		util.BadRequest(ctx, "用户名不能为空")
		return
	}

	score, err := c.ScoreService.Latest(username)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"追问深度":  score.QuestionDepth,
		"反馈及时性": score.ResponseTimeliness,
		"修正主动性": score.CorrectionProactivity,
		"情感参与度": score.EmotionalEngagement,
		"综合评分":  score.TotalScore,
		"时间":    score.Timestamp.Format("2006-01-02 15:04:05"),
	})
}

// RecentActivity godoc
// @Summary 近 7 天提问统计
// @Description 按日期返回指定学生最近一周的提问次数
// @Tags 评估
// @Produce  json
// @Security ApiKeyAuth
// @Param   username path string true "学生用户名"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/recentlyask/{username} [post]
func (c *ScoreController) RecentActivity(ctx *gin.Context) {
	username := ctx.Param("username")
	if username == "" {
		util.BadRequest(ctx, "用户名不能为空")
		return
	}

	counts, err := c.ScoreService.RecentActivity(username, 7)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	// recent_stats 为按日期升序的数组，不能用 map 返回
	util.Success(ctx, gin.H{
		"username":     username,
		"recent_stats": counts,
	})
}

type FrequencyRequest struct {
	Username string `form:"username" binding:"required"`
	Start    string `form:"start" binding:"required"`
	End      string `form:"end" binding:"required"`
}

// Frequency godoc
// @Summary 提问频次报表
// @Description 统计某学生在指定时间段内的提问总次数
// @Tags 评估
// @Produce  json
// @Security ApiKeyAuth
// @Param   username query string true "学生用户名"
// @Param   start query string true "起始日期 2006-01-02"
// @Param   end query string true "结束日期 2006-01-02"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "时间段不合法"
// @Router /api/teacher/students/frequency [get]
func (c *ScoreController) Frequency(ctx *gin.Context) {
	var req FrequencyRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	start, err := time.ParseInLocation("2006-01-02", req.Start, time.Local)
	if err != nil {
		util.BadRequest(ctx, "起始日期格式错误，应为 2006-01-02")
		return
	}
	end, err := time.ParseInLocation("2006-01-02", req.End, time.Local)
	if err != nil {
		util.BadRequest(ctx, "结束日期格式错误，应为 2006-01-02")
		return
	}
	// 结束日期按整天计算
	end = end.Add(24*time.Hour - time.Second)

	count, err := c.ScoreService.Frequency(req.Username, start, end)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"username": req.Username,
		"start":    req.Start,
		"end":      req.End,
		"count":    count,
	})
}
