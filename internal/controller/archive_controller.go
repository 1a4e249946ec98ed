package controller

import (
	"ai_tutor_backend/internal/service"
	"ai_tutor_backend/internal/util"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ArchiveController struct {
	Files         *service.FileStore
	ExportService *service.ExportService
}

func NewArchiveController(files *service.FileStore, exportService *service.ExportService) *ArchiveController {
	return &ArchiveController{
		Files:         files,
		ExportService: exportService,
	}
}

type SourceRequest struct {
	SourceNumber int `json:"sourcenumber" binding:"required,min=1,max=4"`
}

// Source godoc
// @Summary 学习资源下载
// @Description 按资源编号下载学生文件：1 聊天记录，2 错题本，3 学习建议，4 学习状态分数表(xlsx)
// @Tags 资源
// @Accept  json
// @Produce  octet-stream
// @Security ApiKeyAuth
// @Param   body body SourceRequest true "资源编号"
// @Success 200 {file} file "文件内容"
// @Failure 400 {object} util.Response "资源编号不合法"
// @Failure 404 {object} util.Response "资源不存在"
// @Router /api/source [post]
func (c *ArchiveController) Source(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if req.SourceNumber == 4 {
		buf, filename, err := c.ExportService.ExportScores(user.Name)
		if err != nil {
			util.FromError(ctx, err)
			return
		}
		ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
		return
	}

	var path string
	switch req.SourceNumber {
	case 1:
		path = c.Files.TranscriptPath(user.Name)
	case 2:
		path = c.Files.ProblemLogPath(user.Name)
	case 3:
		path = c.Files.AdvicePath(user.Name)
	}

	if _, err := os.Stat(path); err != nil {
		util.Error(ctx, http.StatusNotFound, "资源不存在")
		return
	}

	ctx.FileAttachment(path, filepath.Base(path))
}
