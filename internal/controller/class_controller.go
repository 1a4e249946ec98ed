package controller

import (
	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/internal/service"
	"ai_tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ClassController struct {
	ClassService *service.ClassService
	AuthService  *service.AuthService
}

func NewClassController(classService *service.ClassService, authService *service.AuthService) *ClassController {
	return &ClassController{
		ClassService: classService,
		AuthService:  authService,
	}
}

type CreateClassRequest struct {
	ClassName string           `json:"classname" binding:"required"`
	Student   model.Identifier `json:"student" binding:"required"`
}

// CreateOrAdd godoc
// @Summary 创建班级或添加学生
// @Description 班级不存在时创建并加入首个学生，已存在时追加学生，重复添加视为成功
// @Tags 班级
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateClassRequest true "班级名与学生标识（ID 或用户名）"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "学生不存在"
// @Router /api/teacher/classes [post]
func (c *ClassController) CreateOrAdd(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ClassService.CreateOrAdd(user.UserID, req.ClassName, req.Student); err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "添加成功"})
}

// Details godoc
// @Summary 查看班级详情
// @Description 返回班级的教师与学生名单
// @Tags 班级
// @Produce  json
// @Security ApiKeyAuth
// @Param   classname path string true "班级名"
// @Success 200 {object} util.Response{data=model.ClassDetail} "成功"
// @Failure 404 {object} util.Response "班级不存在"
// @Router /api/teacher/classes/{classname} [get]
func (c *ClassController) Details(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	detail, err := c.ClassService.Details(user.UserID, ctx.Param("classname"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// Dissolve godoc
// @Summary 解散班级
// @Description 删除班级全部成员记录
// @Tags 班级
// @Produce  json
// @Security ApiKeyAuth
// @Param   classname path string true "班级名"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "班级不存在"
// @Router /api/teacher/classes/{classname} [delete]
func (c *ClassController) Dissolve(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	deleted, err := c.ClassService.Dissolve(user.UserID, ctx.Param("classname"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "班级已解散", "removed": deleted})
}

type KickRequest struct {
	Student model.Identifier `json:"student" binding:"required"`
}

// Kick godoc
// @Summary 移除班级学生
// @Description 从班级中移除指定学生
// @Tags 班级
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   classname path string true "班级名"
// @Param   body body KickRequest true "学生标识（ID 或用户名）"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "该学生不在班级中"
// @Router /api/teacher/classes/{classname}/students [delete]
func (c *ClassController) Kick(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req KickRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ClassService.Kick(user.UserID, ctx.Param("classname"), req.Student); err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "移除成功"})
}

type BulkAddRequest struct {
	StudentIDs []uint `json:"student_ids" binding:"required,min=1"`
}

// BulkAdd godoc
// @Summary 批量添加班级学生
// @Tags 班级
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   classname path string true "班级名"
// @Param   body body BulkAddRequest true "学生ID列表"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "学生不存在"
// @Router /api/teacher/classes/{classname}/students [post]
func (c *ClassController) BulkAdd(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req BulkAddRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ClassService.BulkAdd(user.UserID, ctx.Param("classname"), req.StudentIDs); err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "批量添加成功"})
}

type JoinClassRequest struct {
	Teacher   model.Identifier `json:"teacher" binding:"required"`
	ClassName string           `json:"classname" binding:"required"`
}

// Join godoc
// @Summary 学生加入班级
// @Description 学生按教师标识与班级名加入已存在的班级
// @Tags 班级
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body JoinClassRequest true "教师标识与班级名"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "班级不存在"
// @Router /api/classes/join [post]
func (c *ClassController) Join(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req JoinClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ClassService.Join(req.Teacher, req.ClassName, user.UserID); err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "加入成功"})
}

type ImportRequest struct {
	Role     string                  `json:"role" binding:"required,oneof=student teacher"`
	Accounts []service.ImportAccount `json:"accounts" binding:"required,min=1,dive"`
}

// Import godoc
// @Summary 批量导入账号
// @Description 按角色批量创建学生或教师账号
// @Tags 班级
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ImportRequest true "角色与账号列表"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/teacher/import [post]
func (c *ClassController) Import(ctx *gin.Context) {
	var req ImportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AuthService.BulkImport(model.Role(req.Role), req.Accounts); err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"imported": len(req.Accounts)})
}
