package util

import (
	"ai_tutor_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

// FromError 按错误分类映射状态码。网关/解析/存储错误属于服务端错误，
// 细节记入日志，消息原样返回给调用方。
func FromError(c *gin.Context, err error) {
	switch KindOf(err) {
	case KindValidation:
		Error(c, http.StatusBadRequest, err.Error())
	case KindNotFound:
		Error(c, http.StatusNotFound, err.Error())
	case KindGateway, KindParse, KindStorage:
		logger.Log.Error("request failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, err.Error())
	default:
		logger.Log.Error("internal server error", zap.Error(err))
		InternalServerError(c)
	}
}
