package util

import (
	"errors"
	"fmt"
)

// ErrorKind 错误分类，请求边界据此映射 HTTP 状态码
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindGateway
	KindParse
	KindStorage
)

// AppError 携带分类的业务错误
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(message string) error {
	return &AppError{Kind: KindValidation, Message: message}
}

func NotFoundErr(message string) error {
	return &AppError{Kind: KindNotFound, Message: message}
}

func Gateway(message string, err error) error {
	return &AppError{Kind: KindGateway, Message: message, Err: err}
}

func Parse(message string, err error) error {
	return &AppError{Kind: KindParse, Message: message, Err: err}
}

func Storage(message string, err error) error {
	return &AppError{Kind: KindStorage, Message: message, Err: err}
}

// KindOf 取出错误分类，非 AppError 视为内部错误
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

var (
	ErrStudentNotFound = NotFoundErr("学生账号不存在")
	ErrTeacherNotFound = NotFoundErr("教师账号不存在")
	ErrNameRegistered  = Validation("用户名已存在，请选择其他用户名")
	ErrClassNotFound   = NotFoundErr("班级不存在")
	ErrNoEvaluation    = NotFoundErr("用户评估数据不存在")
	ErrProfileMissing  = Validation("您还没开始使用逆向学习问答助手！")
)
