package util

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"Validation", Validation("参数错误"), KindValidation},
		{"NotFound", NotFoundErr("不存在"), KindNotFound},
		{"Gateway", Gateway("网关失败", errors.New("timeout")), KindGateway},
		{"Parse", Parse("解析失败", nil), KindParse},
		{"Storage", Storage("写入失败", nil), KindStorage},
		{"普通错误视为内部错误", errors.New("boom"), KindInternal},
		{"包裹后仍可识别", fmt.Errorf("outer: %w", Validation("内层")), KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("期望 %v，实际 %v", tt.want, got)
			}
		})
	}
}

func TestAppError_MessageAndUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := Gateway("调用 AI 失败", inner)

	if !errors.Is(err, inner) {
		t.Error("AppError 应可 Unwrap 到底层错误")
	}
	if err.Error() != "调用 AI 失败: connection refused" {
		t.Errorf("错误消息格式错误: %q", err.Error())
	}

	bare := Validation("参数错误")
	if bare.Error() != "参数错误" {
		t.Errorf("无底层错误时只输出消息: %q", bare.Error())
	}
}
