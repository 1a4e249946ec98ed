package util

import (
	"testing"
	"time"

	"ai_tutor_backend/internal/model"
)

const testSecret = "test-secret-key-for-unit-testing-2026"

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(7, "小明", model.RoleStudent, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT 应成功: %v", err)
	}

	claims, err := ParseJWT(token, testSecret)
	if err != nil {
		t.Fatalf("ParseJWT 应成功: %v", err)
	}
	if claims.UserID != 7 || claims.Name != "小明" || claims.Role != model.RoleStudent {
		t.Errorf("载荷错误: %+v", claims)
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, _ := GenerateJWT(7, "小明", model.RoleStudent, testSecret, time.Hour)

	if _, err := ParseJWT(token, "another-secret"); err == nil {
		t.Error("错误密钥应解析失败")
	}
}

func TestParseJWT_Expired(t *testing.T) {
	token, _ := GenerateJWT(7, "小明", model.RoleStudent, testSecret, -time.Minute)

	if _, err := ParseJWT(token, testSecret); err == nil {
		t.Error("过期 Token 应解析失败")
	}
}
