package model

import (
	"encoding/json"
	"testing"
)

func TestIdentifier_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantID   uint
		wantName string
		wantErr  bool
	}{
		{"数字", `42`, 42, "", false},
		{"数字字符串按ID处理", `"42"`, 42, "", false},
		{"用户名", `"小明"`, 0, "小明", false},
		{"null", `null`, 0, "", true},
		{"空字符串", `""`, 0, "", true},
		{"浮点数", `3.5`, 0, "", true},
		{"对象", `{"id": 1}`, 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id Identifier
			err := json.Unmarshal([]byte(tt.input), &id)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("输入 %s 应返回错误", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("输入 %s 解码失败: %v", tt.input, err)
			}
			if id.ID != tt.wantID || id.Name != tt.wantName {
				t.Errorf("输入 %s 期望 {ID:%d Name:%q}，实际 %+v", tt.input, tt.wantID, tt.wantName, id)
			}
		})
	}
}

func TestIdentifier_RoundTrip(t *testing.T) {
	payload, err := json.Marshal(ByID(7))
	if err != nil || string(payload) != "7" {
		t.Errorf("ID 形态应编码为数字: %s, %v", payload, err)
	}

	payload, err = json.Marshal(ByName("小明"))
	if err != nil || string(payload) != `"小明"` {
		t.Errorf("名字形态应编码为字符串: %s, %v", payload, err)
	}
}

func TestIdentifier_Predicates(t *testing.T) {
	if !ByID(1).IsID() || ByName("x").IsID() {
		t.Error("IsID 判断错误")
	}
	if !(Identifier{}).IsZero() {
		t.Error("零值应为 IsZero")
	}
	if ByID(7).String() != "7" || ByName("小明").String() != "小明" {
		t.Error("String 输出错误")
	}
}
