package model

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// Identifier 学生/教师标识：数字 ID 或用户名二选一。
// 前端在两种形态间混用，这里在 JSON 边界统一解码，
// 之后由仓库层解析为唯一的账号行。
type Identifier struct {
	ID   uint
	Name string
}

func ByID(id uint) Identifier {
	return Identifier{ID: id}
}

func ByName(name string) Identifier {
	return Identifier{Name: name}
}

// IsID 标识是否为数字 ID 形态
func (i Identifier) IsID() bool {
	return i.ID != 0
}

func (i Identifier) IsZero() bool {
	return i.ID == 0 && i.Name == ""
}

func (i Identifier) String() string {
	if i.IsID() {
		return strconv.FormatUint(uint64(i.ID), 10)
	}
	return i.Name
}

// UnmarshalJSON 接受 JSON 数字或字符串。纯数字字符串按 ID 处理。
func (i *Identifier) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return errors.New("标识符不能为空")
	}

	if strings.HasPrefix(s, `"`) {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		if id, err := strconv.ParseUint(name, 10, 64); err == nil {
			*i = Identifier{ID: uint(id)}
			return nil
		}
		*i = Identifier{Name: name}
		return nil
	}

	var id uint64
	if err := json.Unmarshal(data, &id); err != nil {
		return errors.New("标识符必须是整数或字符串")
	}
	*i = Identifier{ID: uint(id)}
	return nil
}

func (i Identifier) MarshalJSON() ([]byte, error) {
	if i.IsID() {
		return json.Marshal(i.ID)
	}
	return json.Marshal(i.Name)
}
