package controller

import (
	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/internal/service"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// stubScoreReader 只为控制返回序列，其余方法不会被调用
type stubScoreReader struct {
	counts []model.DailyCount
}

func (s *stubScoreReader) FindLatestByStudent(name string) (*model.ConversationScore, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubScoreReader) CountByDateSince(name string, since time.Time) ([]model.DailyCount, error) {
	return s.counts, nil
}

func (s *stubScoreReader) CountBetween(name string, start, end time.Time) (int64, error) {
	return 0, nil
}

func (s *stubScoreReader) FindAllByStudent(name string) ([]model.ConversationScore, error) {
	return nil, nil
}

func TestRecentActivity_ReturnsOrderedArray(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reader := &stubScoreReader{counts: []model.DailyCount{
		{Date: "2026-08-25", Count: 3},
		{Date: "2026-08-26", Count: 1},
		{Date: "2026-08-28", Count: 2},
	}}
	c := NewScoreController(service.NewScoreService(reader))

	router := gin.New()
	router.POST("/api/recentlyask/:username", c.RecentActivity)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/recentlyask/小明", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望状态码 200，实际 %d", w.Code)
	}
	// recent_stats 必须是数组，不能是按日期键的对象
	if !strings.Contains(w.Body.String(), `"recent_stats":[`) {
		t.Fatalf("recent_stats 应为 JSON 数组: %s", w.Body.String())
	}

	var resp struct {
		Data struct {
			Username    string             `json:"username"`
			RecentStats []model.DailyCount `json:"recent_stats"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应解析失败: %v", err)
	}
	if resp.Data.Username != "小明" {
		t.Errorf("期望用户名 小明，实际 %s", resp.Data.Username)
	}
	if len(resp.Data.RecentStats) != 3 {
		t.Fatalf("期望 3 条统计，实际 %d", len(resp.Data.RecentStats))
	}
	for i := 1; i < len(resp.Data.RecentStats); i++ {
		if resp.Data.RecentStats[i-1].Date >= resp.Data.RecentStats[i].Date {
			t.Errorf("日期应升序: %s 在 %s 之前", resp.Data.RecentStats[i-1].Date, resp.Data.RecentStats[i].Date)
		}
	}
	if resp.Data.RecentStats[0].Count != 3 || resp.Data.RecentStats[2].Count != 2 {
		t.Errorf("统计次数与输入不一致: %+v", resp.Data.RecentStats)
	}
}
