package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdd_helper_v1/internal/model"
)

func TestConfigGetReturnsDefaults(t *testing.T) {
	env := newCtlTestEnv(t)

	w := env.do(http.MethodGet, "/api/config", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cfg model.ConfigDocument
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, model.DefaultAuthBase, cfg.AuthBase)
	assert.Equal(t, model.DefaultGoodsID, cfg.GoodsId)
	assert.True(t, cfg.RequireAuth)
}

func TestConfigSaveSanitizes(t *testing.T) {
	env := newCtlTestEnv(t)

	w := env.do(http.MethodPost, "/api/config", map[string]any{
		"clientId": "  cid  ",
		"goodsId":  "",
		// 粘贴的网盘链接，应提取 path= 参数
		"downloadRemoteRoot": "https://pan.baidu.com/disk/main#/index?category=all&path=%2F素材%2F八月",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	saved := env.configRepo.Get()
	assert.Equal(t, "cid", saved.ClientId)
	assert.Equal(t, model.DefaultGoodsID, saved.GoodsId)
	assert.Equal(t, "/素材/八月", saved.DownloadRemoteRoot)
}

func TestConfigSaveRejectsBadJSON(t *testing.T) {
	env := newCtlTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/config", strings.NewReader("{残缺"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleSaveFillsSafeValues(t *testing.T) {
	env := newCtlTestEnv(t)

	w := env.do(http.MethodPost, "/api/schedule", map[string]any{
		"shops": map[string]any{
			"店A": map[string]any{
				"start_time":       "",
				"interval_seconds": -5,
				"daily_limit":      0,
				"enabled":          true,
			},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Schedule model.ScheduleDocument `json:"schedule"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	shop := resp.Schedule.Shops["店A"]
	assert.Equal(t, "09:00", shop.StartTime)
	assert.Equal(t, 300, shop.IntervalSeconds)
	assert.Equal(t, 50, shop.DailyLimit)
	assert.Equal(t, model.DefaultTimeZone, resp.Schedule.TimeZone)
}

func TestScheduleRoundTripViaAPI(t *testing.T) {
	env := newCtlTestEnv(t)

	w := env.do(http.MethodPost, "/api/schedule", map[string]any{
		"shops": map[string]any{
			"店B": map[string]any{
				"start_time":       "10:30",
				"interval_seconds": 120,
				"daily_limit":      5,
				"enabled":          true,
			},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	got := env.do(http.MethodGet, "/api/schedule", nil)
	var doc model.ScheduleDocument
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &doc))
	assert.Equal(t, "10:30", doc.Shops["店B"].StartTime)
}
