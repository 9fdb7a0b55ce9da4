package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"pdd_helper_v1/internal/model"
)

// PipelineClient 视频下载/上传流水线服务的 HTTP 客户端
// 流水线对本系统而言是外部协作方，所有接口都按
// 2xx+JSON / 非 2xx+{error} 的约定处理
type PipelineClient struct {
	client  *resty.Client
	baseURL string
}

// NewPipelineClient 工厂方法
func NewPipelineClient(baseURL string) *PipelineClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)
	return &PipelineClient{client: client, baseURL: baseURL}
}

// getJSON 通用 GET；非 2xx 一律视为该项失败
// 流水线不保证带 Content-Type，统一按响应体手动解码
func (p *PipelineClient) getJSON(ctx context.Context, path string, out any) error {
	resp, err := p.client.R().SetContext(ctx).Get(path)
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("GET %s: HTTP %d", path, resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("GET %s: 响应解析失败: %w", path, err)
	}
	return nil
}

func (p *PipelineClient) UploadStatus(ctx context.Context) (*model.UploadStatus, error) {
	var out model.UploadStatus
	if err := p.getJSON(ctx, "/api/upload/status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *PipelineClient) PauseStatus(ctx context.Context) (*model.PauseStatus, error) {
	var out model.PauseStatus
	if err := p.getJSON(ctx, "/api/pause/status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *PipelineClient) Progress(ctx context.Context) (*model.ProgressState, error) {
	var out model.ProgressState
	if err := p.getJSON(ctx, "/api/progress", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *PipelineClient) TodayStats(ctx context.Context) (*model.TodayStats, error) {
	var out model.TodayStats
	if err := p.getJSON(ctx, "/api/stats/today", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *PipelineClient) AutoStatus(ctx context.Context) (*model.AutoStatus, error) {
	var out model.AutoStatus
	if err := p.getJSON(ctx, "/api/auto/status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *PipelineClient) BaiduStatus(ctx context.Context) (*model.BaiduStatus, error) {
	var out model.BaiduStatus
	if err := p.getJSON(ctx, "/api/baidu/status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Command 透传一条控制命令（暂停/恢复/手动触发等）
// 返回流水线的原始 JSON；非 2xx 时把 {error} 中的描述带回
func (p *PipelineClient) Command(ctx context.Context, path string, body any) (map[string]any, error) {
	req := p.client.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Post(path)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	_ = json.Unmarshal(resp.Body(), &out)
	if !resp.IsSuccess() {
		if msg, ok := out["error"].(string); ok && msg != "" {
			return out, fmt.Errorf("%s", msg)
		}
		return out, fmt.Errorf("POST %s: HTTP %d", path, resp.StatusCode())
	}
	if out == nil {
		out = map[string]any{"ok": true}
	}
	return out, nil
}
