package service

import (
	"context"
	"sync"
	"time"

	"pdd_helper_v1/internal/model"
)

// StatusService 状态轮询聚合器
// 周期性对流水线的只读接口做一轮 best-effort 拉取：
// 各项互相独立，某一项失败只跳过该项，保留上一次的值。
// 轮询是纯读操作，重叠执行是幂等的，不做合并或去重。
type StatusService struct {
	pipeline *PipelineClient

	mu       sync.RWMutex
	snapshot model.StatusSnapshot
}

// NewStatusService 工厂方法
func NewStatusService(pipeline *PipelineClient) *StatusService {
	return &StatusService{pipeline: pipeline}
}

// Poll 执行一轮拉取并合并进快照
func (s *StatusService) Poll(ctx context.Context) {
	var (
		wg       sync.WaitGroup
		upload   *model.UploadStatus
		pause    *model.PauseStatus
		stats    *model.TodayStats
		progress *model.ProgressState
		auto     *model.AutoStatus
		baidu    *model.BaiduStatus
	)
	wg.Add(6)
	go func() { defer wg.Done(); upload, _ = s.pipeline.UploadStatus(ctx) }()
	go func() { defer wg.Done(); pause, _ = s.pipeline.PauseStatus(ctx) }()
	go func() { defer wg.Done(); stats, _ = s.pipeline.TodayStats(ctx) }()
	go func() { defer wg.Done(); progress, _ = s.pipeline.Progress(ctx) }()
	go func() { defer wg.Done(); auto, _ = s.pipeline.AutoStatus(ctx) }()
	go func() { defer wg.Done(); baidu, _ = s.pipeline.BaiduStatus(ctx) }()
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if upload != nil {
		s.snapshot.Upload = upload
	}
	if pause != nil {
		s.snapshot.Pause = pause
	}
	if stats != nil {
		s.snapshot.Stats = stats
	}
	if progress != nil {
		s.snapshot.Progress = progress
	}
	if auto != nil {
		s.snapshot.Auto = auto
	}
	if baidu != nil {
		s.snapshot.Baidu = baidu
	}
	s.snapshot.PolledAt = time.Now().Format("2006-01-02 15:04:05")
}

// Snapshot 返回最近一次快照的拷贝
func (s *StatusService) Snapshot() model.StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
