package task

import (
	"context"
	"fmt"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"pdd_helper_v1/internal/service"
)

// PollTask 流水线状态轮询任务
// 轮询是纯读操作，每轮独立超时，失败的项在下一轮自然重试
type PollTask struct {
	statusService *service.StatusService
	interval      time.Duration
	cron          *cron.Cron
}

func NewPollTask(statusService *service.StatusService, intervalSeconds int) *PollTask {
	if intervalSeconds <= 0 {
		intervalSeconds = 5
	}
	return &PollTask{
		statusService: statusService,
		interval:      time.Duration(intervalSeconds) * time.Second,
		cron:          cron.New(cron.WithSeconds()),
	}
}

// Start 启动轮询
func (t *PollTask) Start() {
	// 首次执行，让 UI 一打开就有数据
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), t.interval)
		defer cancel()
		t.statusService.Poll(ctx)
	}()

	spec := fmt.Sprintf("@every %s", t.interval)
	_, err := t.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), t.interval)
		defer cancel()
		t.statusService.Poll(ctx)
	})
	if err != nil {
		clog.Fatal("无法启动状态轮询任务", "err", err)
	}

	t.cron.Start()
	clog.Info("状态轮询任务已启动", "interval", t.interval)
}

// Stop 停止轮询
func (t *PollTask) Stop() {
	t.cron.Stop()
}
