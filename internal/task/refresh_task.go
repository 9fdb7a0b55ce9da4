package task

import (
	"context"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"pdd_helper_v1/internal/service"
)

// RefreshTask 令牌保活任务
// 启动时先跑一次，之后每分钟扫描一轮；单个凭据是否到期由服务层判断
type RefreshTask struct {
	authService *service.AuthService
	cron        *cron.Cron
}

func NewRefreshTask(authService *service.AuthService) *RefreshTask {
	return &RefreshTask{
		authService: authService,
		cron:        cron.New(cron.WithSeconds()), // 支持秒级控制
	}
}

// Start 启动定时任务
func (t *RefreshTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.authService.RefreshDueTokens(ctx)
	}()

	// 每分钟整点扫描一轮
	_, err := t.cron.AddFunc("0 * * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.authService.RefreshDueTokens(ctx)
	})
	if err != nil {
		clog.Fatal("无法启动令牌保活任务", "err", err)
	}

	t.cron.Start()
	clog.Info("令牌保活任务已启动 (每分钟扫描一次)")
}

// Stop 停止定时任务，不等待进行中的一轮
func (t *RefreshTask) Stop() {
	t.cron.Stop()
}
