package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== CommandCooldown 命令冷却 ====================

// CommandCooldown 手动命令冷却器
// 手动触发的下载/扫描是重操作，防止操作者连点按钮把流水线打挂
type CommandCooldown struct {
	entries sync.Map // path -> *cooldownEntry
}

type cooldownEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// NewCommandCooldown 工厂方法
func NewCommandCooldown() *CommandCooldown {
	return &CommandCooldown{}
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查并占用一次执行机会
func (c *CommandCooldown) Check(key string, interval time.Duration) CheckResult {
	actual, _ := c.entries.LoadOrStore(key, &cooldownEntry{})
	entry := actual.(*cooldownEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)
	if elapsed < interval {
		return CheckResult{Allowed: false, RetryAfter: interval - elapsed}
	}
	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// Reset 清除某个命令的冷却（测试用）
func (c *CommandCooldown) Reset(key string) {
	c.entries.Delete(key)
}

// ==================== Gin 中间件 ====================

// Guard 为某条路由加冷却；冷却期内返回 429
func (c *CommandCooldown) Guard(interval time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result := c.Check(ctx.FullPath(), interval)
		if !result.Allowed {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("操作太频繁，请 %.0f 秒后再试", result.RetryAfter.Seconds()),
			})
			return
		}
		ctx.Next()
	}
}
