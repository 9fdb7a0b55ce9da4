package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"pdd_helper_v1/internal/controller"
	"pdd_helper_v1/internal/middleware"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	configCtl *controller.ConfigController,
	authCtl *controller.AuthController,
	scheduleCtl *controller.ScheduleController,
	statusCtl *controller.StatusController,
	loginCtl *controller.LoginController) {

	// 1. 授权回调在 /api 之外，由平台浏览器窗口直接访问
	r.GET("/auth/callback", authCtl.Callback)

	// 2. 登录事件 WebSocket
	r.GET("/ws/baidu/login", loginCtl.Stream)

	// 3. API 路由组
	api := r.Group("/api")
	{
		// config 配置
		// GET/POST /api/config
		api.GET("/config", configCtl.Get)
		api.POST("/config", configCtl.Save)

		// schedule 上传排期
		api.GET("/schedule", scheduleCtl.Get)
		api.POST("/schedule", scheduleCtl.Save)

		// auth 授权组
		auth := api.Group("/auth")
		{
			// GET /api/auth/url
			auth.GET("/url", authCtl.Login)
		}
		// POST /api/oauth/exchange
		api.POST("/oauth/exchange", authCtl.Exchange)
		api.GET("/tokens", authCtl.Tokens)
		api.POST("/tokens/clear", authCtl.ClearShop)

		// status 状态与日志
		api.GET("/status", statusCtl.Snapshot)
		api.GET("/logs", statusCtl.Logs)
		api.POST("/logs/clear", statusCtl.ClearLogs)

		// baidu 网盘
		baidu := api.Group("/baidu")
		{
			baidu.GET("/status", statusCtl.BaiduStatus)
			baidu.POST("/login/stop", loginCtl.Stop)
			baidu.GET("/login/active", loginCtl.Active)
			// 登出透传给流水线，由它持有 CLI 会话
			baidu.POST("/logout", statusCtl.Forward("/api/baidu/logout"))
		}

		// 流水线控制命令透传；手动触发的重操作带冷却
		cooldown := middleware.NewCommandCooldown()
		api.POST("/auto/start", statusCtl.Forward("/api/auto/start"))
		api.POST("/download/manual",
			cooldown.Guard(5*time.Second), statusCtl.Forward("/api/download/manual"))
		api.POST("/download/pause", statusCtl.Forward("/api/download/pause"))
		api.POST("/download/resume", statusCtl.Forward("/api/download/resume"))
		api.POST("/upload/scan",
			cooldown.Guard(5*time.Second), statusCtl.Forward("/api/upload/scan"))
		api.POST("/upload/pause", statusCtl.Forward("/api/upload/pause"))
		api.POST("/upload/resume", statusCtl.Forward("/api/upload/resume"))
		api.POST("/upload/reset", statusCtl.Forward("/api/upload/reset"))
	}
}
