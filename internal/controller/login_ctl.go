package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"pdd_helper_v1/internal/service"
)

// upgrader 仅服务本机 UI，不做跨域校验
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type LoginController struct {
	supervisor *service.LoginSupervisor
	oplog      *service.OpLogService
}

func NewLoginController(supervisor *service.LoginSupervisor, oplog *service.OpLogService) *LoginController {
	return &LoginController{supervisor: supervisor, oplog: oplog}
}

// loginRequest WebSocket 首帧：登录参数
type loginRequest struct {
	CliPath string `json:"cliPath"`
	Bduss   string `json:"bduss"`
	Stoken  string `json:"stoken"`
}

// Stream
// @Summary 网盘登录事件通道
// @Description WebSocket：客户端发送一帧登录参数，服务端回送 start/line/end/error 事件流，终止事件后关闭连接
// @Tags Login (网盘登录模块)
// @Router /ws/baidu/login [get]
func (ctrl *LoginController) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 失败时 gorilla 已写好了 HTTP 错误响应
		return
	}
	defer conn.Close()

	// 1. 读取登录参数（首帧），限时防止挂死连接
	_ = conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	var req loginRequest
	if err := conn.ReadJSON(&req); err != nil {
		_ = conn.WriteJSON(gin.H{"type": "error", "message": "登录参数解析失败: " + err.Error()})
		return
	}
	_ = conn.SetReadDeadline(time.Time{})

	// 2. 发起登录并逐条转发事件；通道在终止事件后由监督器关闭
	events := ctrl.supervisor.StartLogin(req.CliPath, req.Bduss, req.Stoken)

	// 客户端断开时主动终止子进程，避免后台残留
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				ctrl.supervisor.StopLogin()
				for range events {
				}
				return
			}
		case <-done:
			ctrl.supervisor.StopLogin()
			// 继续排空事件通道，让监督器的收尾逻辑正常走完
			for range events {
			}
			return
		}
	}
}

// Stop
// @Summary 终止登录子进程
// @Description 幂等操作：无活跃会话时直接返回 ok
// @Tags Login (网盘登录模块)
// @Produce json
// @Router /api/baidu/login/stop [post]
func (ctrl *LoginController) Stop(c *gin.Context) {
	ctrl.supervisor.StopLogin()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Active
// @Summary 查询是否存在登录会话
// @Tags Login (网盘登录模块)
// @Produce json
// @Router /api/baidu/login/active [get]
func (ctrl *LoginController) Active(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"active": ctrl.supervisor.Active()})
}
