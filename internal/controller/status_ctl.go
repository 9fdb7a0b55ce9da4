package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pdd_helper_v1/internal/service"
)

type StatusController struct {
	statusService *service.StatusService
	pipeline      *service.PipelineClient
	oplog         *service.OpLogService
}

func NewStatusController(statusService *service.StatusService, pipeline *service.PipelineClient, oplog *service.OpLogService) *StatusController {
	return &StatusController{statusService: statusService, pipeline: pipeline, oplog: oplog}
}

// Snapshot
// @Summary 聚合状态快照
// @Description 返回轮询器最近一次成功拉取的各项状态；从未成功的项为 null
// @Tags Status (状态模块)
// @Produce json
// @Success 200 {object} model.StatusSnapshot
// @Router /api/status [get]
func (ctrl *StatusController) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.statusService.Snapshot())
}

// BaiduStatus
// @Summary 网盘 CLI 可用性
// @Description 从最近一次快照中取网盘状态；尚未轮询到时返回 null
// @Tags Status (状态模块)
// @Produce json
// @Router /api/baidu/status [get]
func (ctrl *StatusController) BaiduStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"baidu": ctrl.statusService.Snapshot().Baidu})
}

// Logs
// @Summary 最近操作日志
// @Tags Status (状态模块)
// @Produce json
// @Success 200 {object} map[string]interface{} "logs 按时间正序"
// @Router /api/logs [get]
func (ctrl *StatusController) Logs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"logs": ctrl.oplog.Tail(200)})
}

// ClearLogs
// @Summary 清空操作日志
// @Tags Status (状态模块)
// @Produce json
// @Router /api/logs/clear [post]
func (ctrl *StatusController) ClearLogs(c *gin.Context) {
	if err := ctrl.oplog.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "清空失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Forward 返回一个把控制命令原样透传给流水线的处理函数
// 流水线不可达或返回错误时统一回 502，错误描述带回给 UI
func (ctrl *StatusController) Forward(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]any
		// 请求体可选，透传命令大多没有参数
		_ = c.ShouldBindJSON(&body)
		out, err := ctrl.pipeline.Command(c.Request.Context(), path, body)
		if err != nil {
			ctrl.oplog.Error("流水线命令失败 " + path + ": " + err.Error())
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
