package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pdd_helper_v1/internal/model"
	"pdd_helper_v1/internal/repository"
	"pdd_helper_v1/internal/service"
)

type ScheduleController struct {
	scheduleRepo repository.ScheduleRepository
	oplog        *service.OpLogService
}

func NewScheduleController(scheduleRepo repository.ScheduleRepository, oplog *service.OpLogService) *ScheduleController {
	return &ScheduleController{scheduleRepo: scheduleRepo, oplog: oplog}
}

// Get
// @Summary 读取上传排期
// @Tags Schedule (排期模块)
// @Produce json
// @Success 200 {object} model.ScheduleDocument
// @Router /api/schedule [get]
func (ctrl *ScheduleController) Get(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.scheduleRepo.Get())
}

// Save
// @Summary 保存上传排期
// @Description 整文档覆盖保存；店铺条目首次保存时创建，与授权状态相互独立
// @Tags Schedule (排期模块)
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "ok + 规整后的排期"
// @Failure 400 {object} map[string]string "请求体不是合法 JSON"
// @Router /api/schedule [post]
func (ctrl *ScheduleController) Save(c *gin.Context) {
	var doc model.ScheduleDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体解析失败: " + err.Error()})
		return
	}
	if doc.Shops == nil {
		doc.Shops = map[string]model.ShopSchedule{}
	}
	for name, shop := range doc.Shops {
		// 非法的间隔/上限回退到安全值
		if shop.IntervalSeconds <= 0 {
			shop.IntervalSeconds = 300
		}
		if shop.DailyLimit <= 0 {
			shop.DailyLimit = 50
		}
		shop.StartTime = strings.TrimSpace(shop.StartTime)
		if shop.StartTime == "" {
			shop.StartTime = "09:00"
		}
		doc.Shops[name] = shop
	}
	if doc.TimeZone == "" {
		doc.TimeZone = model.DefaultTimeZone
	}
	if doc.VideoRoot == "" {
		doc.VideoRoot = "video"
	}

	if err := ctrl.scheduleRepo.Save(doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "排期保存失败: " + err.Error()})
		return
	}
	ctrl.oplog.Info("上传计划已保存")
	c.JSON(http.StatusOK, gin.H{"ok": true, "schedule": doc})
}
