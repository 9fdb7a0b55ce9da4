package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pdd_helper_v1/internal/model"
	"pdd_helper_v1/internal/repository"
	"pdd_helper_v1/internal/service"
	"pdd_helper_v1/pkg/utils"
)

type ConfigController struct {
	configRepo repository.ConfigRepository
	oplog      *service.OpLogService
}

func NewConfigController(configRepo repository.ConfigRepository, oplog *service.OpLogService) *ConfigController {
	return &ConfigController{configRepo: configRepo, oplog: oplog}
}

// Get
// @Summary 读取全局配置
// @Description 返回当前配置文档，缺省字段已填充默认值
// @Tags Config (配置模块)
// @Produce json
// @Success 200 {object} model.ConfigDocument
// @Router /api/config [get]
func (ctrl *ConfigController) Get(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.configRepo.Get())
}

// Save
// @Summary 保存全局配置
// @Description 整文档覆盖保存；入库前做字段规整
// @Tags Config (配置模块)
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "ok + 规整后的配置"
// @Failure 400 {object} map[string]string "请求体不是合法 JSON"
// @Router /api/config [post]
func (ctrl *ConfigController) Save(c *gin.Context) {
	var doc model.ConfigDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体解析失败: " + err.Error()})
		return
	}

	// 1. 字段规整：去空白、补默认值、解析粘贴的网盘链接
	doc.ClientId = strings.TrimSpace(doc.ClientId)
	doc.ClientSecret = strings.TrimSpace(doc.ClientSecret)
	doc.RedirectUri = strings.TrimSpace(doc.RedirectUri)
	doc.AuthBase = strings.TrimSpace(doc.AuthBase)
	if doc.AuthBase == "" {
		doc.AuthBase = model.DefaultAuthBase
	}
	doc.GoodsId = strings.TrimSpace(doc.GoodsId)
	if doc.GoodsId == "" {
		doc.GoodsId = model.DefaultGoodsID
	}
	doc.DownloadRemoteRoot = utils.NormalizeRemoteRoot(doc.DownloadRemoteRoot)
	doc.BaiduCliPath = strings.TrimSpace(doc.BaiduCliPath)
	if doc.ProductGoodsMap == nil {
		doc.ProductGoodsMap = map[string]string{}
	}
	if doc.ProductGoodsMapByShop == nil {
		doc.ProductGoodsMapByShop = map[string]map[string]string{}
	}
	if doc.ProductTitleTagsByShop == nil {
		doc.ProductTitleTagsByShop = map[string]map[string][]string{}
	}

	// 2. 落盘
	if err := ctrl.configRepo.Save(doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "配置保存失败: " + err.Error()})
		return
	}
	ctrl.oplog.Info("配置已保存")
	c.JSON(http.StatusOK, gin.H{"ok": true, "config": doc})
}
