package controller

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"pdd_helper_v1/internal/repository"
	"pdd_helper_v1/internal/service"
)

type AuthController struct {
	authService *service.AuthService
	tokenRepo   repository.TokenRepository
	oplog       *service.OpLogService
}

func NewAuthController(authService *service.AuthService, tokenRepo repository.TokenRepository, oplog *service.OpLogService) *AuthController {
	return &AuthController{authService: authService, tokenRepo: tokenRepo, oplog: oplog}
}

// Login
// @Summary 获取拼多多授权链接
// @Description 为店铺生成授权跳转链接并记录待校验 state；shop 为空时授权结果写入顶层
// @Tags Auth (授权模块)
// @Produce json
// @Param shop query string false "店铺名"
// @Success 200 {object} map[string]interface{} "auth_url + state"
// @Failure 400 {object} map[string]string "配置不完整"
// @Router /api/auth/url [get]
func (ctrl *AuthController) Login(c *gin.Context) {
	shop := c.Query("shop")
	authURL, state, err := ctrl.authService.BuildAuthorizationURL(c.Request.Context(), shop)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"auth_url": authURL,
		"state":    state,
		"shop":     shop,
	})
}

// Exchange
// @Summary 授权码换取令牌
// @Description 校验 state 后向平台换取令牌并入库
// @Tags Auth (授权模块)
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "ok + 店铺 + 令牌"
// @Failure 400 {object} map[string]string "缺少 code / state 校验失败 / 配置不完整"
// @Failure 502 {object} map[string]string "平台令牌端点拒绝"
// @Router /api/oauth/exchange [post]
func (ctrl *AuthController) Exchange(c *gin.Context) {
	var req struct {
		Shop  string `json:"shop"`
		Code  string `json:"code"`
		State string `json:"state"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体解析失败: " + err.Error()})
		return
	}
	rec, shop, err := ctrl.authService.Exchange(c.Request.Context(), req.Shop, req.Code, req.State)
	if err != nil {
		c.JSON(exchangeStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "shop": shop, "token": rec})
}

// exchangeStatus 把交换失败映射到 HTTP 状态码
// 操作者可修正的参数/配置问题是 400，平台侧拒绝是 502
func exchangeStatus(err error) int {
	var upstream *service.UpstreamTokenError
	if errors.As(err, &upstream) {
		return http.StatusBadGateway
	}
	return http.StatusBadRequest
}

// callbackPage 授权回调落地页
// 回调可能在独立浏览器窗口里打开，无论成败都渲染 HTML 而不是 JSON
var callbackPage = template.Must(template.New("callback").Parse(`<!doctype html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<title>授权结果</title>
<style>
body { font-family: system-ui, sans-serif; background: #f5f6f8; margin: 0; padding: 48px 16px; }
.card { max-width: 560px; margin: 0 auto; background: #fff; border-radius: 8px; padding: 24px 28px; box-shadow: 0 1px 4px rgba(0,0,0,.08); }
h1 { font-size: 18px; margin: 0 0 12px; }
.ok { color: #18794e; }
.err { color: #b42318; }
pre { background: #f0f1f3; border-radius: 6px; padding: 12px; overflow: auto; font-size: 13px; }
a { color: #2563eb; }
</style>
</head>
<body>
<div class="card">
<h1 class="{{if .Ok}}ok{{else}}err{{end}}">{{.Title}}</h1>
<p>{{.Message}}</p>
{{if .Detail}}<pre>{{.Detail}}</pre>{{end}}
<p><a href="/">返回配置页</a></p>
</div>
</body>
</html>
`))

type callbackView struct {
	Ok      bool
	Title   string
	Message string
	Detail  string
}

// Callback
// @Summary 授权回调落地页
// @Description 接收平台回跳的 code/state，换取令牌并渲染结果页面
// @Tags Auth (授权模块)
// @Produce html
// @Param code query string true "授权码"
// @Param state query string false "安全校验码"
// @Param shop query string false "店铺名"
// @Router /auth/callback [get]
func (ctrl *AuthController) Callback(c *gin.Context) {
	view := callbackView{Title: "授权结果"}

	if errParam := c.Query("error"); errParam != "" {
		view.Title = "授权被拒绝"
		view.Message = "平台返回了错误，请重新发起授权。"
		view.Detail = errParam
		ctrl.renderCallback(c, view)
		return
	}

	rec, shop, err := ctrl.authService.Exchange(c.Request.Context(), c.Query("shop"), c.Query("code"), c.Query("state"))
	if err != nil {
		view.Title = "授权失败"
		view.Message = err.Error()
		ctrl.renderCallback(c, view)
		return
	}

	view.Ok = true
	view.Title = "授权成功"
	if shop != "" {
		view.Message = "令牌已写入店铺：" + shop
	} else {
		view.Message = "令牌已写入。"
	}
	if payload, err := json.MarshalIndent(rec, "", "  "); err == nil {
		view.Detail = string(payload)
	}
	ctrl.renderCallback(c, view)
}

func (ctrl *AuthController) renderCallback(c *gin.Context, view callbackView) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := callbackPage.Execute(c.Writer, view); err != nil {
		ctrl.oplog.Error("回调页面渲染失败: " + err.Error())
	}
}

// Tokens
// @Summary 查看令牌存储
// @Tags Auth (授权模块)
// @Produce json
// @Success 200 {object} model.TokenStore
// @Router /api/tokens [get]
func (ctrl *AuthController) Tokens(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.tokenRepo.Load())
}

// ClearShop
// @Summary 清除单店铺授权
// @Description 只清除指定店铺的令牌与 state，其余店铺不受影响
// @Tags Auth (授权模块)
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "缺少 shop"
// @Router /api/tokens/clear [post]
func (ctrl *AuthController) ClearShop(c *gin.Context) {
	var req struct {
		Shop string `json:"shop"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Shop == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 shop 参数"})
		return
	}
	if err := ctrl.tokenRepo.ClearShop(req.Shop); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "清除失败: " + err.Error()})
		return
	}
	ctrl.oplog.Info("已清除店铺授权：" + req.Shop)
	c.JSON(http.StatusOK, gin.H{"ok": true, "shop": req.Shop})
}
