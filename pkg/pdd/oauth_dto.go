package pdd

import (
	"errors"
	"fmt"
)

// ==========================================
// DTO: 拼多多开放平台 OAuth 接口的原始 JSON 结构
// ==========================================

// TokenURL 换取/刷新令牌端点
const TokenURL = "https://open-api.pinduoduo.com/oauth/token"

// TokenReq POST /oauth/token 请求体 (JSON)
type TokenReq struct {
	ClientId     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	GrantType    string `json:"grant_type"`
	Code         string `json:"code,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	RedirectUri  string `json:"redirect_uri,omitempty"`
}

// ErrorResp 网关通用错误响应体
type ErrorResp struct {
	ErrorCode int64  `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
	RequestId string `json:"request_id,omitempty"`
}

// TokenResp POST /oauth/token 响应
// 注意：平台在 HTTP 200 下也可能返回 error_response
type TokenResp struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	OwnerName    string `json:"owner_name"`
	OwnerId      string `json:"owner_id"`

	Error            string     `json:"error,omitempty"`
	ErrorDescription string     `json:"error_description,omitempty"`
	ErrorResponse    *ErrorResp `json:"error_response,omitempty"`
}

// Validate 检查响应是否为可用的令牌
// 错误信息按平台原文透传，供上层包装后展示给操作者
func (r *TokenResp) Validate() error {
	if r.ErrorResponse != nil {
		return fmt.Errorf("%d:%s", r.ErrorResponse.ErrorCode, r.ErrorResponse.ErrorMsg)
	}
	if r.Error != "" {
		if r.ErrorDescription != "" {
			return errors.New(r.ErrorDescription)
		}
		return errors.New(r.Error)
	}
	if r.AccessToken == "" {
		return errors.New("token 响应缺少 access_token")
	}
	return nil
}
