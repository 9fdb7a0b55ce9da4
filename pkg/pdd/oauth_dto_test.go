package pdd

import (
	"strings"
	"testing"
)

func TestTokenRespValidate(t *testing.T) {
	ok := TokenResp{AccessToken: "acc"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("正常响应不应报错: %v", err)
	}

	missing := TokenResp{}
	if err := missing.Validate(); err == nil || !strings.Contains(err.Error(), "access_token") {
		t.Fatalf("缺 access_token 应报错: %v", err)
	}

	oauthErr := TokenResp{Error: "invalid_grant", ErrorDescription: "code 已过期"}
	if err := oauthErr.Validate(); err == nil || err.Error() != "code 已过期" {
		t.Fatalf("应透传 error_description: %v", err)
	}

	gatewayErr := TokenResp{ErrorResponse: &ErrorResp{ErrorCode: 10019, ErrorMsg: "签名错误"}}
	if err := gatewayErr.Validate(); err == nil || err.Error() != "10019:签名错误" {
		t.Fatalf("网关错误格式不符: %v", err)
	}
}
