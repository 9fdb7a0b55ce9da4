package utils

import (
	"net/url"
	"regexp"
	"strings"
)

var remotePathRe = regexp.MustCompile(`(?:[?#&]|^)path=([^&#]+)`)

// NormalizeRemoteRoot 规整用户粘贴的网盘远端根目录
// 允许直接粘贴 pan.baidu.com 的分享/目录链接，从 path= 参数中提取真实路径
func NormalizeRemoteRoot(value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return ""
	}
	if strings.Contains(raw, "pan.baidu.com") || strings.Contains(raw, "path=") {
		if m := remotePathRe.FindStringSubmatch(raw); m != nil {
			if decoded, err := url.QueryUnescape(m[1]); err == nil {
				raw = decoded
			} else {
				raw = m[1]
			}
		} else if parsed, err := url.Parse(raw); err == nil && parsed.Path != "" && parsed.Path != "/" {
			raw = parsed.Path
		}
	}
	if raw != "" && !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return raw
}
