package service

import "errors"

// ==================== 错误定义 ====================
// 这些错误都不致命：操作失败原样报告给调用方，已落盘的状态不受影响

// ErrMissingCode 回调缺少授权 code
var ErrMissingCode = errors.New("缺少授权 code，无法交换访问令牌。")

// ConfigurationError 缺少必要配置，操作者可自行修正
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// StateMismatchError 授权 state 校验失败（防 CSRF），需要重新发起授权
type StateMismatchError struct {
	Shop string
}

func (e *StateMismatchError) Error() string { return "state 校验失败，请重新发起授权。" }

// UpstreamTokenError 平台令牌端点拒绝了请求，错误描述原样透传
type UpstreamTokenError struct {
	Description string
}

func (e *UpstreamTokenError) Error() string { return e.Description }

// ExecutableNotFoundError 未能定位网盘 CLI 可执行文件
type ExecutableNotFoundError struct {
	Custom string
}

func (e *ExecutableNotFoundError) Error() string {
	return "未找到 BaiduPCS-Go，可在配置中指定路径"
}

// SubprocessError 登录子进程启动失败，进程视为从未启动
type SubprocessError struct {
	Err error
}

func (e *SubprocessError) Error() string { return "登录进程启动失败: " + e.Err.Error() }

func (e *SubprocessError) Unwrap() error { return e.Err }
