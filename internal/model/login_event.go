package model

// 登录事件类型
// 顺序约定：start -> line* -> 恰好一个终止事件 (end | error)
const (
	LoginEventStart = "start"
	LoginEventLine  = "line"
	LoginEventEnd   = "end"
	LoginEventError = "error"
)

// LoginEvent CLI 登录子进程的单条事件
// 通过 WebSocket 推送给 UI，终止事件之后不再有任何事件
type LoginEvent struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	Code    *int   `json:"code,omitempty"`
}

// Terminal 是否为终止事件
func (e LoginEvent) Terminal() bool {
	return e.Type == LoginEventEnd || e.Type == LoginEventError
}
