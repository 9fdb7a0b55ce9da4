package model

// 日志级别
const (
	LogLevelInfo  = "info"
	LogLevelError = "error"
)

// OpLog 操作日志条目，持久化到 sqlite
type OpLog struct {
	ID      uint   `gorm:"primaryKey" json:"-"`
	Ts      string `gorm:"size:32;index" json:"ts"` // "2006-01-02 15:04:05"
	Level   string `gorm:"size:16" json:"level"`
	Message string `gorm:"type:text" json:"message"`
}

func (OpLog) TableName() string { return "op_logs" }
