package service

import (
	"time"

	clog "github.com/charmbracelet/log"

	"pdd_helper_v1/internal/model"
	"pdd_helper_v1/internal/repository"
)

// OpLogService 操作日志服务
// 每条日志同时写入 sqlite 历史和进程控制台
type OpLogService struct {
	repo repository.OpLogRepository
}

// NewOpLogService 工厂方法
func NewOpLogService(repo repository.OpLogRepository) *OpLogService {
	return &OpLogService{repo: repo}
}

// Info 记录普通日志
func (s *OpLogService) Info(message string) {
	s.append(model.LogLevelInfo, message)
	clog.Info(message)
}

// Error 记录错误日志
func (s *OpLogService) Error(message string) {
	s.append(model.LogLevelError, message)
	clog.Error(message)
}

func (s *OpLogService) append(level, message string) {
	entry := &model.OpLog{
		Ts:      time.Now().Format("2006-01-02 15:04:05"),
		Level:   level,
		Message: message,
	}
	if err := s.repo.Append(entry); err != nil {
		clog.Warn("写入操作日志失败", "err", err)
	}
}

// Tail 返回最近 limit 条日志，按时间正序
func (s *OpLogService) Tail(limit int) []model.OpLog {
	entries, err := s.repo.Tail(limit)
	if err != nil {
		clog.Warn("读取操作日志失败", "err", err)
		return nil
	}
	return entries
}

// Clear 清空日志历史
func (s *OpLogService) Clear() error {
	return s.repo.Clear()
}
