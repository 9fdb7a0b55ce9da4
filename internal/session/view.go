package session

import (
	"strings"

	"pdd_helper_v1/internal/model"
)

// TaskPageSize 任务表固定页大小
const TaskPageSize = 15

// TaskPage 任务表的一页
type TaskPage struct {
	Items      []model.UploadTask
	Page       int
	TotalPages int
}

// PageTasks 渲染任务表分页
// 过滤到 today（yyyymmdd，date 为空的旧记录保留），倒序排列最新在前
func PageTasks(tasks []model.UploadTask, today string, page int) TaskPage {
	var filtered []model.UploadTask
	for _, t := range tasks {
		if t.Date == "" || t.Date == today {
			filtered = append(filtered, t)
		}
	}
	// 倒序：最新的任务显示在最前
	for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	}

	totalPages := (len(filtered) + TaskPageSize - 1) / TaskPageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * TaskPageSize
	end := start + TaskPageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return TaskPage{Items: filtered[start:end], Page: page, TotalPages: totalPages}
}

// FilterLogsByDay 按天过滤日志；day 为空表示全部
// day 形如 "2006-01-02"，与日志条目的 ts 前缀比对
func FilterLogsByDay(entries []model.OpLog, day string) []model.OpLog {
	if day == "" {
		return entries
	}
	var out []model.OpLog
	for _, e := range entries {
		if strings.HasPrefix(e.Ts, day) {
			out = append(out, e)
		}
	}
	return out
}

// ==================== 指示灯与徽标 ====================

// Indicator 外部工具可用性三态指示
type Indicator int

const (
	IndicatorUnknown Indicator = iota
	IndicatorOK
	IndicatorBad
)

// BaiduIndicator 网盘 CLI 状态 -> 指示灯 + 文案
func BaiduIndicator(st *model.BaiduStatus) (Indicator, string) {
	if st == nil {
		return IndicatorBad, "异常"
	}
	if !st.Available {
		return IndicatorBad, "不可用"
	}
	if st.LoggedIn == nil {
		return IndicatorUnknown, "未检查"
	}
	if *st.LoggedIn {
		return IndicatorOK, "已登录"
	}
	return IndicatorBad, "未登录"
}

// TaskBadge 任务状态 -> 徽标样式 + 文案
func TaskBadge(status string) (string, string) {
	switch status {
	case model.TaskStatusDone:
		return "badge success", "成功"
	case model.TaskStatusFailed:
		return "badge failed", "失败"
	case model.TaskStatusProcessing:
		return "badge processing", "进行中"
	case model.TaskStatusPaused:
		return "badge", "已暂停"
	default:
		return "badge", status
	}
}
