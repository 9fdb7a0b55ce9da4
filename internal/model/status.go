package model

// 上传任务状态常量
const (
	TaskStatusProcessing = "processing"
	TaskStatusDone       = "done"
	TaskStatusFailed     = "failed"
	TaskStatusPaused     = "paused"
)

// UploadTask 流水线侧的单个上传任务
type UploadTask struct {
	Id        string `json:"id"`
	Shop      string `json:"shop"`
	Date      string `json:"date"` // yyyymmdd
	Filename  string `json:"filename"`
	RelPath   string `json:"rel_path,omitempty"`
	Product   string `json:"product,omitempty"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Vid       string `json:"vid,omitempty"`
	VideoId   string `json:"video_id,omitempty"`
	CoverUrl  string `json:"cover_url,omitempty"`
	StartedAt string `json:"started_at,omitempty"`
	EndedAt   string `json:"ended_at,omitempty"`
}

// UploadStatus GET /api/upload/status 响应
type UploadStatus struct {
	Tasks []UploadTask `json:"tasks"`
}

// PauseStatus 上传/下载可独立暂停
type PauseStatus struct {
	UploadPaused   bool `json:"uploadPaused"`
	DownloadPaused bool `json:"downloadPaused"`
}

// TodayStats 今日成功计数
type TodayStats struct {
	DownloadSuccess int `json:"downloadSuccess"`
	UploadSuccess   int `json:"uploadSuccess"`
}

// ProgressSlot 单方向进度
type ProgressSlot struct {
	Total   int    `json:"total"`
	Current int    `json:"current"`
	File    string `json:"file,omitempty"`
}

// ProgressState GET /api/progress 响应
type ProgressState struct {
	Download ProgressSlot `json:"download"`
	Upload   ProgressSlot `json:"upload"`
}

// AutoStatus 自动化执行状态
type AutoStatus struct {
	Running bool   `json:"running"`
	Enabled bool   `json:"enabled"`
	LastRun string `json:"lastRun,omitempty"`
}

// BaiduStatus 网盘 CLI 可用性与登录状态
// LoggedIn 为三态：真/假/未知(nil)
type BaiduStatus struct {
	Available bool   `json:"available"`
	LoggedIn  *bool  `json:"logged_in"`
	Message   string `json:"message,omitempty"`
}

// StatusSnapshot 轮询器聚合出的最近一次状态快照
// 某一项拉取失败时保留上一次的值（为 nil 表示从未成功）
type StatusSnapshot struct {
	Upload   *UploadStatus  `json:"upload,omitempty"`
	Pause    *PauseStatus   `json:"pause,omitempty"`
	Stats    *TodayStats    `json:"stats,omitempty"`
	Progress *ProgressState `json:"progress,omitempty"`
	Auto     *AutoStatus    `json:"auto,omitempty"`
	Baidu    *BaiduStatus   `json:"baidu,omitempty"`
	PolledAt string         `json:"polledAt,omitempty"`
}
