package repository

import (
	"gorm.io/gorm"

	"pdd_helper_v1/internal/model"
)

// ==================== 接口定义 ====================

// OpLogRepository 操作日志仓储
type OpLogRepository interface {
	Append(entry *model.OpLog) error
	// Tail 返回最近 limit 条，按时间正序
	Tail(limit int) ([]model.OpLog, error)
	Clear() error
}

// ==================== 仓储实现 ====================

type opLogRepo struct {
	db *gorm.DB
}

// NewOpLogRepository 创建操作日志仓储
func NewOpLogRepository(db *gorm.DB) OpLogRepository {
	return &opLogRepo{db: db}
}

func (r *opLogRepo) Append(entry *model.OpLog) error {
	return r.db.Create(entry).Error
}

func (r *opLogRepo) Tail(limit int) ([]model.OpLog, error) {
	var entries []model.OpLog
	if err := r.db.Order("id DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	// 倒序取出后翻转为正序
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

func (r *opLogRepo) Clear() error {
	return r.db.Where("1 = 1").Delete(&model.OpLog{}).Error
}
