package repository

import (
	"sync"

	"pdd_helper_v1/internal/model"
)

// ==================== 接口定义 ====================

// ConfigRepository 配置文档仓储
type ConfigRepository interface {
	Get() model.ConfigDocument
	Save(doc model.ConfigDocument) error
}

// ScheduleRepository 排期文档仓储
type ScheduleRepository interface {
	Get() model.ScheduleDocument
	Save(doc model.ScheduleDocument) error
}

// ==================== 仓储实现 ====================

type configRepo struct {
	store *docStore
	mu    sync.Mutex
}

// NewConfigRepository 创建配置仓储，数据落在 dataDir/config.json
func NewConfigRepository(dataDir string) ConfigRepository {
	return &configRepo{store: newDocStore(dataDir, "config.json")}
}

func (r *configRepo) Get() model.ConfigDocument {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc := model.DefaultConfig()
	r.store.load(&doc)
	return doc
}

func (r *configRepo) Save(doc model.ConfigDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.save(doc)
}

type scheduleRepo struct {
	store *docStore
	mu    sync.Mutex
}

// NewScheduleRepository 创建排期仓储，数据落在 dataDir/schedule.json
func NewScheduleRepository(dataDir string) ScheduleRepository {
	return &scheduleRepo{store: newDocStore(dataDir, "schedule.json")}
}

func (r *scheduleRepo) Get() model.ScheduleDocument {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc := model.DefaultSchedule()
	r.store.load(&doc)
	if doc.Shops == nil {
		doc.Shops = map[string]model.ShopSchedule{}
	}
	return doc
}

func (r *scheduleRepo) Save(doc model.ScheduleDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.save(doc)
}
