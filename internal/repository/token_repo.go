package repository

import (
	"sync"

	"pdd_helper_v1/internal/model"
)

// ==================== 接口定义 ====================

// TokenRepository 令牌存储仓储
// 所有写操作都是整文档的读-改-写，进程内用互斥锁串行化
type TokenRepository interface {
	Load() model.TokenStore
	// RecordAuthState 记录某店铺最近一次下发的授权 state
	// 同时更新顶层 lastAuthState/lastAuthShop 指针
	RecordAuthState(shop, state string) error
	// SaveAuth 覆盖写入令牌；shop 为空时写入顶层 lastAuth
	SaveAuth(shop string, rec model.TokenRecord) error
	// ClearShop 仅清除指定店铺的授权信息，其余店铺不受影响
	ClearShop(shop string) error
	// Overwrite 整文档替换（刷新任务回写用）
	Overwrite(store model.TokenStore) error
}

// ==================== 仓储实现 ====================

type tokenRepo struct {
	store *docStore
	mu    sync.Mutex
}

// NewTokenRepository 创建令牌仓储，数据落在 dataDir/tokens.json
func NewTokenRepository(dataDir string) TokenRepository {
	return &tokenRepo{store: newDocStore(dataDir, "tokens.json")}
}

func (r *tokenRepo) Load() model.TokenStore {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

func (r *tokenRepo) loadLocked() model.TokenStore {
	var doc model.TokenStore
	r.store.load(&doc)
	if doc.Shops == nil {
		doc.Shops = map[string]*model.ShopCredential{}
	}
	return doc
}

func (r *tokenRepo) RecordAuthState(shop, state string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc := r.loadLocked()
	if shop != "" {
		cred := doc.Shops[shop]
		if cred == nil {
			// 店铺凭据在首次生成授权链接时隐式创建
			cred = &model.ShopCredential{}
			doc.Shops[shop] = cred
		}
		cred.LastAuthState = state
	}
	doc.LastAuthState = state
	doc.LastAuthShop = shop
	return r.store.save(doc)
}

func (r *tokenRepo) SaveAuth(shop string, rec model.TokenRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc := r.loadLocked()
	if shop == "" {
		doc.LastAuth = &rec
		return r.store.save(doc)
	}
	cred := doc.Shops[shop]
	if cred == nil {
		cred = &model.ShopCredential{}
		doc.Shops[shop] = cred
	}
	cred.LastAuth = &rec
	return r.store.save(doc)
}

func (r *tokenRepo) ClearShop(shop string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc := r.loadLocked()
	if cred := doc.Shops[shop]; cred != nil {
		cred.LastAuth = nil
		cred.LastAuthState = ""
	}
	if doc.LastAuthShop == shop {
		doc.LastAuthShop = ""
		doc.LastAuthState = ""
	}
	return r.store.save(doc)
}

func (r *tokenRepo) Overwrite(store model.TokenStore) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.save(store)
}
