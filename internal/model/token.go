package model

// TokenRecord 一次换取成功后的令牌记录
// 每次成功换取整条覆盖，不保留历史
type TokenRecord struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	OwnerName    string `json:"owner_name,omitempty"`
	OwnerId      string `json:"owner_id,omitempty"`

	// 服务端补充的元数据
	ReceivedAt       string `json:"receivedAt,omitempty"`
	RefreshedAt      string `json:"refreshedAt,omitempty"`
	State            string `json:"state,omitempty"`
	ExpiresAtIso     string `json:"expiresAtIso,omitempty"`
	NextRefreshAt    int64  `json:"nextRefreshAt,omitempty"`
	NextRefreshAtIso string `json:"nextRefreshAtIso,omitempty"`
}

// ShopCredential 单店铺的授权状态
type ShopCredential struct {
	// 最近一次生成授权链接时记录的 state，用于回调校验，单值覆盖
	LastAuthState string `json:"lastAuthState,omitempty"`
	// 最近一次换取成功的令牌；过期不删除，直到被覆盖或手动清除
	LastAuth *TokenRecord `json:"lastAuth,omitempty"`
}

// TokenStore 令牌存储文档
// 对应 data/tokens.json；顶层 lastAuthState/lastAuthShop 用于
// 回调时还不知道店铺的场景（旧版兼容路径）
type TokenStore struct {
	Shops         map[string]*ShopCredential `json:"shops,omitempty"`
	LastAuthState string                     `json:"lastAuthState,omitempty"`
	LastAuthShop  string                     `json:"lastAuthShop,omitempty"`
	LastAuth      *TokenRecord               `json:"lastAuth,omitempty"`
}

// Credential 返回指定店铺的授权状态，不存在时返回 nil
func (s *TokenStore) Credential(shop string) *ShopCredential {
	if s.Shops == nil {
		return nil
	}
	return s.Shops[shop]
}
