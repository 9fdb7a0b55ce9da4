package model

// 默认值常量
const (
	DefaultAuthBase     = "https://mms.pinduoduo.com/open.html"
	DefaultGoodsID      = "861017472489"
	DefaultDownloadTime = "08:30"
	DefaultShopName     = "拼多多旗舰店"
	DefaultTimeZone     = "Asia/Shanghai"
)

// ConfigDocument 全局配置文档
// 对应 data/config.json，保存时整文档覆盖写入
type ConfigDocument struct {
	// 1. 开放平台应用信息
	ClientId     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RedirectUri  string `json:"redirectUri"`
	AuthBase     string `json:"authBase"`

	// 2. 上传发布参数
	GoodsId                string                         `json:"goodsId"`
	// productGoodsMap 为旧版全局映射，保留兼容；新版按店铺维护
	ProductGoodsMap        map[string]string              `json:"productGoodsMap"`
	ProductGoodsMapByShop  map[string]map[string]string   `json:"productGoodsMapByShop"`
	ProductTitleTagsByShop map[string]map[string][]string `json:"productTitleTagsByShop"`
	HotTitleTags           []string                       `json:"hotTitleTags"`
	VideoDesc              string                         `json:"videoDesc"`
	RequireAuth            bool                           `json:"requireAuth"`

	// 3. 下载参数
	DownloadEnabled    bool   `json:"downloadEnabled"`
	DownloadTime       string `json:"downloadTime"`
	DownloadRemoteRoot string `json:"downloadRemoteRoot"`
	DownloadLocalRoot  string `json:"downloadLocalRoot"`
	BaiduCliPath       string `json:"baiduCliPath"`

	// 4. 自动化
	AutoRunEnabled bool     `json:"autoRunEnabled"`
	AutoRunShops   []string `json:"autoRunShops"`
}

// DefaultConfig 返回缺省配置
func DefaultConfig() ConfigDocument {
	return ConfigDocument{
		AuthBase:               DefaultAuthBase,
		GoodsId:                DefaultGoodsID,
		ProductGoodsMap:        map[string]string{},
		ProductGoodsMapByShop:  map[string]map[string]string{},
		ProductTitleTagsByShop: map[string]map[string][]string{},
		RequireAuth:            true,
		DownloadEnabled:        true,
		DownloadTime:           DefaultDownloadTime,
	}
}

// ShopSchedule 单店铺上传排期
type ShopSchedule struct {
	StartTime       string `json:"start_time"`
	IntervalSeconds int    `json:"interval_seconds"`
	DailyLimit      int    `json:"daily_limit"`
	Enabled         bool   `json:"enabled"`
}

// ScheduleDocument 上传排期文档
// 对应 data/schedule.json，店铺条目在首次保存时创建，与授权状态相互独立
type ScheduleDocument struct {
	Shops     map[string]ShopSchedule `json:"shops"`
	VideoRoot string                  `json:"video_root"`
	TimeZone  string                  `json:"time_zone"`
}

// DefaultSchedule 返回缺省排期
func DefaultSchedule() ScheduleDocument {
	return ScheduleDocument{
		Shops: map[string]ShopSchedule{
			DefaultShopName: {
				StartTime:       "09:00",
				IntervalSeconds: 300,
				DailyLimit:      50,
				Enabled:         true,
			},
		},
		VideoRoot: "video",
		TimeZone:  DefaultTimeZone,
	}
}
