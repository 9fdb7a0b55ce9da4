package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"pdd_helper_v1/internal/model"
	"pdd_helper_v1/internal/repository"
	"pdd_helper_v1/pkg/pdd"
	"pdd_helper_v1/pkg/utils"
)

// refreshMargin 距过期提前多久刷新
const refreshMargin = 300 * time.Second

type AuthService struct {
	configRepo repository.ConfigRepository
	tokenRepo  repository.TokenRepository
	oplog      *OpLogService
	client     *resty.Client

	// TokenURL 令牌端点，测试时可替换
	TokenURL string
}

// NewAuthService 工厂方法
func NewAuthService(configRepo repository.ConfigRepository, tokenRepo repository.TokenRepository, oplog *OpLogService) *AuthService {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")
	return &AuthService{
		configRepo: configRepo,
		tokenRepo:  tokenRepo,
		oplog:      oplog,
		client:     client,
		TokenURL:   pdd.TokenURL,
	}
}

// BuildAuthorizationURL 为店铺生成授权链接
// 生成的 state 记录为该店铺（及全局指针）的待校验值，单值覆盖
func (s *AuthService) BuildAuthorizationURL(ctx context.Context, shop string) (string, string, error) {
	// 1. 校验配置
	cfg := s.configRepo.Get()
	if cfg.ClientId == "" || cfg.RedirectUri == "" {
		return "", "", &ConfigurationError{Message: "缺少 clientId 或 redirectUri，请先保存配置。"}
	}

	// 2. 生成随机 state 并落盘
	state, err := utils.GenerateStateToken()
	if err != nil {
		return "", "", err
	}
	if err := s.tokenRepo.RecordAuthState(shop, state); err != nil {
		return "", "", err
	}

	// 3. 在 authBase 上拼接授权参数，保留 authBase 自带的查询参数
	base := cfg.AuthBase
	if base == "" {
		base = model.DefaultAuthBase
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", "", &ConfigurationError{Message: "authBase 不是合法的 URL: " + err.Error()}
	}
	q := u.Query()
	q.Set("response_type", "code")
	q.Set("client_id", cfg.ClientId)
	q.Set("redirect_uri", cfg.RedirectUri)
	q.Set("state", state)
	// view=web 在桌面浏览器里展示更友好
	q.Set("view", "web")
	u.RawQuery = q.Encode()
	return u.String(), state, nil
}

// Exchange 用授权 code 换取令牌并入库
// shop 为空时回退到最近一次生成授权链接的店铺；返回实际入库的店铺名
func (s *AuthService) Exchange(ctx context.Context, shop, code, state string) (*model.TokenRecord, string, error) {
	if code == "" {
		return nil, "", ErrMissingCode
	}
	cfg := s.configRepo.Get()
	if cfg.ClientId == "" || cfg.ClientSecret == "" || cfg.RedirectUri == "" {
		return nil, "", &ConfigurationError{Message: "缺少 clientId/clientSecret/redirectUri，请先保存配置。"}
	}

	// 1. 解析目标店铺：显式参数优先于全局指针
	store := s.tokenRepo.Load()
	resolved := shop
	if resolved == "" {
		resolved = store.LastAuthShop
	}

	// 2. 校验 state；从未记录过 state 时容忍通过（首次授权）
	recorded := store.LastAuthState
	if resolved != "" {
		if cred := store.Credential(resolved); cred != nil && cred.LastAuthState != "" {
			recorded = cred.LastAuthState
		}
	}
	if recorded != "" && state != "" && recorded != state {
		return nil, resolved, &StateMismatchError{Shop: resolved}
	}

	// 3. 向平台换取令牌
	resp, err := s.requestToken(ctx, pdd.TokenReq{
		ClientId:     cfg.ClientId,
		ClientSecret: cfg.ClientSecret,
		GrantType:    "authorization_code",
		Code:         code,
		RedirectUri:  cfg.RedirectUri,
	})
	if err != nil {
		s.oplog.Error(fmt.Sprintf("换取 Token 失败: %v", err))
		return nil, resolved, err
	}

	// 4. 覆盖写入凭据
	now := time.Now()
	rec := model.TokenRecord{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		OwnerName:    resp.OwnerName,
		OwnerId:      resp.OwnerId,
		ReceivedAt:   now.Format(time.RFC3339),
		State:        state,
	}
	applyRefreshMeta(&rec, now)
	if err := s.tokenRepo.SaveAuth(resolved, rec); err != nil {
		return nil, resolved, err
	}
	if resolved != "" {
		s.oplog.Info(fmt.Sprintf("换取 Token 成功（店铺：%s）", resolved))
	} else {
		s.oplog.Info("换取 Token 成功")
	}
	return &rec, resolved, nil
}

// RefreshDueTokens 扫描所有凭据，刷新到期的令牌
// 刷新失败时把下次刷新时间推后 120s，等待下一轮重试
func (s *AuthService) RefreshDueTokens(ctx context.Context) {
	cfg := s.configRepo.Get()
	if cfg.ClientId == "" || cfg.ClientSecret == "" {
		return
	}
	store := s.tokenRepo.Load()
	now := time.Now()
	changed := false

	refreshOne := func(label string, rec *model.TokenRecord) {
		if rec == nil || rec.RefreshToken == "" {
			return
		}
		if now.Unix() < rec.NextRefreshAt {
			return
		}
		resp, err := s.requestToken(ctx, pdd.TokenReq{
			ClientId:     cfg.ClientId,
			ClientSecret: cfg.ClientSecret,
			GrantType:    "refresh_token",
			RefreshToken: rec.RefreshToken,
		})
		if err != nil {
			s.oplog.Error(fmt.Sprintf("令牌自动刷新失败%s: %v", label, err))
			retry := now.Add(120 * time.Second)
			rec.NextRefreshAt = retry.Unix()
			rec.NextRefreshAtIso = retry.UTC().Format("2006-01-02T15:04:05Z")
			changed = true
			return
		}
		rec.AccessToken = resp.AccessToken
		if resp.RefreshToken != "" {
			rec.RefreshToken = resp.RefreshToken
		}
		rec.ExpiresIn = resp.ExpiresIn
		rec.RefreshedAt = now.Format(time.RFC3339)
		applyRefreshMeta(rec, now)
		changed = true
		s.oplog.Info("令牌已自动刷新" + label)
	}

	refreshOne("", store.LastAuth)
	for name, cred := range store.Shops {
		if cred != nil {
			refreshOne(fmt.Sprintf("（店铺：%s）", name), cred.LastAuth)
		}
	}
	if changed {
		if err := s.tokenRepo.Overwrite(store); err != nil {
			s.oplog.Error(fmt.Sprintf("令牌存储回写失败: %v", err))
		}
	}
}

// requestToken 调用令牌端点；非成功响应映射为 UpstreamTokenError
func (s *AuthService) requestToken(ctx context.Context, req pdd.TokenReq) (*pdd.TokenResp, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(s.TokenURL)
	if err != nil {
		return nil, &UpstreamTokenError{Description: "网络错误: " + err.Error()}
	}
	var parsed pdd.TokenResp
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, &UpstreamTokenError{Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode(), resp.String())}
	}
	if err := parsed.Validate(); err != nil {
		return nil, &UpstreamTokenError{Description: err.Error()}
	}
	return &parsed, nil
}

// applyRefreshMeta 补充过期/刷新元数据
func applyRefreshMeta(rec *model.TokenRecord, now time.Time) {
	wait := time.Duration(rec.ExpiresIn)*time.Second - refreshMargin
	if wait < 60*time.Second {
		wait = 60 * time.Second
	}
	next := now.Add(wait)
	rec.NextRefreshAt = next.Unix()
	rec.NextRefreshAtIso = next.UTC().Format("2006-01-02T15:04:05Z")
	if rec.ExpiresIn > 0 {
		rec.ExpiresAtIso = now.Add(time.Duration(rec.ExpiresIn) * time.Second).UTC().Format("2006-01-02T15:04:05Z")
	}
}
