package repository

import (
	"testing"

	"pdd_helper_v1/internal/model"
)

func TestTokenRepoPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	repo := NewTokenRepository(dir)

	if err := repo.RecordAuthState("店A", "state-1"); err != nil {
		t.Fatalf("记录 state 失败: %v", err)
	}
	if err := repo.SaveAuth("店A", model.TokenRecord{AccessToken: "acc-1"}); err != nil {
		t.Fatalf("写入令牌失败: %v", err)
	}

	// 新实例从同一目录读回
	reopened := NewTokenRepository(dir)
	store := reopened.Load()
	cred := store.Credential("店A")
	if cred == nil || cred.LastAuth == nil || cred.LastAuth.AccessToken != "acc-1" {
		t.Fatalf("重开后读不到令牌: %+v", store)
	}
	if store.LastAuthShop != "店A" || store.LastAuthState != "state-1" {
		t.Fatalf("顶层指针不符: %+v", store)
	}
}

func TestTokenRepoSaveAuthTopLevel(t *testing.T) {
	repo := NewTokenRepository(t.TempDir())
	if err := repo.SaveAuth("", model.TokenRecord{AccessToken: "top"}); err != nil {
		t.Fatalf("写入失败: %v", err)
	}
	store := repo.Load()
	if store.LastAuth == nil || store.LastAuth.AccessToken != "top" {
		t.Fatalf("shop 为空应写入顶层 lastAuth: %+v", store)
	}
	if len(store.Shops) != 0 {
		t.Fatalf("不应创建店铺条目: %+v", store.Shops)
	}
}

func TestTokenRepoClearShopIsolation(t *testing.T) {
	repo := NewTokenRepository(t.TempDir())
	_ = repo.RecordAuthState("店A", "sa")
	_ = repo.SaveAuth("店A", model.TokenRecord{AccessToken: "a"})
	_ = repo.RecordAuthState("店B", "sb")
	_ = repo.SaveAuth("店B", model.TokenRecord{AccessToken: "b"})

	if err := repo.ClearShop("店A"); err != nil {
		t.Fatalf("清除失败: %v", err)
	}
	store := repo.Load()
	if cred := store.Credential("店A"); cred == nil || cred.LastAuth != nil || cred.LastAuthState != "" {
		t.Fatalf("店A 未被清除: %+v", cred)
	}
	if cred := store.Credential("店B"); cred == nil || cred.LastAuth == nil || cred.LastAuth.AccessToken != "b" {
		t.Fatalf("店B 不应受影响: %+v", cred)
	}
}

func TestTokenRepoClearShopResetsGlobalPointer(t *testing.T) {
	repo := NewTokenRepository(t.TempDir())
	_ = repo.RecordAuthState("店A", "sa")
	_ = repo.ClearShop("店A")

	store := repo.Load()
	if store.LastAuthShop != "" || store.LastAuthState != "" {
		t.Fatalf("指向被清店铺的全局指针应重置: %+v", store)
	}
}

func TestTokenRepoLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	repo := NewTokenRepository(dir)
	// 文件不存在时返回空存储而不是报错
	store := repo.Load()
	if store.Shops == nil || len(store.Shops) != 0 {
		t.Fatalf("空存储不符: %+v", store)
	}
}
